package create_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID     int64     `json:"serviceId"`
	StaffID       int64     `json:"staffId"`
	Start         time.Time `json:"start"` // RFC 3339
	CustomerEmail string    `json:"customerEmail"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(tenantID string, actor domain.Actor) *createBooking.Request {
	return &createBooking.Request{
		TenantID:      tenantID,
		Actor:         actor,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		StartAt:       r.Start,
		CustomerEmail: r.CustomerEmail,
		Source:        domain.SourceSingle,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *models.BookingResponse {
	return models.FromDomainBooking(resp.Booking)
}
