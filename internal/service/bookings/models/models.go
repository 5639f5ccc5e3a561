package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListAdminRequest фильтр администратора
type ListAdminRequest struct {
	StaffID *int64     // Фильтр по мастеру
	Status  *string    // CONFIRMED | CANCELLED
	From    *time.Time // StartAt >= From
	To      *time.Time // StartAt < To
}

// ListMyRequest фильтр клиента
type ListMyRequest struct {
	IncludePast      bool
	IncludeCancelled bool
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Response модели

// BookingResponse бронирование в ответе API
type BookingResponse struct {
	ID                  int64      `json:"id"`
	ServiceID           int64      `json:"serviceId"`
	StaffID             int64      `json:"staffId"`
	CustomerEmail       string     `json:"customerEmail"`
	StartAt             time.Time  `json:"startAt"`
	EndAt               time.Time  `json:"endAt"`
	Status              string     `json:"status"`
	CreatedBy           string     `json:"createdBy"`
	CancelledBy         *string    `json:"cancelledBy,omitempty"`
	CancelledAt         *time.Time `json:"cancelledAt,omitempty"`
	GroupBookingID      *int64     `json:"groupBookingId,omitempty"`
	RecurringInstanceID *int64     `json:"recurringInstanceId,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// BookingListResponse список бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// FromDomainBooking конвертирует domain.Booking в ответ API (время в UTC)
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                  b.ID,
		ServiceID:           b.ServiceID,
		StaffID:             b.StaffID,
		CustomerEmail:       b.CustomerEmail,
		StartAt:             b.StartAt.UTC(),
		EndAt:               b.EndAt.UTC(),
		Status:              string(b.Status),
		CreatedBy:           b.CreatedBy,
		CancelledBy:         b.CancelledBy,
		GroupBookingID:      b.GroupBookingID,
		RecurringInstanceID: b.RecurringInstanceID,
		CreatedAt:           b.CreatedAt.UTC(),
		UpdatedAt:           b.UpdatedAt.UTC(),
	}
	if b.CancelledAt != nil {
		resp.CancelledAt = ptr.Ptr(b.CancelledAt.UTC())
	}
	return resp
}

// FromDomainBookingList конвертирует список бронирований
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	items := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, FromDomainBooking(b))
	}
	return &BookingListResponse{Bookings: items, Total: len(items)}
}
