package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// validateRequest валидирует входные данные и права инициатора
func validateRequest(req *Request, now time.Time) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if !validate.Email(req.CustomerEmail) {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}

	if !req.Actor.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	if !req.Actor.CanActFor(req.CustomerEmail) {
		return ErrForeignCustomer
	}

	if !req.Actor.IsAdmin() && req.StartAt.Before(now) {
		return ErrStartInPast
	}

	return nil
}

// findOverlap возвращает первое подтвержденное бронирование, пересекающее [start, end)
func findOverlap(start, end time.Time, bookings []*domain.Booking) *domain.Booking {
	for _, b := range bookings {
		if b.IsConfirmed() && calendar.Overlaps(start, end, b.StartAt, b.EndAt) {
			return b
		}
	}
	return nil
}
