package cancel_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}

	if !req.Actor.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	return nil
}

// checkPermission проверяет право отмены
// Администратор отменяет всегда, владелец только пока now < start - window
// Опорное бронирование группы отменяется только вместе с группой
func checkPermission(booking *domain.Booking, req *Request, now time.Time, window time.Duration) error {
	if booking.IsCancelled() {
		return ErrAlreadyCancelled
	}

	if booking.GroupBookingID != nil && !req.WithGroup {
		return fmt.Errorf("%w: cancel group %d via DELETE /api/v1/admin/bookings/group/%d",
			ErrPartOfGroup, *booking.GroupBookingID, *booking.GroupBookingID)
	}

	actor := req.Actor

	if actor.IsAdmin() {
		return nil
	}

	if !actor.Owns(booking.CustomerEmail) {
		return ErrNotOwner
	}

	if !now.Before(booking.StartAt.Add(-window)) {
		return fmt.Errorf("%w: must cancel at least %s before start", ErrTooLateToCancel, window)
	}

	return nil
}
