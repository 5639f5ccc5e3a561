package request_earlier_slot

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
)

// validateRequest валидирует входные данные и подставляет приоритет по умолчанию
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.CurrentBookingID <= 0 {
		return fmt.Errorf("%w: currentBookingId must be positive", ErrInvalidInput)
	}

	if req.Priority == "" {
		req.Priority = domain.PriorityNormal
	}
	if !req.Priority.IsValid() {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, req.Priority)
	}

	if !req.Actor.Role.IsValid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	return nil
}

// expiresAt возвращает меньшее из конца желаемого дня и now + ttl
func expiresAt(desiredDate *time.Time, now time.Time, ttl time.Duration, loc *time.Location) time.Time {
	limit := now.Add(ttl)
	if desiredDate == nil {
		return limit
	}

	_, endOfDay := calendar.DayBounds(*desiredDate, loc)
	if endOfDay.Before(limit) {
		return endOfDay
	}
	return limit
}
