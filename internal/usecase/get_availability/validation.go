package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// generateStarts обходит сетку с шагом domain.SlotStepMinutes внутри каждого интервала расписания
// и оставляет начала, при которых [start, start+duration) не пересекается с подтвержденными бронированиями.
// Слот помещается в интервал, если start + duration <= EndMin.
func generateStarts(
	day time.Time,
	loc *time.Location,
	schedules []*domain.Schedule,
	durationMinutes int,
	bookings []*domain.Booking,
) []time.Time {
	duration := time.Duration(durationMinutes) * time.Minute
	starts := make([]time.Time, 0)

	for _, schedule := range schedules {
		for m := schedule.StartMin; m+durationMinutes <= schedule.EndMin; m += domain.SlotStepMinutes {
			start := calendar.AtMinute(day, m, loc)
			end := start.Add(duration)

			if !overlapsAny(start, end, bookings) {
				starts = append(starts, start)
			}
		}
	}

	return starts
}

// overlapsAny проверяет пересечение интервала с подтвержденными бронированиями
func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if !b.IsConfirmed() {
			continue
		}
		if calendar.Overlaps(start, end, b.StartAt, b.EndAt) {
			return true
		}
	}
	return false
}

// dropPast убирает слоты, начало которых уже прошло
func dropPast(starts []time.Time, now time.Time) []time.Time {
	result := make([]time.Time, 0, len(starts))
	for _, s := range starts {
		if s.Before(now) {
			continue
		}
		result = append(result, s)
	}
	return result
}
