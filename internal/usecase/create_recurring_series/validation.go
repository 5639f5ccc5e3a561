package create_recurring_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
	"github.com/m04kA/SMC-SalonScheduler/pkg/validate"
)

// validateRequest валидирует шаблон серии и возвращает минуту начала слота
func validateRequest(req *Request) (int, error) {
	if req.TenantID == "" {
		return 0, fmt.Errorf("%w: tenant is required", ErrInvalidInput)
	}

	if req.ServiceID <= 0 || req.StaffID <= 0 {
		return 0, fmt.Errorf("%w: serviceId and staffId must be positive", ErrInvalidInput)
	}

	if !validate.Email(req.CustomerEmail) {
		return 0, fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidInput)
	}

	if req.StartDate.IsZero() {
		return 0, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}

	if !req.Frequency.IsValid() {
		return 0, fmt.Errorf("%w: unknown frequency %q", ErrInvalidInput, req.Frequency)
	}

	minute, err := calendar.ParseHHMM(req.TimeSlot)
	if err != nil {
		return 0, fmt.Errorf("%w: timeSlot must be HH:MM", ErrInvalidInput)
	}

	if req.MaxOccurrences != nil && *req.MaxOccurrences < 1 {
		return 0, fmt.Errorf("%w: maxOccurrences must be at least 1", ErrInvalidInput)
	}

	if req.EndDate != nil && req.EndDate.Format(domain.DateFormat) < req.StartDate.Format(domain.DateFormat) {
		return 0, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	if !req.Actor.Role.IsValid() {
		return 0, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Actor.Role)
	}

	if !req.Actor.CanActFor(req.CustomerEmail) {
		return 0, ErrForeignCustomer
	}

	return minute, nil
}

// expand разворачивает шаблон в моменты вхождений
// Остановка: дата курсора позже endDate, достигнут maxOccurrences или domain.MaxRecurringInstances.
// Месячный шаг считается от исходной даты, поэтому 31 января дает 28 февраля и 31 марта.
func expand(
	startDate time.Time,
	minute int,
	frequency domain.Frequency,
	endDate *time.Time,
	maxOccurrences *int,
	loc *time.Location,
) []time.Time {
	limit := domain.MaxRecurringInstances
	if maxOccurrences != nil && *maxOccurrences < limit {
		limit = *maxOccurrences
	}

	anchor := calendar.AtMinute(time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, loc), minute, loc)

	var last string
	if endDate != nil {
		last = endDate.Format(domain.DateFormat)
	}

	result := make([]time.Time, 0, limit)
	for n := 0; len(result) < limit; n++ {
		var cursor time.Time
		switch frequency {
		case domain.FrequencyWeekly:
			cursor = anchor.AddDate(0, 0, 7*n)
		case domain.FrequencyBiweekly:
			cursor = anchor.AddDate(0, 0, 14*n)
		default:
			cursor = calendar.AddMonthsClamped(anchor, n)
		}

		if endDate != nil && cursor.Format(domain.DateFormat) > last {
			break
		}
		result = append(result, cursor)
	}

	return result
}
