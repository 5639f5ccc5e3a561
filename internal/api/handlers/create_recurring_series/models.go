package create_recurring_series

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/recurring/models"
	createRecurringSeries "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_recurring_series"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
)

// CreateSeriesRequest HTTP request model
type CreateSeriesRequest struct {
	ServiceID      int64   `json:"serviceId"`
	StaffID        int64   `json:"staffId"`
	CustomerEmail  string  `json:"customerEmail"`
	StartDate      string  `json:"startDate"` // "2026-10-19"
	Frequency      string  `json:"frequency"` // weekly | biweekly | monthly
	TimeSlot       string  `json:"timeSlot"`  // "10:00"
	EndDate        *string `json:"endDate,omitempty"`
	MaxOccurrences *int    `json:"maxOccurrences,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (даты в рабочей таймзоне)
func (r *CreateSeriesRequest) ToUseCaseRequest(tenantID string, actor domain.Actor, loc *time.Location) (*createRecurringSeries.Request, error) {
	startDate, err := calendar.ParseDate(r.StartDate, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}

	req := &createRecurringSeries.Request{
		TenantID:       tenantID,
		Actor:          actor,
		ServiceID:      r.ServiceID,
		StaffID:        r.StaffID,
		CustomerEmail:  domain.NormalizeEmail(r.CustomerEmail),
		StartDate:      startDate,
		Frequency:      domain.Frequency(r.Frequency),
		TimeSlot:       r.TimeSlot,
		MaxOccurrences: r.MaxOccurrences,
	}

	if r.EndDate != nil {
		endDate, err := calendar.ParseDate(*r.EndDate, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurringSeries.Response) *models.SeriesResponse {
	return models.FromDomainSeries(resp.Series, resp.Instances)
}
