package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// SeriesResponse серия в ответе API
type SeriesResponse struct {
	ID             int64               `json:"id"`
	ServiceID      int64               `json:"serviceId"`
	StaffID        int64               `json:"staffId"`
	CustomerEmail  string              `json:"customerEmail"`
	StartDate      string              `json:"startDate"`
	Frequency      string              `json:"frequency"`
	TimeSlot       string              `json:"timeSlot"`
	EndDate        *string             `json:"endDate,omitempty"`
	MaxOccurrences *int                `json:"maxOccurrences,omitempty"`
	Status         string              `json:"status"`
	CreatedBy      string              `json:"createdBy"`
	CreatedAt      time.Time           `json:"createdAt"`
	InstanceCount  int                 `json:"instanceCount"`
	Instances      []*InstanceResponse `json:"instances"`
}

// InstanceResponse вхождение серии в ответе API
type InstanceResponse struct {
	ID          int64     `json:"id"`
	SeriesID    int64     `json:"seriesId"`
	ScheduledAt time.Time `json:"scheduledAt"`
	Status      string    `json:"status"`
	BookingID   *int64    `json:"bookingId,omitempty"`
	SkipReason  *string   `json:"skipReason,omitempty"`
}

// MaterializeResponse итог материализации серии
type MaterializeResponse struct {
	SeriesID     int64               `json:"seriesId"`
	SeriesStatus string              `json:"seriesStatus"`
	Confirmed    int                 `json:"confirmed"`
	Skipped      int                 `json:"skipped"`
	Outcomes     []*InstanceResponse `json:"outcomes"`
}

// FromDomainSeries конвертирует серию с вхождениями
func FromDomainSeries(s *domain.RecurringSeries, instances []*domain.RecurringInstance) *SeriesResponse {
	resp := &SeriesResponse{
		ID:             s.ID,
		ServiceID:      s.ServiceID,
		StaffID:        s.StaffID,
		CustomerEmail:  s.CustomerEmail,
		StartDate:      s.StartDate.Format(domain.DateFormat),
		Frequency:      string(s.Frequency),
		TimeSlot:       s.TimeSlot,
		MaxOccurrences: s.MaxOccurrences,
		Status:         string(s.Status),
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt.UTC(),
		InstanceCount:  len(instances),
		Instances:      make([]*InstanceResponse, 0, len(instances)),
	}
	if s.EndDate != nil {
		end := s.EndDate.Format(domain.DateFormat)
		resp.EndDate = &end
	}
	for _, inst := range instances {
		resp.Instances = append(resp.Instances, FromDomainInstance(inst))
	}
	return resp
}

// FromDomainInstance конвертирует вхождение
func FromDomainInstance(inst *domain.RecurringInstance) *InstanceResponse {
	return &InstanceResponse{
		ID:          inst.ID,
		SeriesID:    inst.SeriesID,
		ScheduledAt: inst.ScheduledAt.UTC(),
		Status:      string(inst.Status),
		BookingID:   inst.BookingID,
		SkipReason:  inst.SkipReason,
	}
}
