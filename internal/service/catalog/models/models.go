package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/pkg/calendar"
)

// Request модели

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	DurationMinutes int    `json:"durationMinutes" validate:"gt=0,lte=1440"`
	PriceCents      int64  `json:"priceCents" validate:"gte=0"`
	Active          *bool  `json:"active,omitempty"` // по умолчанию true
}

// ToDomainService конвертирует запрос в доменную модель
func (r *CreateServiceRequest) ToDomainService(tenantID string) *domain.Service {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &domain.Service{
		TenantID:        tenantID,
		Name:            r.Name,
		DurationMinutes: r.DurationMinutes,
		PriceCents:      r.PriceCents,
		Active:          active,
	}
}

// UpdateServiceRequest запрос на обновление услуги
// Все поля опциональны - обновляются только переданные значения
type UpdateServiceRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DurationMinutes *int    `json:"durationMinutes,omitempty" validate:"omitempty,gt=0,lte=1440"`
	PriceCents      *int64  `json:"priceCents,omitempty" validate:"omitempty,gte=0"`
	Active          *bool   `json:"active,omitempty"`
}

// ApplyToService применяет изменения к услуге
func (r *UpdateServiceRequest) ApplyToService(s *domain.Service) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.DurationMinutes != nil {
		s.DurationMinutes = *r.DurationMinutes
	}
	if r.PriceCents != nil {
		s.PriceCents = *r.PriceCents
	}
	if r.Active != nil {
		s.Active = *r.Active
	}
}

// CreateStaffRequest запрос на создание мастера
type CreateStaffRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// ScheduleRequest интервал расписания мастера
// Weekday: 0 - понедельник ... 6 - воскресенье, время в формате HH:MM, конец может быть 24:00
type ScheduleRequest struct {
	Weekday   int    `json:"weekday" validate:"gte=0,lte=6"`
	StartTime string `json:"startTime" validate:"required"`
	EndTime   string `json:"endTime" validate:"required"`
}

// TimeOffRequest отсутствие мастера, даты YYYY-MM-DD включительно
type TimeOffRequest struct {
	DateFrom string  `json:"dateFrom" validate:"required"`
	DateTo   string  `json:"dateTo" validate:"required"`
	Reason   *string `json:"reason,omitempty"`
}

// Response модели

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	DurationMinutes int       `json:"durationMinutes"`
	PriceCents      int64     `json:"priceCents"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StaffResponse мастер
type StaffResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// ScheduleResponse интервал расписания
type ScheduleResponse struct {
	ID        int64  `json:"id"`
	StaffID   int64  `json:"staffId"`
	Weekday   int    `json:"weekday"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// TimeOffResponse отсутствие мастера
type TimeOffResponse struct {
	ID       int64   `json:"id"`
	StaffID  int64   `json:"staffId"`
	DateFrom string  `json:"dateFrom"`
	DateTo   string  `json:"dateTo"`
	Reason   *string `json:"reason,omitempty"`
}

// FromDomainService конвертирует услугу
func FromDomainService(s *domain.Service) *ServiceResponse {
	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		DurationMinutes: s.DurationMinutes,
		PriceCents:      s.PriceCents,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt.UTC(),
		UpdatedAt:       s.UpdatedAt.UTC(),
	}
}

// FromDomainStaff конвертирует мастера
func FromDomainStaff(s *domain.StaffMember) *StaffResponse {
	return &StaffResponse{ID: s.ID, Name: s.Name, Active: s.Active}
}

// FromDomainStaffList конвертирует список мастеров
func FromDomainStaffList(staff []*domain.StaffMember) []*StaffResponse {
	result := make([]*StaffResponse, 0, len(staff))
	for _, s := range staff {
		result = append(result, FromDomainStaff(s))
	}
	return result
}

// FromDomainSchedule конвертирует интервал расписания
func FromDomainSchedule(s *domain.Schedule) *ScheduleResponse {
	return &ScheduleResponse{
		ID:        s.ID,
		StaffID:   s.StaffID,
		Weekday:   s.Weekday,
		StartTime: calendar.FormatHHMM(s.StartMin),
		EndTime:   calendar.FormatHHMM(s.EndMin),
	}
}

// FromDomainScheduleList конвертирует список интервалов
func FromDomainScheduleList(schedules []*domain.Schedule) []*ScheduleResponse {
	result := make([]*ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		result = append(result, FromDomainSchedule(s))
	}
	return result
}

// FromDomainTimeOff конвертирует отсутствие
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	return &TimeOffResponse{
		ID:       t.ID,
		StaffID:  t.StaffID,
		DateFrom: t.DateFrom.Format(domain.DateFormat),
		DateTo:   t.DateTo.Format(domain.DateFormat),
		Reason:   t.Reason,
	}
}

// FromDomainTimeOffList конвертирует список отсутствий
func FromDomainTimeOffList(items []*domain.TimeOff) []*TimeOffResponse {
	result := make([]*TimeOffResponse, 0, len(items))
	for _, t := range items {
		result = append(result, FromDomainTimeOff(t))
	}
	return result
}
