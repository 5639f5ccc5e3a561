package get_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг, мастеров и расписаний
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID string, id int64) (*domain.Service, error)
	GetStaff(ctx context.Context, tenantID string, id int64) (*domain.StaffMember, error)
	ListActiveStaff(ctx context.Context, tenantID string) ([]*domain.StaffMember, error)
	ListSchedules(ctx context.Context, tenantID string, staffID int64, weekday int) ([]*domain.Schedule, error)
	HasTimeOff(ctx context.Context, tenantID string, staffID int64, date time.Time) (bool, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListConfirmedOverlapping(ctx context.Context, tenantID string, staffID int64, from, to time.Time) ([]*domain.Booking, error)
}

// AvailabilityCache интерфейс кэша рассчитанных слотов
type AvailabilityCache interface {
	Get(ctx context.Context, tenantID string, staffID int64, date time.Time, durationMinutes int) ([]time.Time, int64, bool, error)
	Set(ctx context.Context, tenantID string, staffID int64, date time.Time, durationMinutes int, version int64, starts []time.Time) (bool, error)
}

// Metrics интерфейс сборщика метрик кэша
type Metrics interface {
	IncCache(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
