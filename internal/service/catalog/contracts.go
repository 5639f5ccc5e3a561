package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг, мастеров и расписаний
type CatalogRepository interface {
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) error
	GetService(ctx context.Context, tenantID string, id int64) (*domain.Service, error)

	CreateStaff(ctx context.Context, staff *domain.StaffMember) (*domain.StaffMember, error)
	GetStaff(ctx context.Context, tenantID string, id int64) (*domain.StaffMember, error)
	ListActiveStaff(ctx context.Context, tenantID string) ([]*domain.StaffMember, error)
	SetStaffActive(ctx context.Context, tenantID string, id int64, active bool) error

	ListStaffSchedules(ctx context.Context, tenantID string, staffID int64) ([]*domain.Schedule, error)
	GetSchedule(ctx context.Context, tenantID string, id int64) (*domain.Schedule, error)
	CreateSchedule(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	UpdateSchedule(ctx context.Context, schedule *domain.Schedule) error
	DeleteSchedule(ctx context.Context, tenantID string, id int64) error

	ListTimeOff(ctx context.Context, tenantID string, staffID int64) ([]*domain.TimeOff, error)
	GetTimeOff(ctx context.Context, tenantID string, id int64) (*domain.TimeOff, error)
	CreateTimeOff(ctx context.Context, timeOff *domain.TimeOff) (*domain.TimeOff, error)
	DeleteTimeOff(ctx context.Context, tenantID string, id int64) error
}

// LockRepository блокировка мастера на время проверки пересечений расписания
type LockRepository interface {
	LockStaff(ctx context.Context, tenantID string, staffID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator сброс кэша доступности (nil - кэш отключен)
type AvailabilityInvalidator interface {
	InvalidateDay(ctx context.Context, tenantID string, staffID int64, date time.Time) error
	InvalidateRange(ctx context.Context, tenantID string, staffID int64, from, to time.Time) error
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

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}
