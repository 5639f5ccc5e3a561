package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListConfirmedOverlapping(ctx context.Context, tenantID string, staffID int64, from, to time.Time) ([]*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID string, id int64) (*domain.Service, error)
	GetStaff(ctx context.Context, tenantID string, id int64) (*domain.StaffMember, error)
}

// BanRepository интерфейс репозитория заблокированных клиентов
type BanRepository interface {
	IsBanned(ctx context.Context, tenantID, email string) (bool, error)
}

// LockRepository интерфейс межпроцессной блокировки календаря мастера
type LockRepository interface {
	LockStaff(ctx context.Context, tenantID string, staffID int64) error
}

// KeyLocker интерфейс внутрипроцессной блокировки по ключу
type KeyLocker interface {
	Lock(key string) (unlock func())
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator интерфейс сброса кэша доступности
type AvailabilityInvalidator interface {
	InvalidateDay(ctx context.Context, tenantID string, staffID int64, date time.Time) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Metrics интерфейс сборщика доменных метрик
type Metrics interface {
	IncBookingCreated(source string)
	IncBookingRejected(reason string)
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
