package cancel_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID string, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, tenantID string, id int64, cancelledBy string, cancelledAt time.Time) error
}

// InstanceRepository интерфейс репозитория экземпляров серий
type InstanceRepository interface {
	GetInstance(ctx context.Context, tenantID string, id int64) (*domain.RecurringInstance, error)
	UpdateInstance(ctx context.Context, inst *domain.RecurringInstance) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// AvailabilityInvalidator интерфейс сброса кэша доступности
type AvailabilityInvalidator interface {
	InvalidateDay(ctx context.Context, tenantID string, staffID int64, date time.Time) error
}

// EventPublisher интерфейс публикации событий
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// FreedSlotWatcher получает освободившиеся интервалы (поиск более ранних записей)
type FreedSlotWatcher interface {
	OnBookingCancelled(ctx context.Context, slot domain.FreedSlot) error
}

// Metrics интерфейс сборщика доменных метрик
type Metrics interface {
	IncBookingCancelled(role string)
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
