package earlier

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
)

// EarlierRepository интерфейс репозитория запросов на более раннюю запись
type EarlierRepository interface {
	ListActiveCandidates(ctx context.Context, tenantID string, staffID int64) ([]*domain.EarlierCandidate, error)
	MarkFulfilled(ctx context.Context, tenantID string, id int64, offeredStart time.Time, offeredStaffID int64, at time.Time) error
	MarkExpired(ctx context.Context, tenantID string, ids []int64, at time.Time) (int64, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий (nil - события отключены)
type EventPublisher interface {
	Publish(ctx context.Context, e events.Event) error
}

// Metrics доменные счетчики
type Metrics interface {
	IncEarlierFulfilled()
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

type nopMetrics struct{}

func (nopMetrics) IncEarlierFulfilled() {}
