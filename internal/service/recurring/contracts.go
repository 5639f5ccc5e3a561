package recurring

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
)

// RecurringRepository интерфейс репозитория регулярных серий
type RecurringRepository interface {
	GetSeries(ctx context.Context, tenantID string, id int64) (*domain.RecurringSeries, error)
	UpdateSeriesStatus(ctx context.Context, tenantID string, id int64, status domain.SeriesStatus) error
	ListInstances(ctx context.Context, tenantID string, seriesID int64) ([]*domain.RecurringInstance, error)
	GetInstance(ctx context.Context, tenantID string, id int64) (*domain.RecurringInstance, error)
	UpdateInstance(ctx context.Context, inst *domain.RecurringInstance) error
}

// BookingCreator журнал бронирований
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
	NotifyCreated(ctx context.Context, booking *domain.Booking, source domain.BookingSource)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
