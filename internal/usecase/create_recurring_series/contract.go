package create_recurring_series

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и мастеров
type CatalogRepository interface {
	GetService(ctx context.Context, tenantID string, id int64) (*domain.Service, error)
	GetStaff(ctx context.Context, tenantID string, id int64) (*domain.StaffMember, error)
}

// RecurringRepository интерфейс репозитория регулярных серий
type RecurringRepository interface {
	CreateSeries(ctx context.Context, series *domain.RecurringSeries) (*domain.RecurringSeries, error)
	CreateInstances(ctx context.Context, instances []*domain.RecurringInstance) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
