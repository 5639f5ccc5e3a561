package bans

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// BanRepository интерфейс репозитория блокировок клиентов
type BanRepository interface {
	Create(ctx context.Context, ban *domain.CustomerBan) (*domain.CustomerBan, error)
	Delete(ctx context.Context, tenantID, email string) error
	List(ctx context.Context, tenantID string) ([]*domain.CustomerBan, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
