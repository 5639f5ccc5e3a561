package groups

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/cancel_booking"
)

// GroupRepository интерфейс репозитория групповых записей
type GroupRepository interface {
	GetByID(ctx context.Context, tenantID string, id int64) (*domain.GroupBooking, error)
	IncrementParticipants(ctx context.Context, tenantID string, id int64) (int, error)
	DecrementParticipants(ctx context.Context, tenantID string, id int64) error
	UpdateStatus(ctx context.Context, tenantID string, id int64, status domain.GroupStatus) error
	AddParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
	ListParticipants(ctx context.Context, tenantID string, groupID int64) ([]*domain.Participant, error)
	GetParticipant(ctx context.Context, tenantID string, groupID, id int64) (*domain.Participant, error)
	HasActiveParticipant(ctx context.Context, tenantID string, groupID int64, email string) (bool, error)
	CancelParticipant(ctx context.Context, tenantID string, groupID, id int64) error
}

// BookingCanceller отмена опорного бронирования через журнал
type BookingCanceller interface {
	Execute(ctx context.Context, req *cancel_booking.Request) (*cancel_booking.Response, error)
	NotifyCancelled(ctx context.Context, booking *domain.Booking, actor domain.Actor)
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
