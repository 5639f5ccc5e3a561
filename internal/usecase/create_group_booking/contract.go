package create_group_booking

import (
	"context"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
)

// BookingCreator журнал бронирований
type BookingCreator interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
	NotifyCreated(ctx context.Context, booking *domain.Booking, source domain.BookingSource)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	SetGroupBookingID(ctx context.Context, tenantID string, id, groupID int64) error
}

// GroupRepository интерфейс репозитория групповых записей
type GroupRepository interface {
	Create(ctx context.Context, g *domain.GroupBooking) (*domain.GroupBooking, error)
	AddParticipant(ctx context.Context, p *domain.Participant) (*domain.Participant, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
