package create_group_booking

import (
	"context"

	createGroupBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_group_booking"
)

type CreateGroupBookingUseCase interface {
	Execute(ctx context.Context, req *createGroupBooking.Request) (*createGroupBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
