package request_earlier_slot

import (
	"context"

	requestEarlierSlot "github.com/m04kA/SMC-SalonScheduler/internal/usecase/request_earlier_slot"
)

type RequestEarlierSlotUseCase interface {
	Execute(ctx context.Context, req *requestEarlierSlot.Request) (*requestEarlierSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
