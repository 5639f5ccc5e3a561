package request_earlier_slot

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Request модель запроса на более раннюю запись
type Request struct {
	TenantID         string
	Actor            domain.Actor
	CurrentBookingID int64
	DesiredDate      *time.Time
	FlexibleTiming   bool
	Priority         domain.RequestPriority // По умолчанию normal
}

// Response созданный запрос
type Response struct {
	Request *domain.EarlierAppointmentRequest
}
