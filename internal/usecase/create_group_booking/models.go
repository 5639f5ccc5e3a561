package create_group_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Request шаблон групповой записи
type Request struct {
	TenantID            string
	Actor               domain.Actor
	ServiceID           int64
	StaffID             int64
	PrimaryEmail        string
	StartAt             time.Time
	MaxParticipants     int
	PricePerPersonCents int64
	Participants        []ParticipantInput
}

// ParticipantInput участник из запроса
type ParticipantInput struct {
	Name  string
	Email string
	Phone *string
}

// Response созданная группа с участниками
type Response struct {
	Group *domain.GroupBooking
}
