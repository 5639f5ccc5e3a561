package create_group_booking

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups/models"
	createGroupBooking "github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_group_booking"
)

// CreateGroupRequest HTTP request model
type CreateGroupRequest struct {
	ServiceID       int64              `json:"serviceId"`
	StaffID         int64              `json:"staffId"`
	PrimaryEmail    string             `json:"primaryEmail"`
	StartAt         time.Time          `json:"startAt"` // RFC 3339
	MaxParticipants int                `json:"maxParticipants"`
	PricePerPerson  int64              `json:"pricePerPerson"` // в копейках
	Participants    []ParticipantInput `json:"participants"`
}

// ParticipantInput участник в запросе
type ParticipantInput struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateGroupRequest) ToUseCaseRequest(tenantID string, actor domain.Actor) *createGroupBooking.Request {
	participants := make([]createGroupBooking.ParticipantInput, 0, len(r.Participants))
	for _, p := range r.Participants {
		participants = append(participants, createGroupBooking.ParticipantInput{
			Name:  p.Name,
			Email: p.Email,
			Phone: p.Phone,
		})
	}

	return &createGroupBooking.Request{
		TenantID:            tenantID,
		Actor:               actor,
		ServiceID:           r.ServiceID,
		StaffID:             r.StaffID,
		PrimaryEmail:        domain.NormalizeEmail(r.PrimaryEmail),
		StartAt:             r.StartAt,
		MaxParticipants:     r.MaxParticipants,
		PricePerPersonCents: r.PricePerPerson,
		Participants:        participants,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createGroupBooking.Response) *models.GroupResponse {
	return models.FromDomainGroup(resp.Group)
}
