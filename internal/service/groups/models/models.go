package models

import (
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// ParticipantRequest участник в запросе
type ParticipantRequest struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Phone *string `json:"phone,omitempty"`
}

// GroupResponse групповая запись в ответе API
type GroupResponse struct {
	ID                  int64                  `json:"id"`
	ServiceID           int64                  `json:"serviceId"`
	StaffID             int64                  `json:"staffId"`
	BookingID           int64                  `json:"bookingId"`
	PrimaryEmail        string                 `json:"primaryEmail"`
	StartAt             time.Time              `json:"startAt"`
	EndAt               time.Time              `json:"endAt"`
	MaxParticipants     int                    `json:"maxParticipants"`
	CurrentParticipants int                    `json:"currentParticipants"`
	PricePerPersonCents int64                  `json:"pricePerPersonCents"`
	Status              string                 `json:"status"`
	CreatedBy           string                 `json:"createdBy"`
	Participants        []*ParticipantResponse `json:"participants"`
}

// ParticipantResponse участник в ответе API
type ParticipantResponse struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone,omitempty"`
	Status string  `json:"status"`
}

// FromDomainGroup конвертирует групповую запись
func FromDomainGroup(g *domain.GroupBooking) *GroupResponse {
	resp := &GroupResponse{
		ID:                  g.ID,
		ServiceID:           g.ServiceID,
		StaffID:             g.StaffID,
		BookingID:           g.BookingID,
		PrimaryEmail:        g.PrimaryEmail,
		StartAt:             g.StartAt.UTC(),
		EndAt:               g.EndAt.UTC(),
		MaxParticipants:     g.MaxParticipants,
		CurrentParticipants: g.CurrentParticipants,
		PricePerPersonCents: g.PricePerPersonCents,
		Status:              string(g.Status),
		CreatedBy:           g.CreatedBy,
		Participants:        make([]*ParticipantResponse, 0, len(g.Participants)),
	}
	for _, p := range g.Participants {
		resp.Participants = append(resp.Participants, FromDomainParticipant(p))
	}
	return resp
}

// FromDomainParticipant конвертирует участника
func FromDomainParticipant(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:     p.ID,
		Name:   p.Name,
		Email:  p.Email,
		Phone:  p.Phone,
		Status: string(p.Status),
	}
}
