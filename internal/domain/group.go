package domain

import "time"

// GroupStatus of a group booking
type GroupStatus string

const (
	GroupConfirmed GroupStatus = "confirmed"
	GroupCancelled GroupStatus = "cancelled"
)

// ParticipantStatus of a group participant
type ParticipantStatus string

const (
	ParticipantConfirmed ParticipantStatus = "confirmed"
	ParticipantCancelled ParticipantStatus = "cancelled"
)

// GroupBooking shares one staff interval between up to MaxParticipants people.
// CurrentParticipants never exceeds MaxParticipants.
type GroupBooking struct {
	ID                  int64
	TenantID            string
	ServiceID           int64
	StaffID             int64
	BookingID           int64
	PrimaryEmail        string
	StartAt             time.Time
	EndAt               time.Time
	MaxParticipants     int
	CurrentParticipants int
	PricePerPersonCents int64
	Status              GroupStatus
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time

	Participants []*Participant
}

// HasCapacity returns true while another participant fits
func (g *GroupBooking) HasCapacity() bool {
	return g.CurrentParticipants < g.MaxParticipants
}

// IsCancelled returns true if the group has been cancelled
func (g *GroupBooking) IsCancelled() bool {
	return g.Status == GroupCancelled
}

// Participant of a group booking
type Participant struct {
	ID        int64
	TenantID  string
	GroupID   int64
	Name      string
	Email     string
	Phone     *string
	Status    ParticipantStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
