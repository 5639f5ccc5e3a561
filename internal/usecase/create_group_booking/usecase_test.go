package create_group_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/usecase/create_booking"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

const tenant = "salon-1"

var (
	start = time.Date(2026, 10, 12, 9, 0, 0, 0, time.UTC)
	admin = domain.Actor{Role: domain.RoleAdmin, Email: "admin@salon.test"}
)

type fakeCreator struct {
	err      error
	created  []*domain.Booking
	notified []domain.BookingSource
}

func (c *fakeCreator) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	if c.err != nil {
		return nil, c.err
	}
	b := &domain.Booking{
		ID:            int64(len(c.created) + 1),
		TenantID:      req.TenantID,
		StaffID:       req.StaffID,
		CustomerEmail: req.CustomerEmail,
		StartAt:       req.StartAt,
		EndAt:         req.StartAt.Add(time.Hour),
		Status:        domain.BookingConfirmed,
	}
	c.created = append(c.created, b)
	return &create_booking.Response{Booking: b}, nil
}

func (c *fakeCreator) NotifyCreated(_ context.Context, _ *domain.Booking, source domain.BookingSource) {
	c.notified = append(c.notified, source)
}

type fakeBookings struct{ links map[int64]int64 }

func (f *fakeBookings) SetGroupBookingID(_ context.Context, _ string, id, groupID int64) error {
	f.links[id] = groupID
	return nil
}

type fakeGroups struct {
	groups       []*domain.GroupBooking
	participants []*domain.Participant
}

func (f *fakeGroups) Create(_ context.Context, g *domain.GroupBooking) (*domain.GroupBooking, error) {
	g.ID = int64(len(f.groups) + 1)
	f.groups = append(f.groups, g)
	return g, nil
}

func (f *fakeGroups) AddParticipant(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
	p.ID = int64(len(f.participants) + 1)
	f.participants = append(f.participants, p)
	return p, nil
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func participants(n int) []ParticipantInput {
	result := make([]ParticipantInput, n)
	for i := range result {
		result[i] = ParticipantInput{Name: fmt.Sprintf("Guest %d", i+1), Email: fmt.Sprintf("guest%d@example.com", i+1)}
	}
	return result
}

func newUseCase() (*UseCase, *fakeCreator, *fakeBookings, *fakeGroups) {
	creator := &fakeCreator{}
	bookings := &fakeBookings{links: map[int64]int64{}}
	groups := &fakeGroups{}
	return NewUseCase(creator, bookings, groups, fakeTx{}, logger.NewNop()), creator, bookings, groups
}

func request(max int, people []ParticipantInput) *Request {
	return &Request{
		TenantID:            tenant,
		Actor:               admin,
		ServiceID:           1,
		StaffID:             10,
		PrimaryEmail:        "lead@example.com",
		StartAt:             start,
		MaxParticipants:     max,
		PricePerPersonCents: 2500,
		Participants:        people,
	}
}

func TestExecute_RejectsTooManyParticipants(t *testing.T) {
	uc, creator, _, groups := newUseCase()

	_, err := uc.Execute(context.Background(), request(5, participants(6)))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Empty(t, creator.created)
	assert.Empty(t, groups.groups)
}

func TestExecute_CreatesGroupOnBackingBooking(t *testing.T) {
	uc, creator, bookings, groups := newUseCase()

	people := append(participants(3), ParticipantInput{Name: "  ", Email: "blank@example.com"})
	resp, err := uc.Execute(context.Background(), request(5, people))
	require.NoError(t, err)

	g := resp.Group
	assert.Equal(t, 3, g.CurrentParticipants, "participants without a name are ignored")
	assert.Len(t, g.Participants, 3)
	assert.Equal(t, creator.created[0].ID, g.BookingID)
	assert.Equal(t, start.Add(time.Hour), g.EndAt)
	assert.Equal(t, g.ID, bookings.links[g.BookingID])
	assert.Len(t, groups.participants, 3)
	assert.Equal(t, []domain.BookingSource{domain.SourceGroup}, creator.notified)
}

func TestExecute_ExactlyFullGroup(t *testing.T) {
	uc, _, _, _ := newUseCase()

	resp, err := uc.Execute(context.Background(), request(5, participants(5)))
	require.NoError(t, err)
	assert.False(t, resp.Group.HasCapacity())
}

func TestExecute_LedgerErrorsPropagate(t *testing.T) {
	uc, creator, _, groups := newUseCase()
	creator.err = create_booking.ErrSlotOverlap

	_, err := uc.Execute(context.Background(), request(5, participants(2)))
	assert.ErrorIs(t, err, domain.ErrOverlap)
	assert.Empty(t, groups.groups)
	assert.Empty(t, creator.notified)
}

func TestExecute_Validation(t *testing.T) {
	uc, _, _, _ := newUseCase()

	for _, max := range []int{0, 51} {
		_, err := uc.Execute(context.Background(), request(max, nil))
		assert.ErrorIs(t, err, domain.ErrValidation)
	}

	req := request(5, nil)
	req.PricePerPersonCents = -1
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = request(5, nil)
	req.PrimaryEmail = "lead"
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_DuplicateEmailsCountOnce(t *testing.T) {
	uc, _, _, groups := newUseCase()

	people := []ParticipantInput{
		{Name: "Ann", Email: "ann@example.com"},
		{Name: "Ann again", Email: "  ANN@example.com "},
		{Name: "Bob", Email: "bob@example.com"},
	}
	resp, err := uc.Execute(context.Background(), request(2, people))
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Group.CurrentParticipants)
	require.Len(t, groups.participants, 2)
	assert.Equal(t, "Ann", resp.Group.Participants[0].Name)
	assert.Equal(t, "bob@example.com", resp.Group.Participants[1].Email)
}
