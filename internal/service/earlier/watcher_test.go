package earlier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

const tenant = "salon-1"

var now = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)

type fulfilment struct {
	id      int64
	start   time.Time
	staffID int64
}

type fakeRepo struct {
	candidates []*domain.EarlierCandidate
	listErr    error
	fulfilled  []fulfilment
	expired    []int64
	staleCount int64
}

func (r *fakeRepo) ListActiveCandidates(_ context.Context, _ string, _ int64) ([]*domain.EarlierCandidate, error) {
	return r.candidates, r.listErr
}

func (r *fakeRepo) MarkFulfilled(_ context.Context, _ string, id int64, start time.Time, staffID int64, _ time.Time) error {
	r.fulfilled = append(r.fulfilled, fulfilment{id: id, start: start, staffID: staffID})
	return nil
}

func (r *fakeRepo) MarkExpired(_ context.Context, _ string, ids []int64, _ time.Time) (int64, error) {
	r.expired = append(r.expired, ids...)
	return int64(len(ids)), nil
}

func (r *fakeRepo) ExpireStale(context.Context, time.Time) (int64, error) {
	return r.staleCount, nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakePublisher struct {
	published []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.published = append(p.published, e)
	return nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func at(day, hour int) time.Time {
	return time.Date(2026, 10, day, hour, 0, 0, 0, time.UTC)
}

func candidate(id int64, priority domain.RequestPriority, start time.Time, minutes int) *domain.EarlierCandidate {
	return &domain.EarlierCandidate{
		Request: &domain.EarlierAppointmentRequest{
			ID: id, TenantID: tenant, CustomerEmail: "c@example.com", CurrentBookingID: 100 + id,
			Priority: priority, Status: domain.RequestActive, ExpiresAt: now.AddDate(0, 0, 30),
		},
		CurrentStartAt: start,
		CurrentEndAt:   start.Add(time.Duration(minutes) * time.Minute),
		StaffID:        10,
	}
}

func freed(start time.Time, minutes int) domain.FreedSlot {
	return domain.FreedSlot{
		TenantID: tenant, BookingID: 1, StaffID: 10, ServiceID: 1,
		StartAt: start, EndAt: start.Add(time.Duration(minutes) * time.Minute),
	}
}

func newWatcher(repo *fakeRepo) (*Watcher, *fakePublisher) {
	pub := &fakePublisher{}
	w := NewWatcher(repo, fakeTx{}, pub, nil, time.UTC, logger.NewNop())
	w.timeProvider = fixedClock{t: now}
	return w, pub
}

func TestOnBookingCancelled_FulfilsFirstMatchOnly(t *testing.T) {
	repo := &fakeRepo{candidates: []*domain.EarlierCandidate{
		candidate(1, domain.PriorityUrgent, at(20, 10), 30),
		candidate(2, domain.PriorityNormal, at(21, 10), 30),
	}}
	w, pub := newWatcher(repo)

	require.NoError(t, w.OnBookingCancelled(context.Background(), freed(at(14, 10), 60)))

	require.Len(t, repo.fulfilled, 1)
	assert.Equal(t, int64(1), repo.fulfilled[0].id)
	assert.Equal(t, at(14, 10), repo.fulfilled[0].start)
	require.Len(t, pub.published, 1)
	assert.Equal(t, events.TypeEarlierFulfilled, pub.published[0].Type)
	assert.Equal(t, int64(1), pub.published[0].RequestID)
}

func TestOnBookingCancelled_Filters(t *testing.T) {
	tests := []struct {
		name      string
		candidate *domain.EarlierCandidate
		slot      domain.FreedSlot
		matched   bool
	}{
		{
			name:      "current booking is not later",
			candidate: candidate(1, domain.PriorityNormal, at(14, 9), 30),
			slot:      freed(at(14, 10), 60),
		},
		{
			name:      "duration does not fit",
			candidate: candidate(1, domain.PriorityNormal, at(20, 10), 90),
			slot:      freed(at(14, 10), 60),
		},
		{
			name:      "exact fit",
			candidate: candidate(1, domain.PriorityNormal, at(20, 10), 60),
			slot:      freed(at(14, 10), 60),
			matched:   true,
		},
		{
			name: "slot after expiry",
			candidate: func() *domain.EarlierCandidate {
				c := candidate(1, domain.PriorityNormal, at(20, 10), 30)
				c.Request.ExpiresAt = at(14, 9)
				return c
			}(),
			slot: freed(at(14, 10), 60),
		},
		{
			name: "strict desired date mismatch",
			candidate: func() *domain.EarlierCandidate {
				c := candidate(1, domain.PriorityNormal, at(20, 10), 30)
				d := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
				c.Request.DesiredDate = &d
				return c
			}(),
			slot: freed(at(14, 10), 60),
		},
		{
			name: "flexible desired date",
			candidate: func() *domain.EarlierCandidate {
				c := candidate(1, domain.PriorityNormal, at(20, 10), 30)
				d := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
				c.Request.DesiredDate = &d
				c.Request.FlexibleTiming = true
				return c
			}(),
			slot:    freed(at(14, 10), 60),
			matched: true,
		},
		{
			name: "strict desired date match",
			candidate: func() *domain.EarlierCandidate {
				c := candidate(1, domain.PriorityNormal, at(20, 10), 30)
				d := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
				c.Request.DesiredDate = &d
				return c
			}(),
			slot:    freed(at(14, 10), 60),
			matched: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{candidates: []*domain.EarlierCandidate{tt.candidate}}
			w, _ := newWatcher(repo)

			require.NoError(t, w.OnBookingCancelled(context.Background(), tt.slot))
			if tt.matched {
				assert.Len(t, repo.fulfilled, 1)
			} else {
				assert.Empty(t, repo.fulfilled)
			}
		})
	}
}

func TestOnBookingCancelled_ExpiresOverdueCandidates(t *testing.T) {
	overdue := candidate(1, domain.PriorityUrgent, at(20, 10), 30)
	overdue.Request.ExpiresAt = now.Add(-time.Hour)
	repo := &fakeRepo{candidates: []*domain.EarlierCandidate{
		overdue,
		candidate(2, domain.PriorityNormal, at(20, 12), 30),
	}}
	w, _ := newWatcher(repo)

	require.NoError(t, w.OnBookingCancelled(context.Background(), freed(at(14, 10), 60)))

	assert.Equal(t, []int64{1}, repo.expired)
	require.Len(t, repo.fulfilled, 1)
	assert.Equal(t, int64(2), repo.fulfilled[0].id)
}

func TestOnBookingCancelled_PastSlotIgnored(t *testing.T) {
	repo := &fakeRepo{candidates: []*domain.EarlierCandidate{candidate(1, domain.PriorityNormal, at(20, 10), 30)}}
	w, pub := newWatcher(repo)

	require.NoError(t, w.OnBookingCancelled(context.Background(), freed(now.Add(-time.Hour), 60)))
	assert.Empty(t, repo.fulfilled)
	assert.Empty(t, pub.published)
}

func TestOnBookingCancelled_RepositoryError(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("db down")}
	w, _ := newWatcher(repo)

	err := w.OnBookingCancelled(context.Background(), freed(at(14, 10), 60))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExpireStale(t *testing.T) {
	repo := &fakeRepo{staleCount: 3}
	w, _ := newWatcher(repo)

	count, err := w.ExpireStale(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
