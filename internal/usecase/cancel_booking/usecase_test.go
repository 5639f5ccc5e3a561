package cancel_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	recurringRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/recurring"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

const tenant = "salon-1"

var (
	now   = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)
	admin = domain.Actor{Role: domain.RoleAdmin, Email: "admin@salon.test"}
	ann   = domain.Actor{Role: domain.RoleCustomer, Email: "ann@example.com"}
	bob   = domain.Actor{Role: domain.RoleCustomer, Email: "bob@example.com"}
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeRepo struct {
	bookings map[int64]*domain.Booking
	cancels  int
}

func (r *fakeRepo) GetByID(_ context.Context, _ string, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeRepo) Cancel(_ context.Context, _ string, id int64, by string, at time.Time) error {
	b := r.bookings[id]
	if b.IsCancelled() {
		return bookingRepo.ErrNotCancellable
	}
	r.cancels++
	b.Status = domain.BookingCancelled
	b.CancelledBy = &by
	b.CancelledAt = &at
	return nil
}

type fakeInstances struct {
	instances map[int64]*domain.RecurringInstance
	updates   int
}

func (r *fakeInstances) GetInstance(_ context.Context, _ string, id int64) (*domain.RecurringInstance, error) {
	inst, ok := r.instances[id]
	if !ok {
		return nil, recurringRepo.ErrInstanceNotFound
	}
	copied := *inst
	return &copied, nil
}

func (r *fakeInstances) UpdateInstance(_ context.Context, inst *domain.RecurringInstance) error {
	r.updates++
	r.instances[inst.ID] = inst
	return nil
}

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fakeWatcher struct {
	slots []domain.FreedSlot
	err   error
}

func (w *fakeWatcher) OnBookingCancelled(_ context.Context, slot domain.FreedSlot) error {
	w.slots = append(w.slots, slot)
	return w.err
}

func newUseCase(startIn time.Duration) (*UseCase, *fakeRepo, *fakeWatcher) {
	repo := &fakeRepo{bookings: map[int64]*domain.Booking{
		1: {
			ID:            1,
			TenantID:      tenant,
			StaffID:       10,
			CustomerEmail: "ann@example.com",
			StartAt:       now.Add(startIn),
			EndAt:         now.Add(startIn + 30*time.Minute),
			Status:        domain.BookingConfirmed,
		},
	}}
	watcher := &fakeWatcher{}
	instances := &fakeInstances{instances: map[int64]*domain.RecurringInstance{}}
	uc := NewUseCase(repo, instances, fakeTx{}, nil, nil, watcher, nil, 24*time.Hour, time.UTC, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc, repo, watcher
}

func TestExecute_CustomerTooLateAdminAllowed(t *testing.T) {
	uc, repo, _ := newUseCase(12 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, BookingID: 1})
	assert.ErrorIs(t, err, domain.ErrTooLate)
	assert.Equal(t, domain.BookingConfirmed, repo.bookings[1].Status)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, resp.Booking.Status)
	assert.Equal(t, "admin@salon.test", *repo.bookings[1].CancelledBy)
}

func TestExecute_OwnerInsideWindow(t *testing.T) {
	uc, repo, watcher := newUseCase(48 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, BookingID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelled, repo.bookings[1].Status)
	require.Len(t, watcher.slots, 1)
	assert.Equal(t, int64(10), watcher.slots[0].StaffID)
	assert.Equal(t, now.Add(48*time.Hour), watcher.slots[0].StartAt)
}

func TestExecute_WindowBoundaryIsTooLate(t *testing.T) {
	uc, _, _ := newUseCase(24 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, BookingID: 1})
	assert.ErrorIs(t, err, ErrTooLateToCancel)
}

func TestExecute_OtherCustomerForbidden(t *testing.T) {
	uc, _, _ := newUseCase(48 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: bob, BookingID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExecute_CancelTwice(t *testing.T) {
	uc, repo, watcher := newUseCase(48 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1})
	require.NoError(t, err)
	cancelledAt := *repo.bookings[1].CancelledAt

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, repo.cancels)
	assert.Equal(t, cancelledAt, *repo.bookings[1].CancelledAt)
	assert.Len(t, watcher.slots, 1)
}

func TestExecute_NotFound(t *testing.T) {
	uc, _, _ := newUseCase(48 * time.Hour)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 2})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExecute_WatcherFailureDoesNotRollBack(t *testing.T) {
	uc, repo, watcher := newUseCase(48 * time.Hour)
	watcher.err = errors.New("watch failed")

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, repo.bookings[1].Status)
}

func TestExecute_GroupBackingBookingRejected(t *testing.T) {
	uc, repo, watcher := newUseCase(48 * time.Hour)
	groupID := int64(77)
	repo.bookings[1].GroupBookingID = &groupID

	for _, actor := range []domain.Actor{ann, admin} {
		_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: actor, BookingID: 1})
		assert.ErrorIs(t, err, ErrPartOfGroup)
		assert.ErrorIs(t, err, domain.ErrConflict)
	}
	assert.Equal(t, domain.BookingConfirmed, repo.bookings[1].Status)
	assert.Zero(t, repo.cancels)
	assert.Empty(t, watcher.slots)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1, WithGroup: true})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, resp.Booking.Status)
}

func TestExecute_RecurringInstanceCancelledWithBooking(t *testing.T) {
	uc, repo, _ := newUseCase(48 * time.Hour)
	instances := uc.instanceRepo.(*fakeInstances)

	bookingID := int64(1)
	instanceID := int64(5)
	repo.bookings[1].RecurringInstanceID = &instanceID
	instances.instances[instanceID] = &domain.RecurringInstance{
		ID:        instanceID,
		TenantID:  tenant,
		SeriesID:  3,
		Status:    domain.InstanceConfirmed,
		BookingID: &bookingID,
	}

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, BookingID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelled, repo.bookings[1].Status)
	assert.Equal(t, domain.InstanceCancelled, instances.instances[instanceID].Status)
	assert.Equal(t, 1, instances.updates)
}

func TestExecute_RecurringInstanceOfAnotherBookingUntouched(t *testing.T) {
	uc, repo, _ := newUseCase(48 * time.Hour)
	instances := uc.instanceRepo.(*fakeInstances)

	otherBooking := int64(9)
	instanceID := int64(5)
	repo.bookings[1].RecurringInstanceID = &instanceID
	instances.instances[instanceID] = &domain.RecurringInstance{
		ID:        instanceID,
		TenantID:  tenant,
		Status:    domain.InstanceConfirmed,
		BookingID: &otherBooking,
	}

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: admin, BookingID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.InstanceConfirmed, instances.instances[instanceID].Status)
	assert.Zero(t, instances.updates)
}
