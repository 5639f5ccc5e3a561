package create_booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonScheduler/internal/integrations/events"
	"github.com/m04kA/SMC-SalonScheduler/pkg/keylock"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

const tenant = "salon-1"

var (
	monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	admin  = domain.Actor{Role: domain.RoleAdmin, Email: "admin@salon.test"}
	ann    = domain.Actor{Role: domain.RoleCustomer, Email: "ann@example.com"}
)

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	delay    time.Duration
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.ID = int64(len(r.bookings) + 1)
	r.bookings = append(r.bookings, b)
	return b, nil
}

func (r *fakeBookingRepo) ListConfirmedOverlapping(_ context.Context, _ string, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	r.mu.Lock()
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if b.StaffID == staffID && b.IsConfirmed() && b.StartAt.Before(to) && from.Before(b.EndAt) {
			result = append(result, b)
		}
	}
	r.mu.Unlock()

	// widens the window between the overlap check and the insert
	time.Sleep(r.delay)
	return result, nil
}

func (r *fakeBookingRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

type fakeCatalog struct {
	services map[int64]*domain.Service
	staff    map[int64]*domain.StaffMember
}

func (f *fakeCatalog) GetService(_ context.Context, _ string, id int64) (*domain.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrServiceNotFound
}

func (f *fakeCatalog) GetStaff(_ context.Context, _ string, id int64) (*domain.StaffMember, error) {
	if s, ok := f.staff[id]; ok {
		return s, nil
	}
	return nil, catalogRepo.ErrStaffNotFound
}

type fakeBans struct{ banned map[string]bool }

func (f *fakeBans) IsBanned(_ context.Context, _ string, email string) (bool, error) {
	return f.banned[email], nil
}

type fakeLocks struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeLocks) LockStaff(context.Context, string, int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

type fakeTx struct{}

func (fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCache struct {
	mu    sync.Mutex
	dates []time.Time
}

func (c *fakeCache) InvalidateDay(_ context.Context, _ string, _ int64, date time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dates = append(c.dates, date)
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, e)
	return errors.New("broker unavailable")
}

type fixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	catalog   *fakeCatalog
	bans      *fakeBans
	locks     *fakeLocks
	cache     *fakeCache
	publisher *fakePublisher
}

func newFixture() *fixture {
	f := &fixture{
		bookings: &fakeBookingRepo{},
		catalog: &fakeCatalog{
			services: map[int64]*domain.Service{
				1: {ID: 1, TenantID: tenant, DurationMinutes: 30, Active: true},
				2: {ID: 2, TenantID: tenant, DurationMinutes: 30, Active: false},
			},
			staff: map[int64]*domain.StaffMember{
				10: {ID: 10, TenantID: tenant, Active: true},
			},
		},
		bans:      &fakeBans{banned: map[string]bool{}},
		locks:     &fakeLocks{},
		cache:     &fakeCache{},
		publisher: &fakePublisher{},
	}
	f.uc = NewUseCase(f.bookings, f.catalog, f.bans, f.locks, keylock.New(), fakeTx{},
		f.cache, f.publisher, nil, time.UTC, logger.NewNop())
	f.uc.timeProvider = fixedClock{now: monday.AddDate(0, 0, -7)}
	return f
}

func request(actor domain.Actor, start time.Time) *Request {
	return &Request{
		TenantID:      tenant,
		Actor:         actor,
		ServiceID:     1,
		StaffID:       10,
		StartAt:       start,
		CustomerEmail: "ann@example.com",
	}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), request(ann, at(9, 0)))
	require.NoError(t, err)

	b := resp.Booking
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, at(9, 30), b.EndAt)
	assert.Equal(t, "ann@example.com", b.CreatedBy)
	assert.Equal(t, 1, f.locks.calls)

	require.Len(t, f.cache.dates, 1)
	assert.Equal(t, "2026-10-12", f.cache.dates[0].Format(domain.DateFormat))
	require.Len(t, f.publisher.published, 1, "publish failure must not fail the booking")
	assert.Equal(t, events.TypeBookingCreated, f.publisher.published[0].Type)
}

func TestExecute_OverlapWithExistingBooking(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), request(admin, at(9, 0)))
	require.NoError(t, err)

	_, err = f.uc.Execute(context.Background(), request(admin, at(9, 15)))
	assert.ErrorIs(t, err, domain.ErrOverlap)
	assert.ErrorIs(t, err, ErrSlotOverlap)

	_, err = f.uc.Execute(context.Background(), request(admin, at(9, 30)))
	assert.NoError(t, err, "touching intervals do not overlap")
	assert.Equal(t, 2, f.bookings.count())
}

func TestExecute_BannedCustomerWritesNothing(t *testing.T) {
	f := newFixture()
	f.bans.banned["ann@example.com"] = true

	req := request(ann, at(9, 0))
	req.ServiceID = 999 // ban is checked before the catalog

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBanned)
	assert.Equal(t, 0, f.bookings.count())
	assert.Equal(t, 0, f.locks.calls)
	assert.Empty(t, f.publisher.published)
}

func TestExecute_BanMatchesNormalizedEmail(t *testing.T) {
	f := newFixture()
	f.bans.banned["ann@example.com"] = true

	req := request(admin, at(9, 0))
	req.CustomerEmail = "  Ann@Example.com "

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrBanned)
}

func TestExecute_CustomerRules(t *testing.T) {
	f := newFixture()

	other := request(domain.Actor{Role: domain.RoleCustomer, Email: "bob@example.com"}, at(9, 0))
	_, err := f.uc.Execute(context.Background(), other)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	f.uc.timeProvider = fixedClock{now: at(12, 0)}
	_, err = f.uc.Execute(context.Background(), request(ann, at(9, 0)))
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = f.uc.Execute(context.Background(), request(admin, at(9, 0)))
	assert.NoError(t, err, "admins may record past bookings")
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	req := request(admin, at(9, 0))
	req.ServiceID = 2
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req = request(admin, at(9, 0))
	req.StaffID = 11
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStaffNotFound)
	assert.Equal(t, 0, f.bookings.count())
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture()

	req := request(admin, at(9, 0))
	req.CustomerEmail = "not-an-email"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)

	req = request(admin, time.Time{})
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_LockFailureIsInternal(t *testing.T) {
	f := newFixture()
	f.locks.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), request(admin, at(9, 0)))
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, domain.IsDomainError(err))
}

func TestExecute_ConcurrentDoubleBooking(t *testing.T) {
	f := newFixture()
	f.bookings.delay = 20 * time.Millisecond

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Execute(context.Background(), request(admin, at(9, 0)))
		}(i)
	}
	wg.Wait()

	var ok, overlap int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrOverlap):
			overlap++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, overlap)
	assert.Equal(t, 1, f.bookings.count())
}
