package get_availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	catalogRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

const tenant = "salon-1"

// 2026-10-12 is a Monday
var monday = time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCatalog struct {
	services  map[int64]*domain.Service
	staff     []*domain.StaffMember
	schedules map[int64][]*domain.Schedule
	timeOff   map[int64]bool
	calls     int
}

func (f *fakeCatalog) GetService(_ context.Context, _ string, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return s, nil
}

func (f *fakeCatalog) GetStaff(_ context.Context, _ string, id int64) (*domain.StaffMember, error) {
	for _, s := range f.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, catalogRepo.ErrStaffNotFound
}

func (f *fakeCatalog) ListActiveStaff(context.Context, string) ([]*domain.StaffMember, error) {
	active := make([]*domain.StaffMember, 0)
	for _, s := range f.staff {
		if s.Active {
			active = append(active, s)
		}
	}
	return active, nil
}

func (f *fakeCatalog) ListSchedules(_ context.Context, _ string, staffID int64, weekday int) ([]*domain.Schedule, error) {
	f.calls++
	result := make([]*domain.Schedule, 0)
	for _, s := range f.schedules[staffID] {
		if s.Weekday == weekday {
			result = append(result, s)
		}
	}
	return result, nil
}

func (f *fakeCatalog) HasTimeOff(_ context.Context, _ string, staffID int64, _ time.Time) (bool, error) {
	return f.timeOff[staffID], nil
}

type fakeBookings struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookings) ListConfirmedOverlapping(_ context.Context, _ string, staffID int64, from, to time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.StaffID == staffID && b.StartAt.Before(to) && from.Before(b.EndAt) {
			result = append(result, b)
		}
	}
	return result, nil
}

type memCache struct {
	data     map[string][]time.Time
	versions map[string]int64
	// onGet имитирует инвалидацию, пришедшую во время расчета
	onGet func(key string)
}

func (c *memCache) key(staffID int64, date time.Time, d int) string {
	return fmt.Sprintf("%d/%s/%d", staffID, date.Format(domain.DateFormat), d)
}

func (c *memCache) Get(_ context.Context, _ string, staffID int64, date time.Time, d int) ([]time.Time, int64, bool, error) {
	key := c.key(staffID, date, d)
	v, ok := c.data[key]
	version := c.versions[key]
	if c.onGet != nil {
		c.onGet(key)
	}
	return v, version, ok, nil
}

func (c *memCache) Set(_ context.Context, _ string, staffID int64, date time.Time, d int, version int64, starts []time.Time) (bool, error) {
	key := c.key(staffID, date, d)
	if c.versions[key] != version {
		return false, nil
	}
	c.data[key] = starts
	return true, nil
}

func (c *memCache) invalidate(key string) {
	delete(c.data, key)
	c.versions[key]++
}

func newCatalog(durationMinutes int, schedules ...*domain.Schedule) *fakeCatalog {
	return &fakeCatalog{
		services: map[int64]*domain.Service{
			1: {ID: 1, TenantID: tenant, Name: "Cut", DurationMinutes: durationMinutes, Active: true},
		},
		staff:     []*domain.StaffMember{{ID: 10, TenantID: tenant, Active: true}},
		schedules: map[int64][]*domain.Schedule{10: schedules},
		timeOff:   map[int64]bool{},
	}
}

func newUseCase(catalog CatalogRepository, bookings BookingRepository, cache AvailabilityCache, now time.Time) *UseCase {
	uc := NewUseCase(catalog, bookings, cache, nil, time.UTC, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc
}

func mondaySchedule(startMin, endMin int) *domain.Schedule {
	return &domain.Schedule{ID: 1, TenantID: tenant, StaffID: 10, Weekday: 0, StartMin: startMin, EndMin: endMin}
}

func at(hour, minute int) time.Time {
	return monday.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func TestExecute_ThirteenSlotsForMorningShift(t *testing.T) {
	uc := newUseCase(newCatalog(30, mondaySchedule(540, 720)), &fakeBookings{}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 13)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
	assert.Equal(t, at(11, 30), resp.Slots[12].Start)
	for i := 1; i < len(resp.Slots); i++ {
		assert.Equal(t, 15*time.Minute, resp.Slots[i].Start.Sub(resp.Slots[i-1].Start))
		assert.Equal(t, int64(10), resp.Slots[i].StaffID)
	}
}

func TestExecute_SlotEndingExactlyAtShiftEnd(t *testing.T) {
	uc := newUseCase(newCatalog(60, mondaySchedule(540, 600)), &fakeBookings{}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 1)
	assert.Equal(t, at(9, 0), resp.Slots[0].Start)
}

func TestExecute_ExcludesOverlappingBookings(t *testing.T) {
	bookings := &fakeBookings{bookings: []*domain.Booking{
		{StaffID: 10, StartAt: at(10, 0), EndAt: at(10, 30), Status: domain.BookingConfirmed},
		{StaffID: 10, StartAt: at(9, 0), EndAt: at(9, 30), Status: domain.BookingCancelled},
	}}
	uc := newUseCase(newCatalog(30, mondaySchedule(540, 720)), bookings, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.Len(t, resp.Slots, 10)
	for _, s := range resp.Slots {
		assert.NotContains(t, []time.Time{at(9, 45), at(10, 0), at(10, 15)}, s.Start)
	}
}

func TestExecute_DropsPastStarts(t *testing.T) {
	uc := newUseCase(newCatalog(30, mondaySchedule(540, 720)), &fakeBookings{}, nil, at(10, 5))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 6)
	assert.Equal(t, at(10, 15), resp.Slots[0].Start)
}

func TestExecute_TimeOffAndOtherWeekday(t *testing.T) {
	catalog := newCatalog(30, mondaySchedule(540, 720))
	uc := newUseCase(catalog, &fakeBookings{}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday.AddDate(0, 0, 1)})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)

	catalog.timeOff[10] = true
	resp, err = uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_AllStaffOrderedByStaff(t *testing.T) {
	catalog := newCatalog(60, mondaySchedule(540, 600))
	catalog.staff = append(catalog.staff,
		&domain.StaffMember{ID: 11, TenantID: tenant, Active: true},
		&domain.StaffMember{ID: 12, TenantID: tenant, Active: false},
	)
	catalog.schedules[11] = []*domain.Schedule{{StaffID: 11, Weekday: 0, StartMin: 600, EndMin: 660}}
	catalog.schedules[12] = []*domain.Schedule{{StaffID: 12, Weekday: 0, StartMin: 600, EndMin: 660}}
	uc := newUseCase(catalog, &fakeBookings{}, nil, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, domain.Slot{StaffID: 10, Start: at(9, 0)}, resp.Slots[0])
	assert.Equal(t, domain.Slot{StaffID: 11, Start: at(10, 0)}, resp.Slots[1])
}

func TestExecute_NotFound(t *testing.T) {
	catalog := newCatalog(30, mondaySchedule(540, 720))
	catalog.services[2] = &domain.Service{ID: 2, DurationMinutes: 30, Active: false}
	uc := newUseCase(catalog, &fakeBookings{}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 99, Date: monday})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 2, Date: monday})
	assert.ErrorIs(t, err, ErrServiceNotFound)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, StaffID: ptr.Ptr(int64(77)), Date: monday})
	assert.ErrorIs(t, err, ErrStaffNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(newCatalog(30), &fakeBookings{}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 0, Date: monday})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecute_InfrastructureErrorIsInternal(t *testing.T) {
	uc := newUseCase(newCatalog(30, mondaySchedule(540, 720)), &fakeBookings{err: errors.New("db down")}, nil, monday)

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, domain.IsDomainError(err))
}

func TestExecute_UsesCache(t *testing.T) {
	catalog := newCatalog(30, mondaySchedule(540, 720))
	cache := &memCache{data: map[string][]time.Time{}, versions: map[string]int64{}}
	uc := newUseCase(catalog, &fakeBookings{}, cache, monday.AddDate(0, 0, -1))

	first, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
	assert.Equal(t, 1, catalog.calls)
}

func TestExecute_InvalidationDuringComputationSkipsCache(t *testing.T) {
	catalog := newCatalog(30, mondaySchedule(540, 720))
	cache := &memCache{data: map[string][]time.Time{}, versions: map[string]int64{}}
	cache.onGet = cache.invalidate
	uc := newUseCase(catalog, &fakeBookings{}, cache, monday.AddDate(0, 0, -1))

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, ServiceID: 1, Date: monday})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Slots)
	assert.Empty(t, cache.data, "a list computed across an invalidation must not be cached")
}
