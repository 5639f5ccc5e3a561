package request_earlier_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	earlierRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/earlier"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

const tenant = "salon-1"

var (
	now = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)
	ann = domain.Actor{Role: domain.RoleCustomer, Email: "ann@example.com"}
	bob = domain.Actor{Role: domain.RoleCustomer, Email: "bob@example.com"}
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookings map[int64]*domain.Booking

func (f fakeBookings) GetByID(_ context.Context, _ string, id int64) (*domain.Booking, error) {
	if b, ok := f[id]; ok {
		return b, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

type fakeEarlier struct {
	created []*domain.EarlierAppointmentRequest
}

func (f *fakeEarlier) Create(_ context.Context, r *domain.EarlierAppointmentRequest) (*domain.EarlierAppointmentRequest, error) {
	for _, existing := range f.created {
		if existing.CurrentBookingID == r.CurrentBookingID {
			return nil, earlierRepo.ErrActiveRequestExists
		}
	}
	r.ID = int64(len(f.created) + 1)
	f.created = append(f.created, r)
	return r, nil
}

func (f *fakeEarlier) HasActiveForBooking(context.Context, string, int64) (bool, error) {
	return false, nil
}

func newUseCase() (*UseCase, *fakeEarlier) {
	bookings := fakeBookings{
		1: {ID: 1, TenantID: tenant, CustomerEmail: "ann@example.com", StartAt: now.AddDate(0, 0, 10), Status: domain.BookingConfirmed},
		2: {ID: 2, TenantID: tenant, CustomerEmail: "ann@example.com", StartAt: now.AddDate(0, 0, 10), Status: domain.BookingCancelled},
		3: {ID: 3, TenantID: tenant, CustomerEmail: "ann@example.com", StartAt: now.Add(-time.Hour), Status: domain.BookingConfirmed},
	}
	earlier := &fakeEarlier{}
	uc := NewUseCase(bookings, earlier, 30*24*time.Hour, time.UTC, logger.NewNop())
	uc.timeProvider = fixedClock{now: now}
	return uc, earlier
}

func TestExecute_DefaultsAndTTL(t *testing.T) {
	uc, _ := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.PriorityNormal, resp.Request.Priority)
	assert.Equal(t, domain.RequestActive, resp.Request.Status)
	assert.Equal(t, now.Add(30*24*time.Hour), resp.Request.ExpiresAt)
}

func TestExecute_ExpiresAtEndOfDesiredDay(t *testing.T) {
	uc, _ := newUseCase()
	desired := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{
		TenantID: tenant, Actor: ann, CurrentBookingID: 1, DesiredDate: &desired, Priority: domain.PriorityUrgent,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), resp.Request.ExpiresAt)
}

func TestExecute_OneActiveRequestPerBooking(t *testing.T) {
	uc, _ := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 1})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestExecute_Rejections(t *testing.T) {
	uc, earlier := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 9})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: bob, CurrentBookingID: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 2})
	assert.ErrorIs(t, err, ErrBookingNotEligible)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 3})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{TenantID: tenant, Actor: ann, CurrentBookingID: 1, Priority: "asap"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Execute(context.Background(), &Request{
		TenantID: tenant, Actor: ann, CurrentBookingID: 1, DesiredDate: ptr.Ptr(now.AddDate(0, 0, -2)),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, earlier.created)
}
