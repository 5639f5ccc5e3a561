package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	bookingRepo "github.com/m04kA/SMC-SalonScheduler/internal/infra/storage/booking"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
	"github.com/m04kA/SMC-SalonScheduler/pkg/ptr"
)

const tenant = "salon-1"

var (
	now   = time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)
	admin = domain.Actor{Role: domain.RoleAdmin, Email: "admin@salon.test"}
	ann   = domain.Actor{Role: domain.RoleCustomer, Email: "Ann@Example.com"}
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type fakeRepo struct {
	booking *domain.Booking
	filters []domain.BookingsFilter
}

func (r *fakeRepo) GetByID(_ context.Context, _ string, id int64) (*domain.Booking, error) {
	if r.booking == nil || r.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.filters = append(r.filters, filter)
	return []*domain.Booking{r.booking}, nil
}

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{booking: &domain.Booking{
		ID: 1, TenantID: tenant, CustomerEmail: "ann@example.com", Status: domain.BookingConfirmed,
		StartAt: now.Add(time.Hour), EndAt: now.Add(90 * time.Minute),
	}}
	svc := NewService(repo, logger.NewNop())
	svc.timeProvider = fixedClock{}
	return svc, repo
}

func TestGetByID_Access(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), tenant, ann, 1)
	require.NoError(t, err)
	assert.Equal(t, "CONFIRMED", resp.Status)

	_, err = svc.GetByID(context.Background(), tenant, domain.Actor{Role: domain.RoleCustomer, Email: "bob@example.com"}, 1)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.GetByID(context.Background(), tenant, admin, 2)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListForCustomer_DefaultsToFutureConfirmed(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.ListForCustomer(context.Background(), tenant, ann, &models.ListMyRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	f := repo.filters[0]
	assert.Equal(t, "ann@example.com", *f.CustomerEmail)
	assert.Equal(t, now, *f.From)
	assert.Equal(t, domain.BookingConfirmed, *f.Status)

	_, err = svc.ListForCustomer(context.Background(), tenant, ann, &models.ListMyRequest{IncludePast: true, IncludeCancelled: true})
	require.NoError(t, err)
	assert.Nil(t, repo.filters[1].From)
	assert.Nil(t, repo.filters[1].Status)
}

func TestListForAdmin(t *testing.T) {
	svc, repo := newService()

	_, err := svc.ListForAdmin(context.Background(), tenant, admin, &models.ListAdminRequest{
		StaffID: ptr.Ptr(int64(10)), Status: ptr.Ptr("CANCELLED"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, *repo.filters[0].Status)

	_, err = svc.ListForAdmin(context.Background(), tenant, admin, &models.ListAdminRequest{Status: ptr.Ptr("PENDING")})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListForAdmin(context.Background(), tenant, admin, &models.ListAdminRequest{From: ptr.Ptr(now), To: ptr.Ptr(now)})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.ListForAdmin(context.Background(), tenant, ann, &models.ListAdminRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
