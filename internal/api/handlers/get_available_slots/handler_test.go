package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	getAvailability "github.com/m04kA/SMC-SalonScheduler/internal/usecase/get_availability"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type fakeUseCase struct {
	req   *getAvailability.Request
	slots []domain.Slot
	err   error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &getAvailability.Response{Date: req.Date, ServiceID: req.ServiceID, Slots: f.slots}, nil
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/availability?"+query, nil)
	r = r.WithContext(middleware.WithIdentity(r.Context(), "salon-1",
		domain.Actor{Role: domain.RoleCustomer, Email: "ann@example.com"}))
	w := httptest.NewRecorder()
	h.Handle(w, r)
	return w
}

func TestHandle_ReturnsSlotsInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	uc := &fakeUseCase{slots: []domain.Slot{
		{StaffID: 2, Start: time.Date(2026, 10, 19, 9, 0, 0, 0, loc)},
		{StaffID: 2, Start: time.Date(2026, 10, 19, 9, 15, 0, 0, loc)},
	}}
	h := NewHandler(uc, loc, logger.NewNop())

	w := get(h, "serviceId=1&staffId=2&date=2026-10-19")

	require.Equal(t, http.StatusOK, w.Code)
	var got []map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 2)
	assert.Equal(t, float64(2), got[0]["staffId"])
	assert.Equal(t, "2026-10-19T06:00:00Z", got[0]["start"])

	require.NotNil(t, uc.req.StaffID)
	assert.Equal(t, int64(2), *uc.req.StaffID)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, loc), uc.req.Date)
}

func TestHandle_EmptyDayIsEmptyArray(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, time.UTC, logger.NewNop())

	w := get(h, "serviceId=1&date=2026-10-19")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestHandle_BadQuery(t *testing.T) {
	for _, query := range []string{
		"date=2026-10-19",
		"serviceId=x&date=2026-10-19",
		"serviceId=1&staffId=x&date=2026-10-19",
		"serviceId=1",
		"serviceId=1&date=19.10.2026",
	} {
		uc := &fakeUseCase{}
		w := get(NewHandler(uc, time.UTC, logger.NewNop()), query)

		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.Nil(t, uc.req, query)
	}
}
