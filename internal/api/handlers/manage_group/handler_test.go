package manage_group

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups/models"
	"github.com/m04kA/SMC-SalonScheduler/pkg/logger"
)

type fakeService struct {
	addErr        error
	added         *models.ParticipantRequest
	cancelledPID  int64
	groupCanceled bool
}

func (f *fakeService) GetByID(_ context.Context, _ string, _ domain.Actor, groupID int64) (*models.GroupResponse, error) {
	if groupID != 1 {
		return nil, groups.ErrGroupNotFound
	}
	return &models.GroupResponse{ID: 1, MaxParticipants: 2, CurrentParticipants: 1}, nil
}

func (f *fakeService) AddParticipant(_ context.Context, _ string, _ domain.Actor, _ int64, req *models.ParticipantRequest) (*models.ParticipantResponse, error) {
	f.added = req
	if f.addErr != nil {
		return nil, f.addErr
	}
	return &models.ParticipantResponse{ID: 3, Name: req.Name, Email: req.Email, Status: "confirmed"}, nil
}

func (f *fakeService) CancelParticipant(_ context.Context, _ string, _ domain.Actor, _, participantID int64) error {
	f.cancelledPID = participantID
	return nil
}

func (f *fakeService) Cancel(_ context.Context, _ string, _ domain.Actor, _ int64) error {
	f.groupCanceled = true
	return nil
}

func newRouter(svc *fakeService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/bookings/group/{groupId}", h.Get).Methods(http.MethodGet)
	r.HandleFunc("/bookings/group/{groupId}/participants", h.AddParticipant).Methods(http.MethodPost)
	r.HandleFunc("/bookings/group/{groupId}/participants/{participantId}", h.CancelParticipant).Methods(http.MethodDelete)
	r.HandleFunc("/admin/bookings/group/{groupId}", h.Cancel).Methods(http.MethodDelete)
	return r
}

func do(r *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "salon-1",
		domain.Actor{Role: domain.RoleCustomer, Email: "ann@example.com"}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGet(t *testing.T) {
	r := newRouter(&fakeService{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/bookings/group/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/bookings/group/2", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodGet, "/bookings/group/x", "").Code)
}

func TestAddParticipant(t *testing.T) {
	svc := &fakeService{}
	w := do(newRouter(svc), http.MethodPost, "/bookings/group/1/participants", `{"name":"Bob","email":"bob@example.com"}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Bob", svc.added.Name)
}

func TestAddParticipant_GroupFull(t *testing.T) {
	svc := &fakeService{addErr: groups.ErrGroupFull}
	w := do(newRouter(svc), http.MethodPost, "/bookings/group/1/participants", `{"name":"Bob","email":"bob@example.com"}`)

	require.Equal(t, http.StatusConflict, w.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Equal(t, handlers.KindCapacityExceeded, body.Error)
}

func TestCancelParticipantAndGroup(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/bookings/group/1/participants/9", "").Code)
	assert.Equal(t, int64(9), svc.cancelledPID)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/bookings/group/1", "").Code)
	assert.True(t, svc.groupCanceled)
}
