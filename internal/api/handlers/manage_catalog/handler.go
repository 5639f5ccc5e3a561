package manage_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/catalog/models"
)

const (
	msgInvalidID          = "некорректный ID"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingActive      = "поле active обязательно"
	msgMissingIdentity    = "не удалось определить пользователя"
)

// Handler обслуживает справочники салона: услуги, мастера, расписания и отсутствия
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateService POST /api/v1/admin/services
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/services"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req models.CreateServiceRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreateService(r.Context(), tenantID, actor, &req)
	h.respond(w, route, http.StatusCreated, result, err)
}

// GetService GET /api/v1/admin/services/{serviceId}
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/services/{id}"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, route, "serviceId")
	if !ok {
		return
	}

	result, err := h.service.GetService(r.Context(), tenantID, actor, id)
	h.respond(w, route, http.StatusOK, result, err)
}

// UpdateService PATCH /api/v1/admin/services/{serviceId}
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/services/{id}"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, route, "serviceId")
	if !ok {
		return
	}

	var req models.UpdateServiceRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateService(r.Context(), tenantID, actor, id, &req)
	h.respond(w, route, http.StatusOK, result, err)
}

// CreateStaff POST /api/v1/admin/staff
func (h *Handler) CreateStaff(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/staff"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}

	var req models.CreateStaffRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.CreateStaff(r.Context(), tenantID, actor, &req)
	h.respond(w, route, http.StatusCreated, result, err)
}

// ListStaff GET /api/v1/admin/staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/staff"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}

	result, err := h.service.ListStaff(r.Context(), tenantID, actor)
	h.respond(w, route, http.StatusOK, result, err)
}

// SetStaffActive PATCH /api/v1/admin/staff/{staffId}/active
func (h *Handler) SetStaffActive(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /admin/staff/{id}/active"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	staffID, ok := h.pathID(w, r, route, "staffId")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !h.decode(w, r, route, &req) {
		return
	}
	if req.Active == nil {
		handlers.RespondBadRequest(w, msgMissingActive)
		return
	}

	err := h.service.SetStaffActive(r.Context(), tenantID, actor, staffID, *req.Active)
	h.respond(w, route, http.StatusNoContent, nil, err)
}

// ListSchedules GET /api/v1/admin/staff/{staffId}/schedules
func (h *Handler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/staff/{id}/schedules"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	staffID, ok := h.pathID(w, r, route, "staffId")
	if !ok {
		return
	}

	result, err := h.service.ListSchedules(r.Context(), tenantID, actor, staffID)
	h.respond(w, route, http.StatusOK, result, err)
}

// AddSchedule POST /api/v1/admin/staff/{staffId}/schedules
func (h *Handler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/staff/{id}/schedules"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	staffID, ok := h.pathID(w, r, route, "staffId")
	if !ok {
		return
	}

	var req models.ScheduleRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.AddSchedule(r.Context(), tenantID, actor, staffID, &req)
	h.respond(w, route, http.StatusCreated, result, err)
}

// UpdateSchedule PUT /api/v1/admin/schedules/{scheduleId}
func (h *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /admin/schedules/{id}"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	scheduleID, ok := h.pathID(w, r, route, "scheduleId")
	if !ok {
		return
	}

	var req models.ScheduleRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), tenantID, actor, scheduleID, &req)
	h.respond(w, route, http.StatusOK, result, err)
}

// DeleteSchedule DELETE /api/v1/admin/schedules/{scheduleId}
func (h *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/schedules/{id}"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	scheduleID, ok := h.pathID(w, r, route, "scheduleId")
	if !ok {
		return
	}

	err := h.service.DeleteSchedule(r.Context(), tenantID, actor, scheduleID)
	h.respond(w, route, http.StatusNoContent, nil, err)
}

// ListTimeOff GET /api/v1/admin/staff/{staffId}/time-off
func (h *Handler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/staff/{id}/time-off"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	staffID, ok := h.pathID(w, r, route, "staffId")
	if !ok {
		return
	}

	result, err := h.service.ListTimeOff(r.Context(), tenantID, actor, staffID)
	h.respond(w, route, http.StatusOK, result, err)
}

// AddTimeOff POST /api/v1/admin/staff/{staffId}/time-off
func (h *Handler) AddTimeOff(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/staff/{id}/time-off"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	staffID, ok := h.pathID(w, r, route, "staffId")
	if !ok {
		return
	}

	var req models.TimeOffRequest
	if !h.decode(w, r, route, &req) {
		return
	}

	result, err := h.service.AddTimeOff(r.Context(), tenantID, actor, staffID, &req)
	h.respond(w, route, http.StatusCreated, result, err)
}

// DeleteTimeOff DELETE /api/v1/admin/time-off/{timeOffId}
func (h *Handler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/time-off/{id}"
	tenantID, actor, ok := h.identity(w, r)
	if !ok {
		return
	}
	id, ok := h.pathID(w, r, route, "timeOffId")
	if !ok {
		return
	}

	err := h.service.DeleteTimeOff(r.Context(), tenantID, actor, id)
	h.respond(w, route, http.StatusNoContent, nil, err)
}

func (h *Handler) identity(w http.ResponseWriter, r *http.Request) (string, domain.Actor, bool) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
	}
	return tenantID, actor, ok
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, route, name string) (int64, bool) {
	id, err := handlers.PathInt64(r, name)
	if err != nil {
		h.logger.Warn("%s - Invalid %s: %v", route, name, err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, route string, v interface{}) bool {
	if err := handlers.DecodeJSON(r, v); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return false
	}
	return true
}

// respond отправляет результат сервиса; при status 204 тело не пишется
func (h *Handler) respond(w http.ResponseWriter, route string, status int, result interface{}, err error) {
	if err != nil {
		errStatus, kind := handlers.StatusOf(err)
		if errStatus == http.StatusInternalServerError {
			h.logger.Error("%s - Failed: %v", route, err)
		} else {
			h.logger.Warn("%s - Rejected (%s): %v", route, kind, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("%s - Success", route)
	if status == http.StatusNoContent {
		handlers.RespondNoContent(w)
		return
	}
	handlers.RespondJSON(w, status, result)
}
