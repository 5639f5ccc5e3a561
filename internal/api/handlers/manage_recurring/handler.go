package manage_recurring

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

const (
	msgInvalidSeriesID    = "некорректный ID серии"
	msgInvalidInstanceID  = "некорректный ID вхождения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	service RecurringService
	logger  Logger
}

func NewHandler(service RecurringService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// GetSeries GET /api/v1/bookings/recurring/{seriesId}
func (h *Handler) GetSeries(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, seriesID, ok := h.seriesRequest(w, r, "GET /bookings/recurring/{id}")
	if !ok {
		return
	}

	series, err := h.service.GetSeries(r.Context(), tenantID, actor, seriesID)
	if err != nil {
		h.fail(w, "GET /bookings/recurring/{id}", seriesID, err)
		return
	}

	h.logger.Info("GET /bookings/recurring/{id} - Series retrieved: series_id=%d, instances=%d", seriesID, series.InstanceCount)
	handlers.RespondJSON(w, http.StatusOK, series)
}

// MaterializeSeries POST /api/v1/bookings/recurring/{seriesId}/materialize
func (h *Handler) MaterializeSeries(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, seriesID, ok := h.seriesRequest(w, r, "POST /bookings/recurring/{id}/materialize")
	if !ok {
		return
	}

	result, err := h.service.MaterializeSeries(r.Context(), tenantID, actor, seriesID)
	if err != nil {
		h.fail(w, "POST /bookings/recurring/{id}/materialize", seriesID, err)
		return
	}

	h.logger.Info("POST /bookings/recurring/{id}/materialize - Series materialized: series_id=%d, confirmed=%d, skipped=%d",
		seriesID, result.Confirmed, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// UpdateStatus PATCH /api/v1/bookings/recurring/{seriesId}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, seriesID, ok := h.seriesRequest(w, r, "PATCH /bookings/recurring/{id}/status")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/recurring/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	series, err := h.service.UpdateSeriesStatus(r.Context(), tenantID, actor, seriesID, req.Status)
	if err != nil {
		h.fail(w, "PATCH /bookings/recurring/{id}/status", seriesID, err)
		return
	}

	h.logger.Info("PATCH /bookings/recurring/{id}/status - Series status updated: series_id=%d, status=%s", seriesID, series.Status)
	handlers.RespondJSON(w, http.StatusOK, series)
}

// MaterializeInstance POST /api/v1/bookings/recurring/instances/{instanceId}/materialize
func (h *Handler) MaterializeInstance(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, instanceID, ok := h.instanceRequest(w, r, "POST /bookings/recurring/instances/{id}/materialize")
	if !ok {
		return
	}

	instance, err := h.service.MaterializeInstance(r.Context(), tenantID, actor, instanceID)
	if err != nil {
		h.fail(w, "POST /bookings/recurring/instances/{id}/materialize", instanceID, err)
		return
	}

	h.logger.Info("POST /bookings/recurring/instances/{id}/materialize - Instance is %s: instance_id=%d", instance.Status, instanceID)
	handlers.RespondJSON(w, http.StatusOK, instance)
}

// CancelInstance DELETE /api/v1/bookings/recurring/instances/{instanceId}
func (h *Handler) CancelInstance(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, instanceID, ok := h.instanceRequest(w, r, "DELETE /bookings/recurring/instances/{id}")
	if !ok {
		return
	}

	if err := h.service.CancelInstance(r.Context(), tenantID, actor, instanceID); err != nil {
		h.fail(w, "DELETE /bookings/recurring/instances/{id}", instanceID, err)
		return
	}

	h.logger.Info("DELETE /bookings/recurring/instances/{id} - Instance cancelled: instance_id=%d", instanceID)
	handlers.RespondNoContent(w)
}

func (h *Handler) seriesRequest(w http.ResponseWriter, r *http.Request, route string) (string, domain.Actor, int64, bool) {
	return h.identified(w, r, route, "seriesId", msgInvalidSeriesID)
}

func (h *Handler) instanceRequest(w http.ResponseWriter, r *http.Request, route string) (string, domain.Actor, int64, bool) {
	return h.identified(w, r, route, "instanceId", msgInvalidInstanceID)
}

func (h *Handler) identified(w http.ResponseWriter, r *http.Request, route, param, msg string) (string, domain.Actor, int64, bool) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return "", domain.Actor{}, 0, false
	}

	id, err := handlers.PathInt64(r, param)
	if err != nil {
		h.logger.Warn("%s - Invalid ID: %v", route, err)
		handlers.RespondBadRequest(w, msg)
		return "", domain.Actor{}, 0, false
	}

	return tenantID, actor, id, true
}

func (h *Handler) fail(w http.ResponseWriter, route string, id int64, err error) {
	status, kind := handlers.StatusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: id=%d, error=%v", route, id, err)
	} else {
		h.logger.Warn("%s - Rejected (%s): id=%d: %v", route, kind, id, err)
	}
	handlers.RespondDomainError(w, err)
}
