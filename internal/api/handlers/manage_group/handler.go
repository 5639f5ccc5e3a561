package manage_group

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/groups/models"
)

const (
	msgInvalidGroupID       = "некорректный ID группы"
	msgInvalidParticipantID = "некорректный ID участника"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingIdentity      = "не удалось определить пользователя"
)

type Handler struct {
	service GroupService
	logger  Logger
}

func NewHandler(service GroupService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Get GET /api/v1/bookings/group/{groupId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	groupID, err := handlers.PathInt64(r, "groupId")
	if err != nil {
		h.logger.Warn("GET /bookings/group/{id} - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	group, err := h.service.GetByID(r.Context(), tenantID, actor, groupID)
	if err != nil {
		h.fail(w, "GET /bookings/group/{id}", groupID, err)
		return
	}

	h.logger.Info("GET /bookings/group/{id} - Group retrieved: group_id=%d", groupID)
	handlers.RespondJSON(w, http.StatusOK, group)
}

// AddParticipant POST /api/v1/bookings/group/{groupId}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	groupID, err := handlers.PathInt64(r, "groupId")
	if err != nil {
		h.logger.Warn("POST /bookings/group/{id}/participants - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	var req models.ParticipantRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/group/{id}/participants - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	participant, err := h.service.AddParticipant(r.Context(), tenantID, actor, groupID, &req)
	if err != nil {
		h.fail(w, "POST /bookings/group/{id}/participants", groupID, err)
		return
	}

	h.logger.Info("POST /bookings/group/{id}/participants - Participant added: group_id=%d, participant_id=%d",
		groupID, participant.ID)
	handlers.RespondJSON(w, http.StatusCreated, participant)
}

// CancelParticipant DELETE /api/v1/bookings/group/{groupId}/participants/{participantId}
func (h *Handler) CancelParticipant(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	groupID, err := handlers.PathInt64(r, "groupId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/group/{id}/participants/{pid} - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}
	participantID, err := handlers.PathInt64(r, "participantId")
	if err != nil {
		h.logger.Warn("DELETE /bookings/group/{id}/participants/{pid} - Invalid participant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParticipantID)
		return
	}

	if err := h.service.CancelParticipant(r.Context(), tenantID, actor, groupID, participantID); err != nil {
		h.fail(w, "DELETE /bookings/group/{id}/participants/{pid}", groupID, err)
		return
	}

	h.logger.Info("DELETE /bookings/group/{id}/participants/{pid} - Participant cancelled: group_id=%d, participant_id=%d",
		groupID, participantID)
	handlers.RespondNoContent(w)
}

// Cancel DELETE /api/v1/admin/bookings/group/{groupId}
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	groupID, err := handlers.PathInt64(r, "groupId")
	if err != nil {
		h.logger.Warn("DELETE /admin/bookings/group/{id} - Invalid group ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroupID)
		return
	}

	if err := h.service.Cancel(r.Context(), tenantID, actor, groupID); err != nil {
		h.fail(w, "DELETE /admin/bookings/group/{id}", groupID, err)
		return
	}

	h.logger.Info("DELETE /admin/bookings/group/{id} - Group cancelled: group_id=%d", groupID)
	handlers.RespondNoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, route string, groupID int64, err error) {
	status, kind := handlers.StatusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: group_id=%d, error=%v", route, groupID, err)
	} else {
		h.logger.Warn("%s - Rejected (%s): group_id=%d: %v", route, kind, groupID, err)
	}
	handlers.RespondDomainError(w, err)
}
