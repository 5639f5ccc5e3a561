package create_group_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, startAt ожидается в формате RFC 3339"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	useCase CreateGroupBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateGroupBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/group
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateGroupRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/group - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, actor))
	if err != nil {
		status, kind := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/group - Failed to create group: tenant=%s, staff_id=%d, error=%v",
				tenantID, req.StaffID, err)
		} else {
			h.logger.Warn("POST /bookings/group - Group rejected (%s): tenant=%s, primary=%s, participants=%d",
				kind, tenantID, req.PrimaryEmail, len(req.Participants))
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/group - Group created successfully: group_id=%d, participants=%d",
		result.Group.ID, result.Group.CurrentParticipants)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
