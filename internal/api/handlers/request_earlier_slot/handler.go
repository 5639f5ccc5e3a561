package request_earlier_slot

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат desiredDate, ожидается YYYY-MM-DD"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	useCase  RequestEarlierSlotUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase RequestEarlierSlotUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/earlier-appointment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req EarlierSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/earlier-appointment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, actor, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings/earlier-appointment - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, kind := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/earlier-appointment - Failed to create request: booking_id=%d, error=%v",
				req.CurrentBookingID, err)
		} else {
			h.logger.Warn("POST /bookings/earlier-appointment - Request rejected (%s): booking_id=%d, actor=%s",
				kind, req.CurrentBookingID, actor.Email)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/earlier-appointment - Request created: request_id=%d, booking_id=%d",
		result.Request.ID, req.CurrentBookingID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
