package create_booking

import (
	"net/http"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса, start ожидается в формате RFC 3339"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings и POST /api/v1/admin/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST %s - Invalid request body: %v", r.URL.Path, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(tenantID, actor))
	if err != nil {
		status, kind := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST %s - Failed to create booking: tenant=%s, staff_id=%d, error=%v",
				r.URL.Path, tenantID, req.StaffID, err)
		} else {
			h.logger.Warn("POST %s - Booking rejected (%s): tenant=%s, staff_id=%d, customer=%s",
				r.URL.Path, kind, tenantID, req.StaffID, req.CustomerEmail)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST %s - Booking created successfully: booking_id=%d, staff_id=%d",
		r.URL.Path, result.Booking.ID, result.Booking.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
