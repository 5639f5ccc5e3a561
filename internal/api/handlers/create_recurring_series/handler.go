package create_recurring_series

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	useCase  CreateRecurringSeriesUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateRecurringSeriesUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/bookings/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req CreateSeriesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, actor, h.location)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		status, kind := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("POST /bookings/recurring - Failed to create series: tenant=%s, staff_id=%d, error=%v",
				tenantID, req.StaffID, err)
		} else {
			h.logger.Warn("POST /bookings/recurring - Series rejected (%s): tenant=%s, customer=%s",
				kind, tenantID, req.CustomerEmail)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("POST /bookings/recurring - Series created successfully: series_id=%d, instances=%d",
		result.Series.ID, len(result.Instances))
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
