package get_user_bookings

import (
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bookings/models"
)

const (
	msgInvalidFlag     = "includePast и includeCancelled должны быть true или false"
	msgMissingIdentity = "не удалось определить пользователя"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/me
// Query params: includePast, includeCancelled (по умолчанию false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	includePast, err := parseFlag(r.URL.Query().Get("includePast"))
	if err != nil {
		h.logger.Warn("GET /bookings/me - Invalid includePast: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}
	includeCancelled, err := parseFlag(r.URL.Query().Get("includeCancelled"))
	if err != nil {
		h.logger.Warn("GET /bookings/me - Invalid includeCancelled: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFlag)
		return
	}

	result, err := h.service.ListForCustomer(r.Context(), tenantID, actor, &models.ListMyRequest{
		IncludePast:      includePast,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		h.logger.Error("GET /bookings/me - Failed to get bookings: customer=%s, error=%v", actor.Email, err)
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /bookings/me - Bookings retrieved successfully: customer=%s, count=%d", actor.Email, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
