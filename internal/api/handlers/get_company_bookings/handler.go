package get_company_bookings

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
)

const (
	msgMissingIdentity = "не удалось определить пользователя"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	service  BookingService
	location *time.Location
	logger   Logger
}

func NewHandler(service BookingService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: staffId, status, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	query := r.URL.Query()
	serviceReq, err := ToServiceRequest(query.Get("staffId"), query.Get("status"), query.Get("from"), query.Get("to"), h.location)
	if err != nil {
		h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.ListForAdmin(r.Context(), tenantID, actor, serviceReq)
	if err != nil {
		status, _ := handlers.StatusOf(err)
		if status == http.StatusInternalServerError {
			h.logger.Error("GET /admin/bookings - Failed to get bookings: tenant=%s, error=%v", tenantID, err)
		} else {
			h.logger.Warn("GET /admin/bookings - Rejected: tenant=%s: %v", tenantID, err)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: tenant=%s, count=%d", tenantID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
