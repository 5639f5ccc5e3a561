package manage_bans

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SalonScheduler/internal/service/bans/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingEmail       = "email обязателен"
	msgMissingIdentity    = "не удалось определить пользователя"
)

type Handler struct {
	service BanService
	logger  Logger
}

func NewHandler(service BanService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Ban POST /api/v1/admin/bans
func (h *Handler) Ban(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	var req models.BanRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bans - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ban, err := h.service.Ban(r.Context(), tenantID, actor, &req)
	if err != nil {
		h.fail(w, "POST /admin/bans", req.Email, err)
		return
	}

	h.logger.Info("POST /admin/bans - Customer banned: tenant=%s, email=%s", tenantID, ban.Email)
	handlers.RespondJSON(w, http.StatusCreated, ban)
}

// List GET /api/v1/admin/bans
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	bans, err := h.service.List(r.Context(), tenantID, actor)
	if err != nil {
		h.fail(w, "GET /admin/bans", "", err)
		return
	}

	h.logger.Info("GET /admin/bans - Bans retrieved: tenant=%s, count=%d", tenantID, len(bans))
	handlers.RespondJSON(w, http.StatusOK, bans)
}

// Unban DELETE /api/v1/admin/bans/{email}
func (h *Handler) Unban(w http.ResponseWriter, r *http.Request) {
	tenantID, actor, ok := middleware.Identity(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgMissingIdentity)
		return
	}

	email := mux.Vars(r)["email"]
	if email == "" {
		handlers.RespondBadRequest(w, msgMissingEmail)
		return
	}

	if err := h.service.Unban(r.Context(), tenantID, actor, email); err != nil {
		h.fail(w, "DELETE /admin/bans/{email}", email, err)
		return
	}

	h.logger.Info("DELETE /admin/bans/{email} - Customer unbanned: tenant=%s, email=%s", tenantID, email)
	handlers.RespondNoContent(w)
}

func (h *Handler) fail(w http.ResponseWriter, route, email string, err error) {
	status, kind := handlers.StatusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("%s - Failed: email=%s, error=%v", route, email, err)
	} else {
		h.logger.Warn("%s - Rejected (%s): email=%s: %v", route, kind, email, err)
	}
	handlers.RespondDomainError(w, err)
}
