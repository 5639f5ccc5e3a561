// Package middleware содержит HTTP middleware сервиса.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-SalonScheduler/internal/api/handlers"
	"github.com/m04kA/SMC-SalonScheduler/internal/domain"
)

// Заголовки, выставляемые шлюзом после аутентификации
const (
	HeaderTenantID  = "X-Tenant-ID"
	HeaderUserRole  = "X-User-Role"
	HeaderUserEmail = "X-User-Email"
)

const (
	msgMissingIdentity = "отсутствуют заголовки X-Tenant-ID, X-User-Role или X-User-Email"
	msgInvalidRole     = "X-User-Role должен быть admin или customer"
	msgAdminOnly       = "требуется роль администратора"
)

type identityKey struct{}

type identity struct {
	tenantID string
	actor    domain.Actor
}

// WithIdentity кладет салон и пользователя в контекст
func WithIdentity(ctx context.Context, tenantID string, actor domain.Actor) context.Context {
	return context.WithValue(ctx, identityKey{}, identity{tenantID: tenantID, actor: actor})
}

// Identity возвращает салон и пользователя из контекста
func Identity(ctx context.Context) (string, domain.Actor, bool) {
	id, ok := ctx.Value(identityKey{}).(identity)
	if !ok {
		return "", domain.Actor{}, false
	}
	return id.tenantID, id.actor, true
}

// Auth проверяет заголовки идентификации, шлюзу сервис доверяет
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID := strings.TrimSpace(r.Header.Get(HeaderTenantID))
		role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))
		email := domain.NormalizeEmail(r.Header.Get(HeaderUserEmail))

		if tenantID == "" || role == "" || email == "" {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}
		if !role.IsValid() {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		ctx := WithIdentity(r.Context(), tenantID, domain.Actor{Role: role, Email: email})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только администраторов, ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, actor, ok := Identity(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingIdentity)
			return
		}
		if !actor.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}
