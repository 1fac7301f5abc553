package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"canteen/canteen-svc/internal/domain"
	"canteen/canteen-svc/internal/service"
	"canteen/logging"
)

type identityKey struct{}

func IdentityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return identity
}

func WithIdentity(ctx context.Context, identity *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// authenticate attaches the bearer token's identity to the request. Requests without a
// token continue anonymously; a token that does not verify is rejected.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqLogger := h.logger().With("method", r.Method, "path", r.URL.Path)
		r = r.WithContext(logging.WithCtx(r.Context(), reqLogger))

		auth := r.Header.Get("Authorization")
		if auth == "" || h.Identity == nil {
			next.ServeHTTP(w, r)
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			h.fail(w, r, service.ErrNotAuthenticated)
			return
		}
		identity, err := h.Identity.Parse(strings.TrimPrefix(auth, "Bearer "))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		ctx := logging.WithCtx(r.Context(), reqLogger.With("user_id", identity.UserID))
		next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, identity)))
	})
}

func (h *Handler) requireLogin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if IdentityFrom(r.Context()) == nil {
			h.fail(w, r, service.ErrNotAuthenticated)
			return
		}
		next(w, r)
	}
}

var errForbidden = errors.New("forbidden: role not allowed")

// requireRole is a plain role tag check; there are no finer-grained permissions.
func (h *Handler) requireRole(next http.HandlerFunc, roles ...domain.Role) http.HandlerFunc {
	return h.requireLogin(func(w http.ResponseWriter, r *http.Request) {
		identity := IdentityFrom(r.Context())
		for _, role := range roles {
			if identity.Role == role {
				next(w, r)
				return
			}
		}
		writeJSON(w, http.StatusForbidden, envelope{Success: false, Message: errForbidden.Error()})
	})
}
