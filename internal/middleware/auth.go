package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

//go:generate mockgen -source=$GOFILE -destination=auth_mocks_test.go -package=middleware_test

type authenticator interface {
	Authenticate(ctx context.Context, token string) (identity.Identity, error)
}

type AuthMiddlewareHandler struct {
	authenticator authenticator
}

func NewAuthMiddlewareHandler(authenticator authenticator) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		authenticator: authenticator,
	}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// AuthCheck requires a valid bearer token and puts the caller identity
// into the request context.
func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			token, ok := bearerToken(r)
			if !ok {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				pkg.WriteError(w, http.StatusUnauthorized, "no_token")
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			caller, err := h.authenticator.Authenticate(ctx, token)
			if err != nil {
				log.Debugf("[invalid token] [auth middleware] %s: %s", r.URL.Path, err)
				pkg.WriteError(w, http.StatusUnauthorized, "invalid_token")
				span.SetStatus(codes.Error, "invalid-token")
				span.RecordError(err)
				return
			}

			span.SetAttributes(
				attribute.Int64("user.id", caller.UserID),
				attribute.String("user.role", caller.Role),
			)
			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r.WithContext(identity.NewContext(r.Context(), caller)))
		})
	}
}

// RequireRole rejects callers without the given role with 403 and code.
// It runs after AuthCheck.
func RequireRole(role, code string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := identity.FromContext(r.Context())
			if !ok {
				pkg.WriteError(w, http.StatusUnauthorized, "no_token")
				return
			}
			if caller.Role != role {
				log.Warnf("[%s] access denied: user %d role %q on %s %s", code, caller.UserID, caller.Role, r.Method, r.URL.Path)
				pkg.WriteRoleError(w, code, caller.Role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
