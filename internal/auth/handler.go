package auth

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=auth_test

type authService interface {
	TelegramLogin(ctx context.Context, rawInitData string) (*TelegramLoginResponse, error)
	AdminLogin(ctx context.Context, email, password, ip string) (*AdminLoginResponse, error)
	RegisterAdmin(ctx context.Context, callerID int64, ip string, req RegisterAdminRequest) (*RegisterAdminResponse, error)
	Logout(ctx context.Context, id identity.Identity) error
}

type Handler struct {
	service authService
}

func NewHandler(service authService) *Handler {
	return &Handler{
		service: service,
	}
}

// initDataFrom reads the raw Mini-App payload from "Authorization: tma ..."
// and falls back to the initData field of a JSON body.
func initDataFrom(r *http.Request) string {
	scheme, rest, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if found && strings.EqualFold(scheme, "tma") {
		if raw := strings.TrimSpace(rest); raw != "" {
			return raw
		}
	}

	var body struct {
		InitData string `json:"initData"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return body.InitData
}

func clientIP(r *http.Request) string {
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (handler *Handler) HandleTelegramInit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.telegramInit")
	defer span.End()

	resp, err := handler.service.TelegramLogin(ctx, initDataFrom(r))
	switch {
	case err == nil:
		pkg.WriteJSON(w, http.StatusOK, resp)
	case errors.Is(err, ErrMissingInitData):
		pkg.WriteError(w, http.StatusBadRequest, ErrMissingInitData.Error())
	case errors.Is(err, ErrInvalidUserPayload):
		pkg.WriteError(w, http.StatusBadRequest, ErrInvalidUserPayload.Error())
	case errors.Is(err, ErrInvalidInitData):
		log.Warnf("telegram init rejected: %s", err)
		pkg.WriteError(w, http.StatusUnauthorized, ErrInvalidInitData.Error())
	default:
		log.Errorf("telegram init: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "server_error")
	}
}

type adminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.adminLogin")
	defer span.End()

	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, http.StatusBadRequest, ErrCredentialsRequired.Error())
		return
	}

	resp, err := handler.service.AdminLogin(ctx, req.Email, req.Password, clientIP(r))
	switch {
	case err == nil:
		pkg.WriteJSON(w, http.StatusOK, resp)
	case errors.Is(err, ErrCredentialsRequired):
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		pkg.WriteError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrAdminOnly):
		pkg.WriteError(w, http.StatusForbidden, err.Error())
	default:
		log.Errorf("admin login: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "server_error")
	}
}

func (handler *Handler) HandleRegisterAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.registerAdmin")
	defer span.End()

	caller, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}

	var req RegisterAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, http.StatusBadRequest, ErrCredentialsRequired.Error())
		return
	}

	resp, err := handler.service.RegisterAdmin(ctx, caller.UserID, clientIP(r), req)
	switch {
	case err == nil:
		pkg.WriteJSON(w, http.StatusOK, resp)
	case errors.Is(err, ErrCredentialsRequired), errors.Is(err, ErrPasswordTooShort):
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrEmailExists):
		pkg.WriteError(w, http.StatusConflict, err.Error())
	default:
		log.Errorf("admin registration by %d: %s", caller.UserID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "server_error")
	}
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	caller, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}

	if err := handler.service.Logout(ctx, caller); err != nil {
		log.Errorf("logout %d: %s", caller.UserID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_logout")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
