package admin

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/internal/trainers"
	"github.com/fitcoach/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=admin_test

type adminService interface {
	Stats(ctx context.Context) (Stats, error)
	Users(ctx context.Context, filter UserFilter) (*UserPage, error)
	User(ctx context.Context, id int64) (*coaching.User, error)
	UpdateRole(ctx context.Context, actor Actor, userID int64, role coaching.Role) (*coaching.User, error)
	DeleteUser(ctx context.Context, actor Actor, userID int64) error
	PendingTrainers(ctx context.Context) ([]trainers.Trainer, error)
	ReviewTrainer(ctx context.Context, actor Actor, userID int64, approved bool) (string, error)
	AuditLogs(ctx context.Context, filter audit.Filter) (*AuditPage, error)
}

type SuccessResponse struct {
	Success bool           `json:"success"`
	User    *coaching.User `json:"user,omitempty"`
	Message string         `json:"message,omitempty"`
}

type roleRequest struct {
	Role string `json:"role"`
}

type reviewRequest struct {
	Approved bool `json:"approved"`
}

type Handler struct {
	service adminService
}

func NewHandler(service adminService) *Handler {
	return &Handler{
		service: service,
	}
}

func actorFrom(r *http.Request) (Actor, bool) {
	caller, ok := identity.FromContext(r.Context())
	if !ok {
		return Actor{}, false
	}
	ip, err := pkg.ReadUserIP(r)
	if err != nil {
		ip = r.RemoteAddr
	}
	return Actor{AdminID: caller.UserID, IP: ip}, true
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := pkg.ParseID(mux.Vars(r)["id"])
	if !ok {
		pkg.WriteError(w, http.StatusNotFound, coaching.ErrUserNotFound.Error())
		return 0, false
	}
	return id, true
}

func (handler *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.stats")
	defer span.End()

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		log.Errorf("admin stats: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_stats")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, stats)
}

func (handler *Handler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.users")
	defer span.End()

	page, limit := pkg.PageParams(r)
	filter := UserFilter{
		Page:   page,
		Limit:  limit,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if role := coaching.Role(r.URL.Query().Get("role")); role.Valid() {
		filter.Role = role
	}

	result, err := handler.service.Users(ctx, filter)
	if err != nil {
		log.Errorf("admin users list: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_users")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}

func (handler *Handler) HandleUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.user")
	defer span.End()

	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	user, err := handler.service.User(ctx, userID)
	if errors.Is(err, coaching.ErrUserNotFound) {
		pkg.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Errorf("admin user %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_user")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, user)
}

func (handler *Handler) HandleUpdateRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.updateRole")
	defer span.End()

	actor, ok := actorFrom(r)
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req roleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if req.Role == "" {
		pkg.WriteError(w, http.StatusBadRequest, "role_required")
		return
	}

	updated, err := handler.service.UpdateRole(ctx, actor, userID, coaching.Role(req.Role))
	switch {
	case errors.Is(err, ErrInvalidRole):
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, coaching.ErrUserNotFound):
		pkg.WriteError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		log.Errorf("admin update role %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_update_role")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, User: updated})
}

func (handler *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.deleteUser")
	defer span.End()

	actor, ok := actorFrom(r)
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	err := handler.service.DeleteUser(ctx, actor, userID)
	if errors.Is(err, coaching.ErrUserNotFound) {
		pkg.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Errorf("admin delete user %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_delete_user")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

func (handler *Handler) HandlePendingTrainers(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.pendingTrainers")
	defer span.End()

	pending, err := handler.service.PendingTrainers(ctx)
	if err != nil {
		log.Errorf("admin pending trainers: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_pending_trainers")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, pending)
}

func (handler *Handler) HandleReviewTrainer(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.reviewTrainer")
	defer span.End()

	actor, ok := actorFrom(r)
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return
	}
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	message, err := handler.service.ReviewTrainer(ctx, actor, userID, req.Approved)
	if errors.Is(err, coaching.ErrUserNotFound) {
		pkg.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Errorf("admin review trainer %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_process_approval")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: message})
}

func (handler *Handler) HandleAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.admin.auditLogs")
	defer span.End()

	page, limit := pkg.PageParams(r)
	filter := audit.Filter{
		Page:   page,
		Limit:  limit,
		Action: r.URL.Query().Get("action"),
	}
	if adminID, ok := pkg.ParseID(r.URL.Query().Get("adminId")); ok {
		filter.AdminID = &adminID
	}

	result, err := handler.service.AuditLogs(ctx, filter)
	if err != nil {
		log.Errorf("admin audit logs: %s", err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_audit_logs")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, result)
}
