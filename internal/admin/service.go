package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/internal/trainers"
	"github.com/fitcoach/backend/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	recentSignupsWindow = 7 * 24 * time.Hour

	MessageTrainerApproved = "trainer_approved"
	MessageTrainerRejected = "trainer_rejected"
)

type Store interface {
	audit.Recorder
	PlatformStats(ctx context.Context, signupsSince time.Time) (Stats, error)
	ListUsers(ctx context.Context, filter UserFilter) ([]coaching.User, int, error)
	UserByID(ctx context.Context, id int64) (*coaching.User, error)
	UpdateRole(ctx context.Context, id int64, role coaching.Role) (*coaching.User, error)
	DeleteUser(ctx context.Context, id int64) error
	PendingTrainers(ctx context.Context) ([]trainers.Trainer, error)
	ClearTrainerProfile(ctx context.Context, userID int64) error
	ListAuditLogs(ctx context.Context, filter audit.Filter) ([]audit.Log, int, error)
}

type Service struct {
	store          Store
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewService(store Store, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 0 {
		page = 0
	}
	if limit <= 0 || limit > pkg.MaxPageLimit {
		limit = pkg.DefaultPageLimit
	}
	return page, limit
}

// record appends the audit row. The mutation already happened, so a failed
// write is logged and not returned.
func (s *Service) record(ctx context.Context, entry audit.Entry) {
	if err := s.store.AddAuditLog(ctx, entry); err != nil {
		log.Errorf("audit %s by %d: %s", entry.Action, entry.AdminID, err)
		return
	}
	if s.metricsManager != nil {
		s.metricsManager.CounterAdminActions.WithLabelValues(string(entry.Action)).Inc()
	}
}

func (s *Service) Stats(ctx context.Context) (_ Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.stats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return s.store.PlatformStats(ctx, s.now().Add(-recentSignupsWindow))
}

func (s *Service) Users(ctx context.Context, filter UserFilter) (_ *UserPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.users")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	users, total, err := s.store.ListUsers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []coaching.User{}
	}

	return &UserPage{
		Users:      users,
		Pagination: pkg.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *Service) User(ctx context.Context, id int64) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.user")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", id))

	return s.store.UserByID(ctx, id)
}

// UpdateRole sets the role of a user. The previous role goes into the
// audit details.
func (s *Service) UpdateRole(ctx context.Context, actor Actor, userID int64, role coaching.Role) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.updateRole")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.String("role", string(role)))

	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.store.UpdateRole(ctx, userID, role)
	if err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	entry := actor.entry(audit.ActionRoleUpdate).OnUser(userID)
	entry.Details = map[string]any{"old_role": string(user.Role), "new_role": string(role)}
	s.record(ctx, entry)

	return updated, nil
}

func (s *Service) DeleteUser(ctx context.Context, actor Actor, userID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.deleteUser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	entry := actor.entry(audit.ActionUserDelete).OnUser(userID)
	entry.Details = map[string]any{"email": user.Email, "username": user.Username}
	s.record(ctx, entry)

	return nil
}

func (s *Service) PendingTrainers(ctx context.Context) (_ []trainers.Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.pendingTrainers")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	pending, err := s.store.PendingTrainers(ctx)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		pending = []trainers.Trainer{}
	}
	return pending, nil
}

// ReviewTrainer approves an application by promoting the user to trainer,
// or rejects it by clearing the submitted profile.
func (s *Service) ReviewTrainer(ctx context.Context, actor Actor, userID int64, approved bool) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.reviewTrainer")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID), attribute.Bool("approved", approved))

	if _, err := s.store.UserByID(ctx, userID); err != nil {
		return "", err
	}

	if approved {
		if _, err := s.store.UpdateRole(ctx, userID, coaching.RoleTrainer); err != nil {
			return "", fmt.Errorf("promote trainer: %w", err)
		}
		s.record(ctx, actor.entry(audit.ActionTrainerApprove).OnUser(userID))
		return MessageTrainerApproved, nil
	}

	if err := s.store.ClearTrainerProfile(ctx, userID); err != nil {
		return "", fmt.Errorf("clear trainer profile: %w", err)
	}
	s.record(ctx, actor.entry(audit.ActionTrainerReject).OnUser(userID))
	return MessageTrainerRejected, nil
}

func (s *Service) AuditLogs(ctx context.Context, filter audit.Filter) (_ *AuditPage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.admin.auditLogs")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	logs, total, err := s.store.ListAuditLogs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	if logs == nil {
		logs = []audit.Log{}
	}

	return &AuditPage{
		Logs:       logs,
		Pagination: pkg.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}
