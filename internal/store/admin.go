package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/admin"
	"github.com/fitcoach/backend/internal/audit"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

// PlatformStats counts users by role and all logged activity. Workouts are
// attendance check-ins.
func (r *Repo) PlatformStats(ctx context.Context, signupsSince time.Time) (_ admin.Stats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.admin.stats")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var stats admin.Stats
	err = r.db.QueryRow(
		ctx,
		`SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM users WHERE role = 'trainer'),
			(SELECT COUNT(*) FROM users WHERE role = 'admin'),
			(SELECT COUNT(*) FROM users WHERE created_at >= $1),
			(SELECT COUNT(*) FROM nutrition),
			(SELECT COUNT(*) FROM tracking),
			(SELECT COUNT(*) FROM attendance)`,
		signupsSince,
	).Scan(
		&stats.Users.Total, &stats.Users.Trainers, &stats.Users.Admins, &stats.Users.RecentSignups,
		&stats.Activity.NutritionEntries, &stats.Activity.TrackingEntries, &stats.Activity.Workouts,
	)
	if err != nil {
		return admin.Stats{}, fmt.Errorf("platform stats: %w", err)
	}

	return stats, nil
}

const userSearchWhere = `FROM users u
	WHERE ($1::text = '' OR u.role = $1)
	AND ($2::text = '' OR u.first_name ILIKE $2 OR u.last_name ILIKE $2 OR u.username ILIKE $2 OR u.email ILIKE $2)`

func (r *Repo) ListUsers(ctx context.Context, filter admin.UserFilter) (_ []coaching.User, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.admin.listUsers")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("page", filter.Page))
	span.SetAttributes(attribute.String("role", string(filter.Role)))

	search := strings.TrimSpace(filter.Search)
	if search != "" {
		search = "%" + search + "%"
	}
	args := []any{string(filter.Role), search}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+userSearchWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	users, err := r.queryUsers(
		ctx,
		`SELECT `+userColumns+` `+userSearchWhere+`
			ORDER BY u.created_at DESC, u.id DESC
			LIMIT $3 OFFSET $4`,
		append(args, filter.Limit, pkg.NewPagination(filter.Page, filter.Limit, total).Offset())...,
	)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *Repo) UpdateRole(ctx context.Context, id int64, role coaching.Role) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.admin.updateRole")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", id), attribute.String("role", string(role)))

	return r.queryUser(
		ctx,
		`UPDATE users AS u SET role = $1 WHERE u.id = $2 RETURNING `+userColumns,
		string(role), id,
	)
}

// DeleteUser removes the user with every row they own. Clients of a deleted
// trainer and audit rows of a deleted admin are detached, not removed.
func (r *Repo) DeleteUser(ctx context.Context, id int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.admin.deleteUser")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", id))

	return r.inTx(ctx, func(tx pgx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM attendance WHERE user_id = $1`,
			`DELETE FROM nutrition WHERE user_id = $1`,
			`DELETE FROM tracking WHERE user_id = $1`,
			`DELETE FROM workout_plan WHERE user_id = $1`,
			`DELETE FROM trainer_profiles WHERE user_id = $1`,
			`UPDATE users SET trainer_id = NULL WHERE trainer_id = $1`,
			`UPDATE admin_audit_log SET admin_id = NULL WHERE admin_id = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, id); err != nil {
				return fmt.Errorf("%s: %w", strings.Fields(stmt)[0], err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return coaching.ErrUserNotFound
		}
		return nil
	})
}

func (r *Repo) AddAuditLog(ctx context.Context, entry audit.Entry) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("action", string(entry.Action)))

	var details []byte
	if entry.Details != nil {
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return fmt.Errorf("marshal details: %w", err)
		}
	}

	var adminID, ip any
	if entry.AdminID > 0 {
		adminID = entry.AdminID
	}
	if entry.IP != "" {
		ip = entry.IP
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO admin_audit_log (admin_id, action, target_id, target_type, details, ip_address)
			VALUES ($1, $2, $3, $4, $5, $6)`,
		adminID, string(entry.Action), entry.TargetID, entry.TargetType, details, ip,
	)
	return err
}

const auditWhere = `FROM admin_audit_log l
	LEFT JOIN users u ON u.id = l.admin_id
	WHERE ($1::bigint IS NULL OR l.admin_id = $1)
	AND ($2::text = '' OR l.action = $2)`

func (r *Repo) ListAuditLogs(ctx context.Context, filter audit.Filter) (_ []audit.Log, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.audit.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("page", filter.Page))
	span.SetAttributes(attribute.String("action", filter.Action))

	args := []any{filter.AdminID, filter.Action}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+auditWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT l.id, l.admin_id, l.action, l.target_id, l.target_type, l.details, l.ip_address, l.created_at,
				u.id, u.first_name, u.last_name, u.username, u.email
			`+auditWhere+`
			ORDER BY l.created_at DESC, l.id DESC
			LIMIT $3 OFFSET $4`,
		append(args, filter.Limit, pkg.NewPagination(filter.Page, filter.Limit, total).Offset())...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	logs := make([]audit.Log, 0)
	for rows.Next() {
		var (
			entry   audit.Log
			details []byte
			actorID *int64
			actor   coaching.User
		)
		if err := rows.Scan(
			&entry.ID, &entry.AdminID, &entry.Action, &entry.TargetID, &entry.TargetType, &details, &entry.IPAddress, &entry.CreatedAt,
			&actorID, &actor.FirstName, &actor.LastName, &actor.Username, &actor.Email,
		); err != nil {
			return nil, 0, fmt.Errorf("rows scan: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, 0, fmt.Errorf("unmarshal details of %d: %w", entry.ID, err)
			}
		}
		if actorID != nil {
			actor.ID = *actorID
			entry.Admin = &audit.Actor{
				ID:    actor.ID,
				Name:  coaching.DisplayName(&actor),
				Email: actor.Email,
			}
		}
		logs = append(logs, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
