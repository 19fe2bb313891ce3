package store

import (
	"context"
	"fmt"

	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const upsertPlanEntrySQL = `INSERT INTO workout_plan (user_id, day_of_week, title, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (user_id, day_of_week) DO UPDATE SET title = EXCLUDED.title, updated_at = now()
	RETURNING id, user_id, day_of_week, title, updated_at`

func workoutPlan(ctx context.Context, q querier, userID int64) ([]coaching.WorkoutPlanEntry, error) {
	rows, err := q.Query(
		ctx,
		`SELECT id, user_id, day_of_week, title, updated_at FROM workout_plan
			WHERE user_id = $1
			ORDER BY day_of_week ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plan := make([]coaching.WorkoutPlanEntry, 0, 7)
	for rows.Next() {
		var e coaching.WorkoutPlanEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.DayOfWeek, &e.Title, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		plan = append(plan, e)
	}

	return plan, rows.Err()
}

func (r *Repo) WorkoutPlan(ctx context.Context, userID int64) (_ []coaching.WorkoutPlanEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	return workoutPlan(ctx, r.db, userID)
}

func (r *Repo) UpsertPlanEntry(ctx context.Context, userID int64, day int, title string) (_ *coaching.WorkoutPlanEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.upsert")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.Int("day", day))

	var e coaching.WorkoutPlanEntry
	if err := r.db.QueryRow(ctx, upsertPlanEntrySQL, userID, day, title).
		Scan(&e.ID, &e.UserID, &e.DayOfWeek, &e.Title, &e.UpdatedAt); err != nil {
		return nil, fmt.Errorf("upsert plan entry: %w", err)
	}

	return &e, nil
}

// ReplacePlan upserts the given days and drops every other day of the
// user's plan in one transaction.
func (r *Repo) ReplacePlan(ctx context.Context, userID int64, entries []coaching.WorkoutPlanEntry) (_ []coaching.WorkoutPlanEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plan.replace")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.Int("entries", len(entries)))

	var plan []coaching.WorkoutPlanEntry
	err = r.inTx(ctx, func(tx pgx.Tx) error {
		days := make([]int, 0, len(entries))
		for _, entry := range entries {
			if _, err := tx.Exec(ctx, upsertPlanEntrySQL, userID, entry.DayOfWeek, entry.Title); err != nil {
				return fmt.Errorf("upsert day %d: %w", entry.DayOfWeek, err)
			}
			days = append(days, entry.DayOfWeek)
		}

		if _, err := tx.Exec(
			ctx,
			`DELETE FROM workout_plan WHERE user_id = $1 AND NOT (day_of_week = ANY($2))`,
			userID, days,
		); err != nil {
			return fmt.Errorf("delete dropped days: %w", err)
		}

		var err error
		plan, err = workoutPlan(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return plan, nil
}
