package store

import (
	"context"
	"fmt"

	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"go.opentelemetry.io/otel/attribute"
)

func scanLegacyClient(row rowScanner) (*coaching.LegacyClient, error) {
	var client coaching.LegacyClient
	if err := row.Scan(&client.ID, &client.TrainerID, &client.TelegramID, &client.Name); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *Repo) LegacyClientsByTrainer(ctx context.Context, trainerID int64) (_ []coaching.LegacyClient, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.legacy.clientsByTrainer")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("trainer.id", trainerID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, trainer_id, telegram_id, name FROM client WHERE trainer_id = $1 ORDER BY id`,
		trainerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clients := make([]coaching.LegacyClient, 0)
	for rows.Next() {
		client, err := scanLegacyClient(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		clients = append(clients, *client)
	}

	return clients, rows.Err()
}

func (r *Repo) legacyClientWhere(ctx context.Context, where string, arg any) (*coaching.LegacyClient, error) {
	client, err := scanLegacyClient(r.db.QueryRow(
		ctx,
		`SELECT id, trainer_id, telegram_id, name FROM client WHERE `+where+` ORDER BY id LIMIT 1`,
		arg,
	))
	if pkg.IsNoRows(err) {
		return nil, nil
	}
	return client, err
}

func (r *Repo) LegacyClientByTelegramID(ctx context.Context, telegramID string) (_ *coaching.LegacyClient, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.legacy.clientByTelegramID")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.legacyClientWhere(ctx, "telegram_id = $1", telegramID)
}

func (r *Repo) LegacyClientByName(ctx context.Context, name string) (_ *coaching.LegacyClient, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.legacy.clientByName")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.legacyClientWhere(ctx, "name = $1", name)
}

// UpcomingWorkouts lists the workouts dated on or after fromDate. Dates are
// ISO strings so they sort lexically.
func (r *Repo) UpcomingWorkouts(ctx context.Context, clientID int64, fromDate string, limit int) (_ []coaching.Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.legacy.upcomingWorkouts")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("client.id", clientID))
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, client_id, date, title, exercises FROM workout
			WHERE client_id = $1 AND date >= $2
			ORDER BY date ASC
			LIMIT $3`,
		clientID, fromDate, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := make([]coaching.Workout, 0)
	for rows.Next() {
		var w coaching.Workout
		if err := rows.Scan(&w.ID, &w.ClientID, &w.Date, &w.Title, &w.Exercises); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}
