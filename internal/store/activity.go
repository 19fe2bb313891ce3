package store

import (
	"context"
	"fmt"
	"time"

	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// limitArg maps a non-positive limit to NULL, which Postgres reads as no limit.
func limitArg(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func (r *Repo) CountAttendance(ctx context.Context, filter coaching.AttendanceFilter) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.count")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("users.count", len(filter.UserIDs)))

	if len(filter.UserIDs) == 0 {
		return 0, nil
	}

	var count int
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM attendance
			WHERE user_id = ANY($1)
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at < $3)`,
		filter.UserIDs, filter.From, filter.To,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}

	return count, nil
}

func (r *Repo) ListAttendance(ctx context.Context, filter coaching.AttendanceFilter) (_ []coaching.Attendance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("users.count", len(filter.UserIDs)))

	if len(filter.UserIDs) == 0 {
		return []coaching.Attendance{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, workout_id, time, created_at FROM attendance
			WHERE user_id = ANY($1)
			AND ($2::timestamptz IS NULL OR created_at >= $2)
			AND ($3::timestamptz IS NULL OR created_at < $3)
			ORDER BY created_at ASC, id ASC`,
		filter.UserIDs, filter.From, filter.To,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]coaching.Attendance, 0)
	for rows.Next() {
		var a coaching.Attendance
		if err := rows.Scan(&a.ID, &a.UserID, &a.WorkoutID, &a.Time, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		items = append(items, a)
	}

	return items, rows.Err()
}

func (r *Repo) LastAttendance(ctx context.Context, userID int64) (_ *coaching.Attendance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.last")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, workout_id, time, created_at FROM attendance
			WHERE user_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT 1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	var a coaching.Attendance
	if err := rows.Scan(&a.ID, &a.UserID, &a.WorkoutID, &a.Time, &a.CreatedAt); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}
	return &a, nil
}

func (r *Repo) AddAttendance(ctx context.Context, attendance coaching.Attendance) (_ *coaching.Attendance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.attendance.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", attendance.UserID))

	createdAt := attendance.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO attendance (user_id, workout_id, time, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
		attendance.UserID, attendance.WorkoutID, attendance.Time, createdAt,
	).Scan(&attendance.ID, &attendance.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert attendance: %w", err)
	}

	return &attendance, nil
}

func (r *Repo) SumNutrition(ctx context.Context, userID int64, date string) (_ coaching.NutritionTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.sum")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.String("date", date))

	var totals coaching.NutritionTotals
	err = r.db.QueryRow(
		ctx,
		`SELECT COALESCE(SUM(calories), 0), COALESCE(SUM(protein), 0)
			FROM nutrition WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&totals.Calories, &totals.Protein)
	if err != nil {
		return coaching.NutritionTotals{}, fmt.Errorf("sum nutrition: %w", err)
	}

	return totals, nil
}

func (r *Repo) ListNutrition(ctx context.Context, filter coaching.NutritionFilter) (_ []coaching.Nutrition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("users.count", len(filter.UserIDs)))

	if len(filter.UserIDs) == 0 {
		return []coaching.Nutrition{}, nil
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, calories, protein, fat, carbs, note, created_at FROM nutrition
			WHERE user_id = ANY($1)
			AND ($2::text = '' OR date = $2)
			AND ($3::text = '' OR date >= $3)
			ORDER BY date DESC, created_at DESC
			LIMIT $4`,
		filter.UserIDs, filter.Date, filter.FromDate, limitArg(filter.Limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]coaching.Nutrition, 0)
	for rows.Next() {
		var n coaching.Nutrition
		if err := rows.Scan(&n.ID, &n.UserID, &n.Date, &n.Calories, &n.Protein, &n.Fat, &n.Carbs, &n.Note, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		items = append(items, n)
	}

	return items, rows.Err()
}

func (r *Repo) AddNutrition(ctx context.Context, nutrition coaching.Nutrition) (_ *coaching.Nutrition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.nutrition.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", nutrition.UserID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO nutrition (user_id, date, calories, protein, fat, carbs, note)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at`,
		nutrition.UserID, nutrition.Date, nutrition.Calories, nutrition.Protein, nutrition.Fat, nutrition.Carbs, nutrition.Note,
	).Scan(&nutrition.ID, &nutrition.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert nutrition: %w", err)
	}

	return &nutrition, nil
}

// WeightBounds reads the earliest and latest recorded weight by date and
// the number of tracking rows, weighed or not.
func (r *Repo) WeightBounds(ctx context.Context, userID int64) (_ coaching.WeightBounds, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.weightBounds")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	var bounds coaching.WeightBounds
	err = r.db.QueryRow(
		ctx,
		`SELECT
			(SELECT weight FROM tracking WHERE user_id = $1 AND weight IS NOT NULL ORDER BY date ASC, created_at ASC LIMIT 1),
			(SELECT weight FROM tracking WHERE user_id = $1 AND weight IS NOT NULL ORDER BY date DESC, created_at DESC LIMIT 1),
			(SELECT COUNT(*) FROM tracking WHERE user_id = $1)`,
		userID,
	).Scan(&bounds.Start, &bounds.Current, &bounds.Entries)
	if err != nil {
		return coaching.WeightBounds{}, fmt.Errorf("weight bounds: %w", err)
	}

	return bounds, nil
}

func (r *Repo) ListTracking(ctx context.Context, filter coaching.TrackingFilter) (_ []coaching.Tracking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("users.count", len(filter.UserIDs)))
	span.SetAttributes(attribute.Bool("newest_first", filter.NewestFirst))

	if len(filter.UserIDs) == 0 {
		return []coaching.Tracking{}, nil
	}

	order := `user_id ASC, date ASC, created_at ASC`
	if filter.NewestFirst {
		order = `date DESC, created_at DESC`
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, date, weight, body_fat, created_at FROM tracking
			WHERE user_id = ANY($1)
			ORDER BY `+order+`
			LIMIT $2`,
		filter.UserIDs, limitArg(filter.Limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]coaching.Tracking, 0)
	for rows.Next() {
		var t coaching.Tracking
		if err := rows.Scan(&t.ID, &t.UserID, &t.Date, &t.Weight, &t.BodyFat, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		items = append(items, t)
	}

	return items, rows.Err()
}

func (r *Repo) AddTracking(ctx context.Context, tracking coaching.Tracking) (_ *coaching.Tracking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.add")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", tracking.UserID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO tracking (user_id, date, weight, body_fat)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at`,
		tracking.UserID, tracking.Date, tracking.Weight, tracking.BodyFat,
	).Scan(&tracking.ID, &tracking.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert tracking: %w", err)
	}

	return &tracking, nil
}
