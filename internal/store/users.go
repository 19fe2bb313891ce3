package store

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"go.opentelemetry.io/otel/attribute"
)

const userColumns = `u.id, u.telegram_id, u.username, u.first_name, u.last_name, u.photo_url, u.email,
	COALESCE(u.password, ''), u.role, u.goal_weight, u.goal_date,
	u.daily_calorie_target, u.daily_protein_target, u.daily_carb_target, u.daily_fat_target,
	u.trainer_id, u.created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*coaching.User, error) {
	var (
		user coaching.User
		role string
	)
	if err := row.Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName, &user.PhotoURL, &user.Email,
		&user.PasswordHash, &role, &user.GoalWeight, &user.GoalDate,
		&user.DailyCalorieTarget, &user.DailyProteinTarget, &user.DailyCarbTarget, &user.DailyFatTarget,
		&user.TrainerID, &user.CreatedAt,
	); err != nil {
		return nil, err
	}
	user.Role = coaching.Role(role)
	return &user, nil
}

func (r *Repo) queryUsers(ctx context.Context, sql string, args ...any) ([]coaching.User, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]coaching.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func (r *Repo) queryUser(ctx context.Context, sql string, args ...any) (*coaching.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if pkg.IsNoRows(err) {
		return nil, coaching.ErrUserNotFound
	}
	return user, err
}

func (r *Repo) UserByID(ctx context.Context, id int64) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.byID")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", id))

	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
}

func (r *Repo) UserByEmail(ctx context.Context, email string) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.byEmail")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	return r.queryUser(ctx, `SELECT `+userColumns+` FROM users u WHERE lower(u.email) = lower($1)`, email)
}

func (r *Repo) UsersByTrainer(ctx context.Context, trainerID int64) (_ []coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.byTrainer")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("trainer.id", trainerID))

	return r.queryUsers(
		ctx,
		`SELECT `+userColumns+` FROM users u
			WHERE u.trainer_id = $1 AND u.role = 'user'
			ORDER BY u.created_at DESC`,
		trainerID,
	)
}

func (r *Repo) UsersByTelegramIDs(ctx context.Context, telegramIDs []string) (_ []coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.byTelegramIDs")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("telegram_ids.count", len(telegramIDs)))

	if len(telegramIDs) == 0 {
		return []coaching.User{}, nil
	}

	return r.queryUsers(
		ctx,
		`SELECT `+userColumns+` FROM users u WHERE u.telegram_id = ANY($1) ORDER BY u.id`,
		telegramIDs,
	)
}

// UpsertTelegramUser inserts the telegram user or refreshes the profile
// fields present in tg. xmax is zero only for freshly inserted rows.
func (r *Repo) UpsertTelegramUser(ctx context.Context, tg auth.TelegramUser) (_ *coaching.User, created bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.upsertTelegram")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("telegram.id", tg.ID))

	row := r.db.QueryRow(
		ctx,
		`INSERT INTO users AS u (telegram_id, username, first_name, last_name, photo_url, role)
			VALUES ($1, $2, $3, $4, $5, 'user')
			ON CONFLICT (telegram_id) DO UPDATE SET
				username = COALESCE(EXCLUDED.username, u.username),
				first_name = COALESCE(EXCLUDED.first_name, u.first_name),
				last_name = COALESCE(EXCLUDED.last_name, u.last_name),
				photo_url = COALESCE(EXCLUDED.photo_url, u.photo_url)
			RETURNING `+userColumns+`, (u.xmax = 0)`,
		strconv.FormatInt(tg.ID, 10), tg.Username, tg.FirstName, tg.LastName, tg.PhotoURL,
	)

	var (
		user coaching.User
		role string
	)
	if err := row.Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.LastName, &user.PhotoURL, &user.Email,
		&user.PasswordHash, &role, &user.GoalWeight, &user.GoalDate,
		&user.DailyCalorieTarget, &user.DailyProteinTarget, &user.DailyCarbTarget, &user.DailyFatTarget,
		&user.TrainerID, &user.CreatedAt, &created,
	); err != nil {
		return nil, false, fmt.Errorf("upsert telegram user: %w", err)
	}
	user.Role = coaching.Role(role)

	return &user, created, nil
}

func (r *Repo) CreateAdmin(ctx context.Context, newAdmin auth.NewAdmin) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.createAdmin")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	user, err := scanUser(r.db.QueryRow(
		ctx,
		`INSERT INTO users AS u (email, password, first_name, last_name, role)
			VALUES ($1, $2, $3, $4, 'admin')
			RETURNING `+userColumns,
		newAdmin.Email, newAdmin.PasswordHash, newAdmin.FirstName, newAdmin.LastName,
	))
	if pkg.IsUniqueViolationError(err) {
		return nil, auth.ErrEmailExists
	} else if err != nil {
		return nil, fmt.Errorf("insert admin: %w", err)
	}

	span.SetAttributes(attribute.Int64("user.id", user.ID))
	return user, nil
}

func (r *Repo) UpdateName(ctx context.Context, userID int64, firstName, lastName *string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateName")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE users SET first_name = $1, last_name = $2 WHERE id = $3`,
		firstName, lastName, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return coaching.ErrUserNotFound
	}
	return nil
}

func (r *Repo) UpdateGoalWeight(ctx context.Context, userID int64, goalWeight *float64) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateGoalWeight")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	return r.queryUser(
		ctx,
		`UPDATE users AS u SET goal_weight = $1 WHERE u.id = $2 RETURNING `+userColumns,
		goalWeight, userID,
	)
}

// UpdateTargets writes only the columns named in update.Fields.
func (r *Repo) UpdateTargets(ctx context.Context, userID int64, update coaching.TargetsUpdate) (_ *coaching.User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.users.updateTargets")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))
	span.SetAttributes(attribute.StringSlice("fields", update.Fields))

	if len(update.Fields) == 0 {
		return r.UserByID(ctx, userID)
	}

	values := map[string]any{
		coaching.FieldDailyCalorieTarget: update.DailyCalorieTarget,
		coaching.FieldDailyProteinTarget: update.DailyProteinTarget,
		coaching.FieldDailyCarbTarget:    update.DailyCarbTarget,
		coaching.FieldDailyFatTarget:     update.DailyFatTarget,
		coaching.FieldGoalWeight:         update.GoalWeight,
		coaching.FieldGoalDate:           update.GoalDate,
	}

	sets := make([]string, 0, len(update.Fields))
	args := make([]any, 0, len(update.Fields)+1)
	for _, field := range update.Fields {
		value, ok := values[field]
		if !ok {
			return nil, fmt.Errorf("unknown target field %q", field)
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
	}
	args = append(args, userID)

	return r.queryUser(
		ctx,
		fmt.Sprintf(
			`UPDATE users AS u SET %s WHERE u.id = $%d RETURNING `+userColumns,
			strings.Join(sets, ", "), len(args),
		),
		args...,
	)
}
