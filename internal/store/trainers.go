package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/internal/trainers"
	"github.com/fitcoach/backend/pkg"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

const profileColumns = `p.user_id, p.headline, p.bio, p.years_experience, p.location, p.price_from,
	p.languages, p.specialties, p.certifications, p.hero_url, p.contact_url, p.telegram_username, p.updated_at`

const trainerColumns = `u.id, u.first_name, u.last_name, u.username, u.photo_url, ` + profileColumns

func scanProfile(row rowScanner) (*trainers.Profile, error) {
	var p trainers.Profile
	if err := row.Scan(
		&p.UserID, &p.Headline, &p.Bio, &p.YearsExperience, &p.Location, &p.PriceFrom,
		&p.Languages, &p.Specialties, &p.Certifications, &p.HeroURL, &p.ContactURL, &p.TelegramUsername, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

// scanTrainer reads trainerColumns from a users LEFT JOIN trainer_profiles row.
func scanTrainer(row rowScanner) (*trainers.Trainer, error) {
	var (
		user coaching.User
		p    struct {
			userID           *int64
			headline, bio    *string
			yearsExperience  *int
			location         *string
			priceFrom        *float64
			languages        []string
			specialties      []string
			certifications   []string
			heroURL          *string
			contactURL       *string
			telegramUsername *string
			updatedAt        *time.Time
		}
	)
	if err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Username, &user.PhotoURL,
		&p.userID, &p.headline, &p.bio, &p.yearsExperience, &p.location, &p.priceFrom,
		&p.languages, &p.specialties, &p.certifications, &p.heroURL, &p.contactURL, &p.telegramUsername, &p.updatedAt,
	); err != nil {
		return nil, err
	}

	trainer := &trainers.Trainer{
		ID:       user.ID,
		Name:     coaching.DisplayName(&user),
		Username: user.Username,
		PhotoURL: user.PhotoURL,
	}
	if p.userID != nil {
		trainer.Profile = &trainers.Profile{
			UserID:           *p.userID,
			Headline:         p.headline,
			Bio:              p.bio,
			YearsExperience:  p.yearsExperience,
			Location:         p.location,
			PriceFrom:        p.priceFrom,
			Languages:        nonNil(p.languages),
			Specialties:      nonNil(p.specialties),
			Certifications:   nonNil(p.certifications),
			HeroURL:          p.heroURL,
			ContactURL:       p.contactURL,
			TelegramUsername: p.telegramUsername,
		}
		if p.updatedAt != nil {
			trainer.Profile.UpdatedAt = *p.updatedAt
		}
	}

	return trainer, nil
}

func (r *Repo) TrainerProfile(ctx context.Context, userID int64) (_ *trainers.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	profile, err := scanProfile(r.db.QueryRow(
		ctx,
		`SELECT `+profileColumns+` FROM trainer_profiles p WHERE p.user_id = $1`,
		userID,
	))
	if pkg.IsNoRows(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("trainer profile: %w", err)
	}

	return profile, nil
}

func (r *Repo) UpsertTrainerProfile(ctx context.Context, profile trainers.Profile) (_ *trainers.Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.upsertProfile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", profile.UserID))

	saved, err := scanProfile(r.db.QueryRow(
		ctx,
		`INSERT INTO trainer_profiles AS p
				(user_id, headline, bio, years_experience, location, price_from,
				 languages, specialties, certifications, hero_url, contact_url, telegram_username, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
			ON CONFLICT (user_id) DO UPDATE SET
				headline = EXCLUDED.headline,
				bio = EXCLUDED.bio,
				years_experience = EXCLUDED.years_experience,
				location = EXCLUDED.location,
				price_from = EXCLUDED.price_from,
				languages = EXCLUDED.languages,
				specialties = EXCLUDED.specialties,
				certifications = EXCLUDED.certifications,
				hero_url = EXCLUDED.hero_url,
				contact_url = EXCLUDED.contact_url,
				telegram_username = EXCLUDED.telegram_username,
				updated_at = now()
			RETURNING `+profileColumns,
		profile.UserID, profile.Headline, profile.Bio, profile.YearsExperience, profile.Location, profile.PriceFrom,
		nonNil(profile.Languages), nonNil(profile.Specialties), nonNil(profile.Certifications),
		profile.HeroURL, profile.ContactURL, profile.TelegramUsername,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert trainer profile: %w", err)
	}

	return saved, nil
}

// ClearTrainerProfile empties a rejected application but keeps the row.
func (r *Repo) ClearTrainerProfile(ctx context.Context, userID int64) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.clearProfile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	_, err = r.db.Exec(
		ctx,
		`UPDATE trainer_profiles
			SET headline = NULL, bio = NULL, years_experience = NULL, location = NULL, hero_url = NULL, updated_at = now()
			WHERE user_id = $1`,
		userID,
	)
	return err
}

const catalogueWhere = `FROM users u
	LEFT JOIN trainer_profiles p ON p.user_id = u.id
	WHERE u.role = 'trainer'
	AND ($1::text = '' OR u.first_name ILIKE $1 OR u.last_name ILIKE $1 OR u.username ILIKE $1
		OR p.headline ILIKE $1 OR p.bio ILIKE $1)
	AND ($2::text = '' OR EXISTS (SELECT 1 FROM unnest(p.specialties) s WHERE lower(s) = lower($2)))
	AND ($3::text = '' OR p.location ILIKE $3)
	AND ($4::text = '' OR EXISTS (SELECT 1 FROM unnest(p.languages) l WHERE lower(l) = lower($4)))
	AND ($5::int <= 0 OR p.years_experience >= $5)`

func (r *Repo) ListTrainers(ctx context.Context, filter trainers.CatalogueFilter) (_ []trainers.Trainer, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.list")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("page", filter.Page))
	span.SetAttributes(attribute.Int("limit", filter.Limit))

	search := strings.TrimSpace(filter.Search)
	if search != "" {
		search = "%" + search + "%"
	}
	location := strings.TrimSpace(filter.Location)
	if location != "" {
		location = "%" + location + "%"
	}

	args := []any{
		search, strings.TrimSpace(filter.Specialty), location, strings.TrimSpace(filter.Language), filter.MinExperience,
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) `+catalogueWhere, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count trainers: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+trainerColumns+` `+catalogueWhere+`
			ORDER BY p.years_experience DESC NULLS LAST, u.id ASC
			LIMIT $6 OFFSET $7`,
		append(args, filter.Limit, pkg.NewPagination(filter.Page, filter.Limit, total).Offset())...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	list, err := collectTrainers(rows)
	if err != nil {
		return nil, 0, err
	}

	return list, total, nil
}

func (r *Repo) TrainerByID(ctx context.Context, id int64) (_ *trainers.Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.byID")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("trainer.id", id))

	trainer, err := scanTrainer(r.db.QueryRow(
		ctx,
		`SELECT `+trainerColumns+`
			FROM users u
			LEFT JOIN trainer_profiles p ON p.user_id = u.id
			WHERE u.id = $1 AND u.role = 'trainer'`,
		id,
	))
	if pkg.IsNoRows(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("trainer by id: %w", err)
	}

	return trainer, nil
}

// PendingTrainers lists plain users who submitted a trainer application.
func (r *Repo) PendingTrainers(ctx context.Context) (_ []trainers.Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.trainers.pending")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+trainerColumns+`
			FROM users u
			JOIN trainer_profiles p ON p.user_id = u.id
			WHERE u.role = 'user' AND p.bio IS NOT NULL
			ORDER BY p.updated_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTrainers(rows)
}

func collectTrainers(rows pgx.Rows) ([]trainers.Trainer, error) {
	list := make([]trainers.Trainer, 0)
	for rows.Next() {
		trainer, err := scanTrainer(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		list = append(list, *trainer)
	}
	return list, rows.Err()
}
