package trainers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
)

const telegramContactPrefix = "https://t.me/"

var validate = validator.New(validator.WithRequiredStructEnabled())

type Store interface {
	UserByID(ctx context.Context, id int64) (*coaching.User, error)
	UpdateName(ctx context.Context, userID int64, firstName, lastName *string) error
	TrainerProfile(ctx context.Context, userID int64) (*Profile, error)
	UpsertTrainerProfile(ctx context.Context, profile Profile) (*Profile, error)
	ListTrainers(ctx context.Context, filter CatalogueFilter) ([]Trainer, int, error)
	TrainerByID(ctx context.Context, id int64) (*Trainer, error)
}

// Application is a trainer application as submitted, before trimming.
type Application struct {
	Bio             string `validate:"required,max=2000"`
	FullName        string `validate:"required"`
	Location        string `validate:"required"`
	CVLink          string `validate:"omitempty,http_url"`
	YearsExperience *int
}

func (a Application) trimmed() Application {
	a.Bio = strings.TrimSpace(a.Bio)
	a.FullName = strings.TrimSpace(a.FullName)
	a.Location = strings.TrimSpace(a.Location)
	a.CVLink = strings.TrimSpace(a.CVLink)
	return a
}

// ValidationError carries the API code of the first invalid field.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return e.Code
}

var applicationCodes = map[string]string{
	"Bio.required":      "bio_required",
	"Bio.max":           "bio_too_long",
	"FullName.required": "full_name_required",
	"Location.required": "location_required",
	"CVLink.http_url":   "invalid_cv_link",
}

func validateApplication(app Application) error {
	err := validate.Struct(app)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return fmt.Errorf("validate application: %w", err)
	}
	first := fieldErrors[0]
	code, ok := applicationCodes[first.Field()+"."+first.Tag()]
	if !ok {
		code = "invalid_" + strings.ToLower(first.Field())
	}
	return &ValidationError{Code: code}
}

// splitFullName puts the first word into the first name and the rest,
// if any, into the last name.
func splitFullName(fullName string) (*string, *string) {
	parts := strings.Fields(fullName)
	if len(parts) == 0 {
		return nil, nil
	}
	first := parts[0]
	if len(parts) == 1 {
		return &first, nil
	}
	last := strings.Join(parts[1:], " ")
	return &first, &last
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

// Profile returns the caller's trainer profile, nil when none was submitted.
func (s *Service) Profile(ctx context.Context, userID int64) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainers.profile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	return s.store.TrainerProfile(ctx, userID)
}

// Apply validates and stores the caller's trainer application. The full
// name also overwrites the user's first and last name.
func (s *Service) Apply(ctx context.Context, userID int64, app Application) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainers.apply")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	app = app.trimmed()
	if err := validateApplication(app); err != nil {
		return nil, err
	}

	user, err := s.store.UserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	firstName, lastName := splitFullName(app.FullName)
	if err := s.store.UpdateName(ctx, userID, firstName, lastName); err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}

	var contactURL *string
	if user.Username != nil && *user.Username != "" {
		contact := telegramContactPrefix + strings.Replace(*user.Username, "@", "", 1)
		contactURL = &contact
	}

	profile := Profile{
		UserID:           userID,
		Headline:         &app.FullName,
		Bio:              &app.Bio,
		YearsExperience:  app.YearsExperience,
		Location:         &app.Location,
		Languages:        []string{},
		Specialties:      []string{},
		Certifications:   []string{},
		ContactURL:       contactURL,
		TelegramUsername: user.Username,
	}
	if app.CVLink != "" {
		profile.HeroURL = &app.CVLink
	}

	return s.store.UpsertTrainerProfile(ctx, profile)
}

func (s *Service) Catalogue(ctx context.Context, filter CatalogueFilter) (_ *CataloguePage, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainers.catalogue")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.Limit <= 0 || filter.Limit > pkg.MaxPageLimit {
		filter.Limit = pkg.DefaultPageLimit
	}

	list, total, err := s.store.ListTrainers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	if list == nil {
		list = []Trainer{}
	}

	return &CataloguePage{
		Trainers:   list,
		Pagination: pkg.NewPagination(filter.Page, filter.Limit, total),
	}, nil
}

func (s *Service) Trainer(ctx context.Context, id int64) (_ *Trainer, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.trainers.trainer")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("trainer.id", id))

	trainer, err := s.store.TrainerByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, ErrTrainerNotFound
	}
	return trainer, nil
}
