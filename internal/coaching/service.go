package coaching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/metrics"
	"github.com/fitcoach/backend/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

const (
	defaultUpcomingLimit      = 5
	trackingHistoryLimit      = 100
	defaultWorkoutTitle       = "Тренировка"
	defaultSnapshotConcurrent = 8
	attendanceTimeLayout      = "2006-01-02T15:04:05.000Z07:00"
)

var (
	ErrDateRequired          = errors.New("date_required")
	ErrDateAndWeightRequired = errors.New("date_and_weight_required")
	ErrInvalidDay            = errors.New("invalid_day")
	ErrTitleRequired         = errors.New("title_required")
)

type NutritionInput struct {
	Date     string
	Calories float64
	Protein  float64
	Fat      float64
	Carbs    float64
	Note     *string
}

type TrackingInput struct {
	Date    string
	Weight  *float64
	BodyFat *float64
	// WeightSet is false when the weight key was absent, an explicit null is allowed
	WeightSet bool
}

type AttendanceInput struct {
	WorkoutID *int64
	Time      string
}

type PlanEntryInput struct {
	Day   int
	Title string
}

type Option func(*Service)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the calendar used for "today" and weekday buckets.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithRoster(roster RosterStrategy) Option {
	return func(s *Service) {
		s.roster = roster
	}
}

func WithMetrics(metricsManager *metrics.Manager) Option {
	return func(s *Service) {
		s.metrics = metricsManager
	}
}

func WithSnapshotConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.snapshotConcurrency = n
		}
	}
}

type Service struct {
	store               Store
	roster              RosterStrategy
	metrics             *metrics.Manager
	now                 func() time.Time
	loc                 *time.Location
	snapshotConcurrency int
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:               store,
		now:                 time.Now,
		loc:                 time.Local,
		snapshotConcurrency: defaultSnapshotConcurrent,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.roster == nil {
		s.roster = NewMergedRoster(NewDirectRoster(store), NewLegacyRoster(store))
	}
	return s
}

func (s *Service) today() time.Time {
	return StartOfDay(s.now(), s.loc)
}

func (s *Service) observe(aggregate string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.HistogramAggregationDuration.WithLabelValues(aggregate).Observe(time.Since(started).Seconds())
}

func (s *Service) Me(ctx context.Context, userID int64) (*User, error) {
	return s.store.UserByID(ctx, userID)
}

func (s *Service) LogNutrition(ctx context.Context, userID int64, input NutritionInput) (*Nutrition, error) {
	return s.addNutrition(ctx, userID, input)
}

func (s *Service) addNutrition(ctx context.Context, userID int64, input NutritionInput) (_ *Nutrition, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.addNutrition")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(input.Date) == "" {
		return nil, ErrDateRequired
	}

	added, err := s.store.AddNutrition(ctx, Nutrition{
		UserID:   userID,
		Date:     strings.TrimSpace(input.Date),
		Calories: input.Calories,
		Protein:  input.Protein,
		Fat:      input.Fat,
		Carbs:    input.Carbs,
		Note:     input.Note,
	})
	if err != nil {
		return nil, fmt.Errorf("add nutrition: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterNutritionEntries.Inc()
	}
	log.Debugf("nutrition entry %d added for user %d: %s", added.ID, userID, added.Date)
	return added, nil
}

func (s *Service) AddTracking(ctx context.Context, userID int64, input TrackingInput) (_ *Tracking, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.addTracking")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if strings.TrimSpace(input.Date) == "" || !input.WeightSet {
		return nil, ErrDateAndWeightRequired
	}

	added, err := s.store.AddTracking(ctx, Tracking{
		UserID:  userID,
		Date:    strings.TrimSpace(input.Date),
		Weight:  input.Weight,
		BodyFat: input.BodyFat,
	})
	if err != nil {
		return nil, fmt.Errorf("add tracking: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterTrackingEntries.Inc()
	}
	return added, nil
}

func (s *Service) CheckIn(ctx context.Context, userID int64, input AttendanceInput) (_ *Attendance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.checkIn")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	reported := strings.TrimSpace(input.Time)
	if reported == "" {
		reported = s.now().UTC().Format(attendanceTimeLayout)
	}

	added, err := s.store.AddAttendance(ctx, Attendance{
		UserID:    userID,
		WorkoutID: input.WorkoutID,
		Time:      &reported,
	})
	if err != nil {
		return nil, fmt.Errorf("add attendance: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterCheckIns.Inc()
	}
	return added, nil
}

// SetGoalWeight stores a new goal weight, nil clears it.
func (s *Service) SetGoalWeight(ctx context.Context, userID int64, goalWeight *float64) (*User, error) {
	updated, err := s.store.UpdateGoalWeight(ctx, userID, goalWeight)
	if err != nil {
		return nil, fmt.Errorf("update goal weight: %w", err)
	}
	return updated, nil
}

func (s *Service) WorkoutPlan(ctx context.Context, userID int64) ([]WorkoutPlanEntry, error) {
	plan, err := s.store.WorkoutPlan(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("workout plan: %w", err)
	}
	if plan == nil {
		plan = []WorkoutPlanEntry{}
	}
	return plan, nil
}

func (s *Service) UpsertPlanEntry(ctx context.Context, userID int64, day int, title string) (*WorkoutPlanEntry, error) {
	if day < 0 || day >= daysInWeek {
		return nil, ErrInvalidDay
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	entry, err := s.store.UpsertPlanEntry(ctx, userID, day, title)
	if err != nil {
		return nil, fmt.Errorf("upsert plan entry: %w", err)
	}
	return entry, nil
}

// TrackingHistory returns the latest weight samples, newest first.
func (s *Service) TrackingHistory(ctx context.Context, userID int64) ([]WeightSample, error) {
	rows, err := s.store.ListTracking(ctx, TrackingFilter{
		UserIDs:     []int64{userID},
		NewestFirst: true,
		Limit:       trackingHistoryLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("list tracking: %w", err)
	}

	history := make([]WeightSample, 0, len(rows))
	for _, row := range rows {
		history = append(history, WeightSample{Date: row.Date, Weight: row.Weight})
	}
	return history, nil
}

func (s *Service) UpcomingWorkouts(ctx context.Context, userID int64, limit int) ([]UpcomingWorkout, error) {
	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return []UpcomingWorkout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.upcomingWorkouts(ctx, user, limit)
}

func (s *Service) NextWorkout(ctx context.Context, userID int64) (*UpcomingWorkout, error) {
	workouts, err := s.UpcomingWorkouts(ctx, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(workouts) == 0 {
		return nil, nil
	}
	return &workouts[0], nil
}

// legacyClientFor links a user to the old client table: by telegram id
// first, then by the exact full name.
func (s *Service) legacyClientFor(ctx context.Context, user *User) (*LegacyClient, error) {
	if user.TelegramID != nil && *user.TelegramID != "" {
		client, err := s.store.LegacyClientByTelegramID(ctx, *user.TelegramID)
		if err != nil {
			return nil, fmt.Errorf("legacy client by telegram id: %w", err)
		}
		if client != nil {
			return client, nil
		}
	}

	if name := user.FullName(); name != "" {
		client, err := s.store.LegacyClientByName(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("legacy client by name: %w", err)
		}
		return client, nil
	}

	return nil, nil
}

func (s *Service) upcomingWorkouts(ctx context.Context, user *User, limit int) ([]UpcomingWorkout, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}

	client, err := s.legacyClientFor(ctx, user)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []UpcomingWorkout{}, nil
	}

	rows, err := s.store.UpcomingWorkouts(ctx, client.ID, LocalCalendarDate(s.now(), s.loc), limit)
	if err != nil {
		return nil, fmt.Errorf("upcoming workouts: %w", err)
	}

	workouts := make([]UpcomingWorkout, 0, len(rows))
	for _, row := range rows {
		date, clock := splitDateTime(row.Date)
		title := defaultWorkoutTitle
		if row.Title != nil && *row.Title != "" {
			title = *row.Title
		}
		var notes *string
		if row.Exercises != nil && *row.Exercises != "" {
			notes = row.Exercises
		}
		workouts = append(workouts, UpcomingWorkout{
			ID:    row.ID,
			Title: title,
			Date:  date,
			Time:  clock,
			Notes: notes,
		})
	}
	return workouts, nil
}
