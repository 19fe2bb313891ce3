package coaching

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	spotlightSize        = 3
	todayEntriesLimit    = 20
	recentNutritionLimit = 30
)

type TrainerCard struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

type HomeTotals struct {
	Clients          int `json:"clients"`
	ActiveToday      int `json:"activeToday"`
	WorkoutsThisWeek int `json:"workoutsThisWeek"`
}

type HomeSummary struct {
	Trainer   TrainerCard `json:"trainer"`
	Totals    HomeTotals  `json:"totals"`
	Spotlight []Snapshot  `json:"spotlight"`
	Alerts    []string    `json:"alerts"`
}

type MacroTargets struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fat      *float64 `json:"fat"`
}

type ClientHeader struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Avatar       *string          `json:"avatar"`
	GoalWeight   *float64         `json:"goalWeight"`
	GoalDate     *time.Time       `json:"goalDate"`
	GoalProgress WeightTrajectory `json:"goalProgress"`
}

type ClientNutrition struct {
	TodayTotals   NutritionTotals `json:"todayTotals"`
	Targets       MacroTargets    `json:"targets"`
	TodayEntries  []Nutrition     `json:"todayEntries"`
	RecentEntries []Nutrition     `json:"recentEntries"`
}

type ClientTraining struct {
	PlanToday         *WorkoutPlanEntry  `json:"planToday"`
	Plan              []WorkoutPlanEntry `json:"plan"`
	WeeklyAttendance  []int              `json:"weeklyAttendance"`
	Upcoming          []UpcomingWorkout  `json:"upcoming"`
	CompletedThisWeek int                `json:"completedThisWeek"`
	CheckedInToday    bool               `json:"checkedInToday"`
}

type ClientWeight struct {
	History []WeightSample `json:"history"`
	Start   *float64       `json:"start"`
	Current *float64       `json:"current"`
	Target  *float64       `json:"target"`
}

// ClientProfile is the trainer's detail view of one client.
type ClientProfile struct {
	Client    ClientHeader    `json:"client"`
	Nutrition ClientNutrition `json:"nutrition"`
	Training  ClientTraining  `json:"training"`
	Weight    ClientWeight    `json:"weight"`
}

// ClientSnapshots builds a snapshot for every client on the trainer's roster,
// keeping roster order.
func (s *Service) ClientSnapshots(ctx context.Context, trainerID int64) (_ []Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.clientSnapshots")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer s.observe("client_snapshots", time.Now())

	trainer, err := s.EnsureTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.roster.Resolve(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("roster.size", len(clients)))

	return s.snapshots(ctx, clients)
}

func (s *Service) snapshots(ctx context.Context, clients []User) ([]Snapshot, error) {
	snapshots := make([]Snapshot, len(clients))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.snapshotConcurrency)
	for i := range clients {
		i := i
		g.Go(func() error {
			snapshot, err := s.BuildSnapshot(gctx, clients[i])
			if err != nil {
				return fmt.Errorf("snapshot of client %d: %w", clients[i].ID, err)
			}
			snapshots[i] = *snapshot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (s *Service) ClientProfile(ctx context.Context, trainerID, clientID int64) (_ *ClientProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.clientProfile")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer s.observe("client_profile", time.Now())

	client, err := s.AssertTrainerAccess(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}

	todayStr := LocalCalendarDate(s.now(), s.loc)
	var (
		dashboard     Dashboard
		todayEntries  []Nutrition
		recentEntries []Nutrition
		history       []WeightSample
		plan          []WorkoutPlanEntry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dashboard, err = s.dashboardFor(gctx, client)
		return err
	})
	g.Go(func() error {
		var err error
		todayEntries, err = s.store.ListNutrition(gctx, NutritionFilter{
			UserIDs: []int64{client.ID},
			Date:    todayStr,
			Limit:   todayEntriesLimit,
		})
		if err != nil {
			return fmt.Errorf("today nutrition: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recentEntries, err = s.store.ListNutrition(gctx, NutritionFilter{
			UserIDs: []int64{client.ID},
			Limit:   recentNutritionLimit,
		})
		if err != nil {
			return fmt.Errorf("recent nutrition: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		history, err = s.TrackingHistory(gctx, client.ID)
		return err
	})
	g.Go(func() error {
		var err error
		plan, err = s.WorkoutPlan(gctx, client.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	target := client.GoalWeight
	if target == nil {
		target = dashboard.Weights.Target
	}
	if todayEntries == nil {
		todayEntries = []Nutrition{}
	}
	if recentEntries == nil {
		recentEntries = []Nutrition{}
	}

	return &ClientProfile{
		Client: ClientHeader{
			ID:         client.ID,
			Name:       DisplayName(client),
			Avatar:     client.PhotoURL,
			GoalWeight: client.GoalWeight,
			GoalDate:   client.GoalDate,
			GoalProgress: WeightTrajectory{
				Start:   dashboard.Weights.Start,
				Current: dashboard.Weights.Current,
				Target:  target,
			},
		},
		Nutrition: ClientNutrition{
			TodayTotals: dashboard.TodayNutrition,
			Targets: MacroTargets{
				Calories: client.DailyCalorieTarget,
				Protein:  client.DailyProteinTarget,
				Carbs:    client.DailyCarbTarget,
				Fat:      client.DailyFatTarget,
			},
			TodayEntries:  todayEntries,
			RecentEntries: recentEntries,
		},
		Training: ClientTraining{
			PlanToday:         dashboard.PlanToday,
			Plan:              plan,
			WeeklyAttendance:  dashboard.WeeklyAttendance,
			Upcoming:          dashboard.UpcomingWorkouts,
			CompletedThisWeek: dashboard.WeeklyWorkouts,
			CheckedInToday:    dashboard.CheckedInToday,
		},
		Weight: ClientWeight{
			History: history,
			Start:   dashboard.Weights.Start,
			Current: dashboard.Weights.Current,
			Target:  target,
		},
	}, nil
}

// HomeSummary is the trainer landing page: roster totals and the first
// clients of the roster in detail.
func (s *Service) HomeSummary(ctx context.Context, trainerID int64) (_ *HomeSummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.homeSummary")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer s.observe("home_summary", time.Now())

	trainer, err := s.EnsureTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.roster.Resolve(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}

	summary := &HomeSummary{
		Trainer: TrainerCard{
			ID:     trainer.ID,
			Name:   DisplayName(trainer),
			Avatar: trainer.PhotoURL,
		},
		Totals:    HomeTotals{Clients: len(clients)},
		Spotlight: []Snapshot{},
		Alerts:    []string{},
	}
	if len(clients) == 0 {
		return summary, nil
	}

	clientIDs := make([]int64, 0, len(clients))
	for _, c := range clients {
		clientIDs = append(clientIDs, c.ID)
	}
	now := s.now()
	day := DayWindow(now, s.loc)
	week := SevenDayWindow(now, s.loc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spotlight, err := s.snapshots(gctx, clients[:min(spotlightSize, len(clients))])
		if err != nil {
			return err
		}
		summary.Spotlight = spotlight
		return nil
	})
	g.Go(func() error {
		active, err := s.store.CountAttendance(gctx, AttendanceFilter{
			UserIDs: clientIDs,
			From:    &day.Start,
			To:      &day.End,
		})
		if err != nil {
			return fmt.Errorf("count today attendance: %w", err)
		}
		summary.Totals.ActiveToday = active
		return nil
	})
	g.Go(func() error {
		workouts, err := s.store.CountAttendance(gctx, AttendanceFilter{
			UserIDs: clientIDs,
			From:    &week.Start,
			To:      &week.End,
		})
		if err != nil {
			return fmt.Errorf("count weekly attendance: %w", err)
		}
		summary.Totals.WorkoutsThisWeek = workouts
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *Service) SetClientTargets(ctx context.Context, trainerID, clientID int64, update TargetsUpdate) (*User, error) {
	client, err := s.AssertTrainerAccess(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	if len(update.Fields) == 0 {
		return client, nil
	}

	updated, err := s.store.UpdateTargets(ctx, client.ID, update)
	if err != nil {
		return nil, fmt.Errorf("update targets: %w", err)
	}
	return updated, nil
}

func (s *Service) AddClientNutrition(ctx context.Context, trainerID, clientID int64, input NutritionInput) (*Nutrition, error) {
	client, err := s.AssertTrainerAccess(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	return s.addNutrition(ctx, client.ID, input)
}

// ReplaceClientPlan upserts the given days and removes every day not given.
// Entries with an invalid day or a blank title are ignored. When nothing
// valid is left the plan stays as it is.
func (s *Service) ReplaceClientPlan(ctx context.Context, trainerID, clientID int64, entries []PlanEntryInput) ([]WorkoutPlanEntry, error) {
	client, err := s.AssertTrainerAccess(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}

	valid := make([]WorkoutPlanEntry, 0, len(entries))
	for _, e := range entries {
		title := strings.TrimSpace(e.Title)
		if e.Day < 0 || e.Day >= daysInWeek || title == "" {
			continue
		}
		valid = append(valid, WorkoutPlanEntry{UserID: client.ID, DayOfWeek: e.Day, Title: title})
	}
	if len(valid) == 0 {
		return s.WorkoutPlan(ctx, client.ID)
	}

	plan, err := s.store.ReplacePlan(ctx, client.ID, valid)
	if err != nil {
		return nil, fmt.Errorf("replace plan: %w", err)
	}
	return plan, nil
}

func (s *Service) MarkClientAttendance(ctx context.Context, trainerID, clientID int64, input AttendanceInput) (*Attendance, error) {
	client, err := s.AssertTrainerAccess(ctx, trainerID, clientID)
	if err != nil {
		return nil, err
	}
	return s.CheckIn(ctx, client.ID, input)
}
