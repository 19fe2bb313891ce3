package coaching

import (
	"context"
	"fmt"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"golang.org/x/sync/errgroup"
)

type SnapshotNutrition struct {
	Calories      float64         `json:"calories"`
	Protein       float64         `json:"protein"`
	CalorieTarget *float64        `json:"calorieTarget"`
	ProteinTarget *float64        `json:"proteinTarget"`
	Status        NutritionStatus `json:"status"`
}

// SnapshotWeight carries the unnormalized delta: positive means above goal.
type SnapshotWeight struct {
	Current *float64 `json:"current"`
	Goal    *float64 `json:"goal"`
	Delta   *float64 `json:"delta"`
}

type Goal struct {
	Weight *float64   `json:"weight"`
	Date   *time.Time `json:"date"`
}

// Snapshot is one client's current state as shown to a trainer.
type Snapshot struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Avatar         *string           `json:"avatar"`
	WeeklyWorkouts int               `json:"weeklyWorkouts"`
	TodayNutrition SnapshotNutrition `json:"todayNutrition"`
	Weight         SnapshotWeight    `json:"weight"`
	Goal           Goal              `json:"goal"`
	PlanToday      *WorkoutPlanEntry `json:"planToday"`
	LastActive     time.Time         `json:"lastActive"`
	CheckedInToday bool              `json:"checkedInToday"`
}

// BuildSnapshot composes a client snapshot on top of the client's dashboard.
func (s *Service) BuildSnapshot(ctx context.Context, user User) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.snapshot")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var (
		dashboard Dashboard
		last      *Attendance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dashboard, err = s.dashboardFor(gctx, &user)
		return err
	})
	g.Go(func() error {
		var err error
		last, err = s.store.LastAttendance(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("last attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return composeSnapshot(user, dashboard, last), nil
}

func composeSnapshot(user User, dashboard Dashboard, last *Attendance) *Snapshot {
	goal := user.GoalWeight
	if goal == nil {
		goal = dashboard.Weights.Target
	}

	lastActive := user.CreatedAt
	if last != nil {
		lastActive = last.CreatedAt
	}

	return &Snapshot{
		ID:             user.ID,
		Name:           DisplayName(&user),
		Avatar:         user.PhotoURL,
		WeeklyWorkouts: dashboard.WeeklyWorkouts,
		TodayNutrition: SnapshotNutrition{
			Calories:      dashboard.TodayNutrition.Calories,
			Protein:       dashboard.TodayNutrition.Protein,
			CalorieTarget: user.DailyCalorieTarget,
			ProteinTarget: user.DailyProteinTarget,
			Status: ClassifyNutrition(
				dashboard.TodayNutrition.Calories, user.DailyCalorieTarget,
				dashboard.TodayNutrition.Protein, user.DailyProteinTarget,
			),
		},
		Weight: SnapshotWeight{
			Current: dashboard.Weights.Current,
			Goal:    goal,
			Delta:   WeightDelta(dashboard.Weights.Current, goal),
		},
		Goal: Goal{
			Weight: user.GoalWeight,
			Date:   user.GoalDate,
		},
		PlanToday:      dashboard.PlanToday,
		LastActive:     lastActive,
		CheckedInToday: dashboard.CheckedInToday,
	}
}
