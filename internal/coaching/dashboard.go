package coaching

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

type WeightTrajectory struct {
	Start   *float64 `json:"start"`
	Current *float64 `json:"current"`
	Target  *float64 `json:"target"`
}

// Dashboard is a user's own rollup of the current week and day.
type Dashboard struct {
	CompletedWorkouts int               `json:"completedWorkouts"`
	WeeklyWorkouts    int               `json:"weeklyWorkouts"`
	TodayNutrition    NutritionTotals   `json:"todayNutrition"`
	CaloriesLogged    float64           `json:"caloriesLogged"`
	WeeklyAttendance  []int             `json:"weeklyAttendance"`
	Weights           WeightTrajectory  `json:"weights"`
	GoalWeight        *float64          `json:"goalWeight"`
	HasGoalWeight     bool              `json:"hasGoalWeight"`
	NeedsWeightEntry  bool              `json:"needsWeightEntry"`
	PlanToday         *WorkoutPlanEntry `json:"planToday"`
	NextWorkout       *UpcomingWorkout  `json:"nextWorkout"`
	UpcomingWorkouts  []UpcomingWorkout `json:"upcomingWorkouts"`
	CheckedInToday    bool              `json:"checkedInToday"`
}

// EmptyDashboard is what unknown users get instead of an error.
func EmptyDashboard() Dashboard {
	return Dashboard{
		WeeklyAttendance: make([]int, daysInWeek),
		UpcomingWorkouts: []UpcomingWorkout{},
	}
}

// Dashboard computes the rollup for userID. A missing user yields
// EmptyDashboard, only storage failures are returned as errors.
func (s *Service) Dashboard(ctx context.Context, userID int64) (_ Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.dashboard")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int64("user.id", userID))

	user, err := s.store.UserByID(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		return EmptyDashboard(), nil
	}
	if err != nil {
		return Dashboard{}, fmt.Errorf("find user: %w", err)
	}

	return s.dashboardFor(ctx, user)
}

func (s *Service) dashboardFor(ctx context.Context, user *User) (Dashboard, error) {
	defer s.observe("dashboard", time.Now())

	now := s.now()
	week := SevenDayWindow(now, s.loc)
	day := DayWindow(now, s.loc)
	todayStr := LocalCalendarDate(now, s.loc)
	userIDs := []int64{user.ID}

	var (
		weeklyWorkouts int
		todayTotals    NutritionTotals
		bounds         WeightBounds
		attendance     []Attendance
		upcoming       []UpcomingWorkout
		plan           []WorkoutPlanEntry
		todayCheckIns  int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		weeklyWorkouts, err = s.store.CountAttendance(gctx, AttendanceFilter{
			UserIDs: userIDs,
			From:    &week.Start,
			To:      &week.End,
		})
		if err != nil {
			return fmt.Errorf("count weekly attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		todayTotals, err = s.store.SumNutrition(gctx, user.ID, todayStr)
		if err != nil {
			return fmt.Errorf("sum nutrition: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		bounds, err = s.store.WeightBounds(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("weight bounds: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		attendance, err = s.store.ListAttendance(gctx, AttendanceFilter{
			UserIDs: userIDs,
			From:    &week.Start,
		})
		if err != nil {
			return fmt.Errorf("list weekly attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.upcomingWorkouts(gctx, user, defaultUpcomingLimit)
		return err
	})
	g.Go(func() error {
		var err error
		plan, err = s.store.WorkoutPlan(gctx, user.ID)
		if err != nil {
			return fmt.Errorf("workout plan: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		todayCheckIns, err = s.store.CountAttendance(gctx, AttendanceFilter{
			UserIDs: userIDs,
			From:    &day.Start,
			To:      &day.End,
		})
		if err != nil {
			return fmt.Errorf("count today attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, err
	}

	dashboard := Dashboard{
		CompletedWorkouts: weeklyWorkouts,
		WeeklyWorkouts:    weeklyWorkouts,
		TodayNutrition:    todayTotals,
		CaloriesLogged:    todayTotals.Calories,
		WeeklyAttendance:  bucketAttendance(attendance, week, s.loc),
		Weights: WeightTrajectory{
			Start:   bounds.Start,
			Current: bounds.Current,
			Target:  user.GoalWeight,
		},
		GoalWeight:       user.GoalWeight,
		HasGoalWeight:    hasTarget(user.GoalWeight),
		NeedsWeightEntry: bounds.Entries == 0,
		PlanToday:        planForDay(plan, WeekdayBucket(now, s.loc)),
		UpcomingWorkouts: upcoming,
		CheckedInToday:   todayCheckIns > 0,
	}
	if len(upcoming) > 0 {
		dashboard.NextWorkout = &upcoming[0]
	}

	return dashboard, nil
}

// bucketAttendance counts check-ins per day offset from the window start.
// Rows without a usable instant or outside the window are dropped.
func bucketAttendance(rows []Attendance, window Window, loc *time.Location) []int {
	buckets := make([]int, daysInWeek)
	for _, row := range rows {
		instant, ok := row.Instant(loc)
		if !ok || !window.Contains(instant) {
			continue
		}
		offset := DayOffset(window.Start, instant, loc)
		if offset < 0 || offset >= daysInWeek {
			continue
		}
		buckets[offset]++
	}
	return buckets
}

func planForDay(plan []WorkoutPlanEntry, weekday int) *WorkoutPlanEntry {
	for i := range plan {
		if plan[i].DayOfWeek == weekday {
			return &plan[i]
		}
	}
	return nil
}
