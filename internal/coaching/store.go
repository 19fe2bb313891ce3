package coaching

import (
	"context"
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user_not_found")

type AttendanceFilter struct {
	UserIDs []int64
	// From and To bound created_at, To is exclusive
	From *time.Time
	To   *time.Time
}

type NutritionFilter struct {
	UserIDs []int64
	// Date selects one calendar day, FromDate an inclusive lower bound
	Date     string
	FromDate string
	Limit    int
}

type TrackingFilter struct {
	UserIDs []int64
	// NewestFirst orders by date desc, otherwise user_id asc, date asc
	NewestFirst bool
	Limit       int
}

type TargetsUpdate struct {
	DailyCalorieTarget *float64
	DailyProteinTarget *float64
	DailyCarbTarget    *float64
	DailyFatTarget     *float64
	GoalWeight         *float64
	GoalDate           *time.Time
	// Fields lists the columns to write, others stay untouched
	Fields []string
}

const (
	FieldDailyCalorieTarget = "daily_calorie_target"
	FieldDailyProteinTarget = "daily_protein_target"
	FieldDailyCarbTarget    = "daily_carb_target"
	FieldDailyFatTarget     = "daily_fat_target"
	FieldGoalWeight         = "goal_weight"
	FieldGoalDate           = "goal_date"
)

// Store is the row store the coaching service reads and writes.
type Store interface {
	UserByID(ctx context.Context, id int64) (*User, error)
	UsersByTrainer(ctx context.Context, trainerID int64) ([]User, error)
	UsersByTelegramIDs(ctx context.Context, telegramIDs []string) ([]User, error)

	LegacyClientsByTrainer(ctx context.Context, trainerID int64) ([]LegacyClient, error)
	LegacyClientByTelegramID(ctx context.Context, telegramID string) (*LegacyClient, error)
	LegacyClientByName(ctx context.Context, name string) (*LegacyClient, error)
	UpcomingWorkouts(ctx context.Context, clientID int64, fromDate string, limit int) ([]Workout, error)

	CountAttendance(ctx context.Context, filter AttendanceFilter) (int, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
	LastAttendance(ctx context.Context, userID int64) (*Attendance, error)
	AddAttendance(ctx context.Context, attendance Attendance) (*Attendance, error)

	SumNutrition(ctx context.Context, userID int64, date string) (NutritionTotals, error)
	ListNutrition(ctx context.Context, filter NutritionFilter) ([]Nutrition, error)
	AddNutrition(ctx context.Context, nutrition Nutrition) (*Nutrition, error)

	WeightBounds(ctx context.Context, userID int64) (WeightBounds, error)
	ListTracking(ctx context.Context, filter TrackingFilter) ([]Tracking, error)
	AddTracking(ctx context.Context, tracking Tracking) (*Tracking, error)

	WorkoutPlan(ctx context.Context, userID int64) ([]WorkoutPlanEntry, error)
	UpsertPlanEntry(ctx context.Context, userID int64, day int, title string) (*WorkoutPlanEntry, error)
	ReplacePlan(ctx context.Context, userID int64, entries []WorkoutPlanEntry) ([]WorkoutPlanEntry, error)

	UpdateGoalWeight(ctx context.Context, userID int64, goalWeight *float64) (*User, error)
	UpdateTargets(ctx context.Context, userID int64, update TargetsUpdate) (*User, error)
}
