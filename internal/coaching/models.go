package coaching

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser    Role = "user"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTrainer, RoleAdmin:
		return true
	default:
		return false
	}
}

type User struct {
	ID                 int64      `json:"id"`
	TelegramID         *string    `json:"telegram_id"`
	Username           *string    `json:"username"`
	FirstName          *string    `json:"first_name"`
	LastName           *string    `json:"last_name"`
	PhotoURL           *string    `json:"photo_url"`
	Email              *string    `json:"email,omitempty"`
	PasswordHash       string     `json:"-"`
	Role               Role       `json:"role"`
	GoalWeight         *float64   `json:"goal_weight"`
	GoalDate           *time.Time `json:"goal_date"`
	DailyCalorieTarget *float64   `json:"daily_calorie_target"`
	DailyProteinTarget *float64   `json:"daily_protein_target"`
	DailyCarbTarget    *float64   `json:"daily_carb_target"`
	DailyFatTarget     *float64   `json:"daily_fat_target"`
	TrainerID          *int64     `json:"trainer_id"`
	CreatedAt          time.Time  `json:"created_at"`
}

// FullName joins the non-empty first and last names.
func (u *User) FullName() string {
	var parts []string
	for _, p := range []*string{u.FirstName, u.LastName} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func (u *User) HasMacroTargets() bool {
	return hasTarget(u.DailyCalorieTarget) || hasTarget(u.DailyProteinTarget)
}

// Attendance is one gym check-in. Time holds the client reported moment as
// sent, which is not guaranteed to be parseable.
type Attendance struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	WorkoutID *int64    `json:"workout_id"`
	Time      *string   `json:"time"`
	CreatedAt time.Time `json:"created_at"`
}

// Instant resolves when the check-in happened: the reported time when it
// parses, created_at when none was reported. ok is false for garbage.
func (a Attendance) Instant(loc *time.Location) (time.Time, bool) {
	if a.Time == nil || strings.TrimSpace(*a.Time) == "" {
		return a.CreatedAt, !a.CreatedAt.IsZero()
	}
	return parseInstant(*a.Time, loc)
}

type Nutrition struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id,omitempty"`
	Date      string    `json:"date"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Fat       float64   `json:"fat"`
	Carbs     float64   `json:"carbs"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type Tracking struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      string    `json:"date"`
	Weight    *float64  `json:"weight"`
	BodyFat   *float64  `json:"body_fat"`
	CreatedAt time.Time `json:"created_at"`
}

// TrackingPoint is the slim tracking row used by weight charts.
type TrackingPoint struct {
	UserID int64    `json:"user_id"`
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
}

type WeightSample struct {
	Date   string   `json:"date"`
	Weight *float64 `json:"weight"`
}

// WeightBounds summarizes a user's tracking history.
type WeightBounds struct {
	Start   *float64
	Current *float64
	Entries int
}

type WorkoutPlanEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	DayOfWeek int       `json:"day_of_week"`
	Title     string    `json:"title"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LegacyClient is a row of the old client table, linked to users only by
// telegram id or by full name.
type LegacyClient struct {
	ID         int64   `json:"id"`
	TrainerID  *int64  `json:"trainer_id"`
	TelegramID *string `json:"telegram_id"`
	Name       string  `json:"name"`
}

// Workout is a dated session of a legacy client. Date may embed a time
// part ("2025-03-01T18:30" or "2025-03-01 18:30").
type Workout struct {
	ID        int64   `json:"id"`
	ClientID  int64   `json:"client_id"`
	Date      string  `json:"date"`
	Title     *string `json:"title"`
	Exercises *string `json:"exercises"`
}

type UpcomingWorkout struct {
	ID    int64   `json:"id"`
	Title string  `json:"title"`
	Date  string  `json:"date"`
	Time  *string `json:"time"`
	Notes *string `json:"notes"`
}
