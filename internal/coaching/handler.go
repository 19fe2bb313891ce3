package coaching

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	log "github.com/sirupsen/logrus"
)

const defaultWorkoutsLimit = 10

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coaching_test

type coachingService interface {
	Me(ctx context.Context, userID int64) (*User, error)
	Dashboard(ctx context.Context, userID int64) (Dashboard, error)
	NextWorkout(ctx context.Context, userID int64) (*UpcomingWorkout, error)
	UpcomingWorkouts(ctx context.Context, userID int64, limit int) ([]UpcomingWorkout, error)
	WorkoutPlan(ctx context.Context, userID int64) ([]WorkoutPlanEntry, error)
	UpsertPlanEntry(ctx context.Context, userID int64, day int, title string) (*WorkoutPlanEntry, error)
	SetGoalWeight(ctx context.Context, userID int64, goalWeight *float64) (*User, error)
	TrackingHistory(ctx context.Context, userID int64) ([]WeightSample, error)
	AddTracking(ctx context.Context, userID int64, input TrackingInput) (*Tracking, error)
	LogNutrition(ctx context.Context, userID int64, input NutritionInput) (*Nutrition, error)
	CheckIn(ctx context.Context, userID int64, input AttendanceInput) (*Attendance, error)
}

type OkResponse struct {
	Ok bool `json:"ok"`
}

type CreatedResponse struct {
	Ok bool  `json:"ok"`
	ID int64 `json:"id"`
}

type GoalWeightResponse struct {
	Ok         bool     `json:"ok"`
	GoalWeight *float64 `json:"goalWeight"`
}

type PlanEntryResponse struct {
	Ok    bool              `json:"ok"`
	Entry *WorkoutPlanEntry `json:"entry"`
}

type nutritionRequest struct {
	Date     string        `json:"date"`
	Calories pkg.FlexFloat `json:"calories"`
	Protein  pkg.FlexFloat `json:"protein"`
	Fat      pkg.FlexFloat `json:"fat"`
	Carbs    pkg.FlexFloat `json:"carbs"`
	Note     *string       `json:"note"`
}

func (r nutritionRequest) input() NutritionInput {
	return NutritionInput{
		Date:     r.Date,
		Calories: r.Calories.Or(0),
		Protein:  r.Protein.Or(0),
		Fat:      r.Fat.Or(0),
		Carbs:    r.Carbs.Or(0),
		Note:     r.Note,
	}
}

type trackingRequest struct {
	Date    string        `json:"date"`
	Weight  pkg.FlexFloat `json:"weight"`
	BodyFat pkg.FlexFloat `json:"body_fat"`
}

type attendanceRequest struct {
	WorkoutID pkg.FlexFloat `json:"workoutId"`
	Time      string        `json:"time"`
}

func (r attendanceRequest) input() AttendanceInput {
	input := AttendanceInput{Time: r.Time}
	if id := r.WorkoutID.Or(0); id > 0 {
		workoutID := int64(id)
		input.WorkoutID = &workoutID
	}
	return input
}

type goalWeightRequest struct {
	GoalWeight pkg.FlexFloat `json:"goalWeight"`
}

type planEntryRequest struct {
	Day   pkg.FlexFloat `json:"day"`
	Title string        `json:"title"`
}

// dayNumber returns -1 for anything but a whole number.
func dayNumber(day pkg.FlexFloat) int {
	if !day.Valid || day.Value != math.Trunc(day.Value) {
		return -1
	}
	return int(day.Value)
}

// Handler serves the self-service endpoints of an authenticated user.
type Handler struct {
	service coachingService
}

func NewHandler(service coachingService) *Handler {
	return &Handler{
		service: service,
	}
}

func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return 0, false
	}
	return id.UserID, true
}

// decodeBody tolerates an empty body, treating it as an empty object.
func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.me")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := handler.service.Me(ctx, userID)
	if errors.Is(err, ErrUserNotFound) {
		pkg.WriteError(w, http.StatusNotFound, "user_not_found")
		return
	}
	if err != nil {
		log.Errorf("me %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_user")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, user)
}

func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.dashboard")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	dashboard, err := handler.service.Dashboard(ctx, userID)
	if err != nil {
		log.Errorf("dashboard %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_dashboard")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, dashboard)
}

func (handler *Handler) HandleNextWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.nextWorkout")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	workout, err := handler.service.NextWorkout(ctx, userID)
	if err != nil {
		log.Errorf("next workout %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, workout)
}

func (handler *Handler) HandleWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.workouts")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	limit := pkg.QueryInt(r, "limit", defaultWorkoutsLimit)
	workouts, err := handler.service.UpcomingWorkouts(ctx, userID, limit)
	if err != nil {
		log.Errorf("upcoming workouts %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_workouts")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, workouts)
}

func (handler *Handler) HandleGetWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.getWorkoutPlan")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	plan, err := handler.service.WorkoutPlan(ctx, userID)
	if err != nil {
		log.Errorf("workout plan %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_plan")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, plan)
}

func (handler *Handler) HandleUpsertWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.upsertWorkoutPlan")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req planEntryRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	if !req.Day.Valid || strings.TrimSpace(req.Title) == "" {
		pkg.WriteError(w, http.StatusBadRequest, "day_and_title_required")
		return
	}

	entry, err := handler.service.UpsertPlanEntry(ctx, userID, dayNumber(req.Day), req.Title)
	if errors.Is(err, ErrInvalidDay) || errors.Is(err, ErrTitleRequired) {
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Errorf("upsert workout plan %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_save_plan")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, PlanEntryResponse{Ok: true, Entry: entry})
}

func (handler *Handler) HandleGoalWeight(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.goalWeight")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req goalWeightRequest
	if err := decodeBody(r, &req); err != nil || !req.GoalWeight.Valid {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_goal_weight")
		return
	}

	updated, err := handler.service.SetGoalWeight(ctx, userID, req.GoalWeight.Ptr())
	if err != nil {
		log.Errorf("goal weight %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_update_goal_weight")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, GoalWeightResponse{Ok: true, GoalWeight: updated.GoalWeight})
}

func (handler *Handler) HandleTrackingHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.trackingHistory")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	history, err := handler.service.TrackingHistory(ctx, userID)
	if err != nil {
		log.Errorf("tracking history %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_load_tracking")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, history)
}

func (handler *Handler) HandleAddTracking(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.addTracking")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req trackingRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	record, err := handler.service.AddTracking(ctx, userID, TrackingInput{
		Date:      req.Date,
		Weight:    req.Weight.Ptr(),
		BodyFat:   req.BodyFat.Ptr(),
		WeightSet: req.Weight.Set,
	})
	if errors.Is(err, ErrDateAndWeightRequired) {
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Errorf("add tracking %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_save_tracking")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, CreatedResponse{Ok: true, ID: record.ID})
}

func (handler *Handler) HandleNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.nutrition")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req nutritionRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	if _, err := handler.service.LogNutrition(ctx, userID, req.input()); err != nil {
		if errors.Is(err, ErrDateRequired) {
			pkg.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Errorf("log nutrition %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_save_nutrition")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, OkResponse{Ok: true})
}

func (handler *Handler) HandleAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coaching.attendance")
	defer span.End()

	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req attendanceRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	record, err := handler.service.CheckIn(ctx, userID, req.input())
	if err != nil {
		log.Errorf("check in %d: %s", userID, err)
		pkg.WriteError(w, http.StatusInternalServerError, "failed_to_save_attendance")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, CreatedResponse{Ok: true, ID: record.ID})
}
