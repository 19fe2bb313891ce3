package coaching

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/fitcoach/backend/internal/identity"
	"github.com/fitcoach/backend/internal/telemetry/tracing"
	"github.com/fitcoach/backend/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=trainer_handler_mocks_test.go -package=coaching_test

type trainerService interface {
	HomeSummary(ctx context.Context, trainerID int64) (*HomeSummary, error)
	ClientSnapshots(ctx context.Context, trainerID int64) ([]Snapshot, error)
	ClientProfile(ctx context.Context, trainerID, clientID int64) (*ClientProfile, error)
	Monitoring(ctx context.Context, trainerID int64, rangeDays int) (*Monitoring, error)
	SetClientTargets(ctx context.Context, trainerID, clientID int64, update TargetsUpdate) (*User, error)
	AddClientNutrition(ctx context.Context, trainerID, clientID int64, input NutritionInput) (*Nutrition, error)
	ReplaceClientPlan(ctx context.Context, trainerID, clientID int64, entries []PlanEntryInput) ([]WorkoutPlanEntry, error)
	MarkClientAttendance(ctx context.Context, trainerID, clientID int64, input AttendanceInput) (*Attendance, error)
}

type TargetsResponse struct {
	Ok      bool  `json:"ok"`
	Targets *User `json:"targets"`
}

type PlanResponse struct {
	Ok   bool               `json:"ok"`
	Plan []WorkoutPlanEntry `json:"plan"`
}

var errInvalidGoalDate = errors.New("invalid_goal_date")

type targetsRequest struct {
	DailyCalorieTarget pkg.FlexFloat        `json:"daily_calorie_target"`
	DailyProteinTarget pkg.FlexFloat        `json:"daily_protein_target"`
	DailyCarbTarget    pkg.FlexFloat        `json:"daily_carb_target"`
	DailyFatTarget     pkg.FlexFloat        `json:"daily_fat_target"`
	GoalWeight         pkg.FlexFloat        `json:"goal_weight"`
	GoalDate           pkg.Optional[string] `json:"goal_date"`
}

// update keeps only the keys present in the request. Empty values clear
// the column.
func (r targetsRequest) update() (TargetsUpdate, error) {
	var update TargetsUpdate
	numeric := []struct {
		field string
		value pkg.FlexFloat
		dst   **float64
	}{
		{FieldDailyCalorieTarget, r.DailyCalorieTarget, &update.DailyCalorieTarget},
		{FieldDailyProteinTarget, r.DailyProteinTarget, &update.DailyProteinTarget},
		{FieldDailyCarbTarget, r.DailyCarbTarget, &update.DailyCarbTarget},
		{FieldDailyFatTarget, r.DailyFatTarget, &update.DailyFatTarget},
		{FieldGoalWeight, r.GoalWeight, &update.GoalWeight},
	}
	for _, n := range numeric {
		if !n.value.Set {
			continue
		}
		*n.dst = n.value.Ptr()
		update.Fields = append(update.Fields, n.field)
	}

	if r.GoalDate.Set {
		if raw := strings.TrimSpace(r.GoalDate.Value); r.GoalDate.Valid && raw != "" {
			goalDate, err := parseGoalDate(raw)
			if err != nil {
				return TargetsUpdate{}, err
			}
			update.GoalDate = &goalDate
		}
		update.Fields = append(update.Fields, FieldGoalDate)
	}

	return update, nil
}

func parseGoalDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(calendarDateLayout, raw); err == nil {
		return t, nil
	}
	return time.Time{}, errInvalidGoalDate
}

type bulkPlanRequest struct {
	Entries []planEntryRequest `json:"entries"`
}

// TrainerHandler serves the trainer area. Routes are expected behind the
// trainer role guard.
type TrainerHandler struct {
	service trainerService
}

func NewTrainerHandler(service trainerService) *TrainerHandler {
	return &TrainerHandler{
		service: service,
	}
}

func trainerAndClient(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	trainer, ok := identity.FromContext(r.Context())
	if !ok {
		pkg.WriteError(w, http.StatusUnauthorized, "no_token")
		return 0, 0, false
	}
	clientID, ok := pkg.ParseID(mux.Vars(r)["id"])
	if !ok {
		pkg.WriteError(w, http.StatusNotFound, (&AccessError{Code: CodeClientNotFound}).Error())
		return 0, 0, false
	}
	return trainer.UserID, clientID, true
}

func writeTrainerError(w http.ResponseWriter, err error, fallbackCode string) {
	var accessErr *AccessError
	if errors.As(err, &accessErr) {
		pkg.WriteError(w, accessErr.HTTPStatus(), accessErr.Error())
		return
	}
	log.Errorf("trainer request, %s: %s", fallbackCode, err)
	pkg.WriteError(w, http.StatusInternalServerError, fallbackCode)
}

func (handler *TrainerHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.home")
	defer span.End()

	trainerID, ok := callerID(w, r)
	if !ok {
		return
	}

	summary, err := handler.service.HomeSummary(ctx, trainerID)
	if err != nil {
		writeTrainerError(w, err, "failed_to_load_trainer_home")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, summary)
}

func (handler *TrainerHandler) HandleClients(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.clients")
	defer span.End()

	trainerID, ok := callerID(w, r)
	if !ok {
		return
	}

	snapshots, err := handler.service.ClientSnapshots(ctx, trainerID)
	if err != nil {
		writeTrainerError(w, err, "failed_to_load_clients")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, snapshots)
}

func (handler *TrainerHandler) HandleClientProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.clientProfile")
	defer span.End()

	trainerID, clientID, ok := trainerAndClient(w, r)
	if !ok {
		return
	}

	profile, err := handler.service.ClientProfile(ctx, trainerID, clientID)
	if err != nil {
		writeTrainerError(w, err, "failed_to_load_client")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, profile)
}

func (handler *TrainerHandler) HandleMonitoring(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.monitoring")
	defer span.End()

	trainerID, ok := callerID(w, r)
	if !ok {
		return
	}

	rangeDays := pkg.QueryInt(r, "rangeDays", DefaultMonitoringRangeDays)
	summary, err := handler.service.Monitoring(ctx, trainerID, rangeDays)
	if err != nil {
		writeTrainerError(w, err, "failed_to_load_monitoring")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, summary)
}

func (handler *TrainerHandler) HandleSetTargets(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.setTargets")
	defer span.End()

	trainerID, clientID, ok := trainerAndClient(w, r)
	if !ok {
		return
	}

	var req targetsRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}
	update, err := req.update()
	if err != nil {
		pkg.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := handler.service.SetClientTargets(ctx, trainerID, clientID, update)
	if err != nil {
		writeTrainerError(w, err, "failed_to_update_targets")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, TargetsResponse{Ok: true, Targets: updated})
}

func (handler *TrainerHandler) HandleAddNutrition(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.addNutrition")
	defer span.End()

	trainerID, clientID, ok := trainerAndClient(w, r)
	if !ok {
		return
	}

	var req nutritionRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	if _, err := handler.service.AddClientNutrition(ctx, trainerID, clientID, req.input()); err != nil {
		if errors.Is(err, ErrDateRequired) {
			pkg.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeTrainerError(w, err, "failed_to_save_nutrition")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, OkResponse{Ok: true})
}

func (handler *TrainerHandler) HandleBulkPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.bulkPlan")
	defer span.End()

	trainerID, clientID, ok := trainerAndClient(w, r)
	if !ok {
		return
	}

	var req bulkPlanRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	entries := make([]PlanEntryInput, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, PlanEntryInput{Day: dayNumber(e.Day), Title: e.Title})
	}

	plan, err := handler.service.ReplaceClientPlan(ctx, trainerID, clientID, entries)
	if err != nil {
		writeTrainerError(w, err, "failed_to_save_plan")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, PlanResponse{Ok: true, Plan: plan})
}

func (handler *TrainerHandler) HandleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.trainer.markAttendance")
	defer span.End()

	trainerID, clientID, ok := trainerAndClient(w, r)
	if !ok {
		return
	}

	var req attendanceRequest
	if err := decodeBody(r, &req); err != nil {
		pkg.WriteError(w, http.StatusBadRequest, "invalid_body")
		return
	}

	record, err := handler.service.MarkClientAttendance(ctx, trainerID, clientID, req.input())
	if err != nil {
		writeTrainerError(w, err, "failed_to_save_attendance")
		return
	}

	pkg.WriteJSON(w, http.StatusOK, CreatedResponse{Ok: true, ID: record.ID})
}
