package coaching

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/fitcoach/backend/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const DefaultMonitoringRangeDays = 30

type RankingEntry struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	CurrentWeight *float64 `json:"currentWeight"`
	Goal          *float64 `json:"goal"`
	Delta         float64  `json:"delta"`
}

// Monitoring is the cross-client rollup of a trainer's roster.
type Monitoring struct {
	WorkoutsByWeekday []int           `json:"workoutsByWeekday"`
	CalorieAdherence  *float64        `json:"calorieAdherence"`
	WeightDynamics    []TrackingPoint `json:"weightDynamics"`
	Ranking           []RankingEntry  `json:"ranking"`
}

func emptyMonitoring() *Monitoring {
	return &Monitoring{
		WorkoutsByWeekday: make([]int, daysInWeek),
		WeightDynamics:    []TrackingPoint{},
		Ranking:           []RankingEntry{},
	}
}

// Monitoring aggregates the trainer's roster over the last rangeDays days.
// Each row kind is read once for the whole roster.
func (s *Service) Monitoring(ctx context.Context, trainerID int64, rangeDays int) (_ *Monitoring, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.coaching.monitoring")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	defer s.observe("monitoring", time.Now())

	if rangeDays <= 0 {
		rangeDays = DefaultMonitoringRangeDays
	}
	span.SetAttributes(
		attribute.Int64("trainer.id", trainerID),
		attribute.Int("range.days", rangeDays),
	)

	trainer, err := s.EnsureTrainer(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	clients, err := s.roster.Resolve(ctx, trainer.ID)
	if err != nil {
		return nil, err
	}
	if len(clients) == 0 {
		return emptyMonitoring(), nil
	}

	clientIDs := make([]int64, 0, len(clients))
	for _, c := range clients {
		clientIDs = append(clientIDs, c.ID)
	}
	window := TrailingWindow(s.now(), rangeDays, s.loc)

	var (
		attendance []Attendance
		nutrition  []Nutrition
		tracking   []Tracking
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		attendance, err = s.store.ListAttendance(gctx, AttendanceFilter{
			UserIDs: clientIDs,
			From:    &window.Start,
		})
		if err != nil {
			return fmt.Errorf("list attendance: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		nutrition, err = s.store.ListNutrition(gctx, NutritionFilter{
			UserIDs:  clientIDs,
			FromDate: LocalCalendarDate(window.Start, s.loc),
		})
		if err != nil {
			return fmt.Errorf("list nutrition: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		tracking, err = s.store.ListTracking(gctx, TrackingFilter{UserIDs: clientIDs})
		if err != nil {
			return fmt.Errorf("list tracking: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarizeMonitoring(clients, attendance, nutrition, tracking, s.loc), nil
}

func summarizeMonitoring(clients []User, attendance []Attendance, nutrition []Nutrition, tracking []Tracking, loc *time.Location) *Monitoring {
	m := emptyMonitoring()

	for _, row := range attendance {
		m.WorkoutsByWeekday[WeekdayBucket(row.CreatedAt, loc)]++
	}

	m.CalorieAdherence = calorieAdherence(clients, nutrition)

	latestWeight := make(map[int64]float64, len(clients))
	for _, row := range tracking {
		m.WeightDynamics = append(m.WeightDynamics, TrackingPoint{
			UserID: row.UserID,
			Date:   row.Date,
			Weight: row.Weight,
		})
		if row.Weight != nil {
			latestWeight[row.UserID] = *row.Weight
		}
	}

	m.Ranking = rankByDelta(clients, latestWeight)
	return m
}

type clientDay struct {
	userID int64
	date   string
}

// calorieAdherence is the share of classified client-days within target,
// as a percentage rounded to one decimal. nil when no day was classified.
func calorieAdherence(clients []User, nutrition []Nutrition) *float64 {
	byID := make(map[int64]*User, len(clients))
	for i := range clients {
		byID[clients[i].ID] = &clients[i]
	}

	totals := make(map[clientDay]NutritionTotals)
	for _, row := range nutrition {
		key := clientDay{userID: row.UserID, date: row.Date}
		t := totals[key]
		t.Calories += row.Calories
		t.Protein += row.Protein
		totals[key] = t
	}

	var hits, classified int
	for key, t := range totals {
		client, ok := byID[key.userID]
		if !ok || !client.HasMacroTargets() {
			continue
		}
		classified++
		status := ClassifyNutrition(t.Calories, client.DailyCalorieTarget, t.Protein, client.DailyProteinTarget)
		if status == StatusWithinTarget {
			hits++
		}
	}

	if classified == 0 {
		return nil
	}
	pct := round1(float64(hits) / float64(classified) * 100)
	return &pct
}

// rankByDelta orders clients by how far their latest weight is from the goal,
// largest absolute deviation first. Clients lacking either value are left out.
func rankByDelta(clients []User, latestWeight map[int64]float64) []RankingEntry {
	ranking := make([]RankingEntry, 0, len(clients))
	for _, client := range clients {
		weight, ok := latestWeight[client.ID]
		if !ok {
			continue
		}
		delta := WeightDelta(&weight, client.GoalWeight)
		if delta == nil {
			continue
		}
		current := weight
		ranking = append(ranking, RankingEntry{
			ID:            client.ID,
			Name:          DisplayName(&client),
			CurrentWeight: &current,
			Goal:          client.GoalWeight,
			Delta:         *delta,
		})
	}

	sort.SliceStable(ranking, func(i, j int) bool {
		return math.Abs(ranking[i].Delta) > math.Abs(ranking[j].Delta)
	})
	return ranking
}
