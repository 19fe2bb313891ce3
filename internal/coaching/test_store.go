package coaching

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"
)

// TestStore is an in-memory Store for tests.
type TestStore struct {
	mu sync.Mutex

	// Now stamps created rows, time.Now when nil
	Now func() time.Time
	// Err, when set, is returned by every call
	Err error

	lastID     int64
	users      map[int64]*User
	legacy     []LegacyClient
	workouts   []Workout
	attendance []Attendance
	nutrition  []Nutrition
	tracking   []Tracking
	plans      []WorkoutPlanEntry
}

func NewTestStore() *TestStore {
	return &TestStore{
		users: make(map[int64]*User),
	}
}

func (s *TestStore) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *TestStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TestStore) PutUser(u User) *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.nextID()
	} else if u.ID > s.lastID {
		s.lastID = u.ID
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now()
	}
	s.users[u.ID] = &u
	cp := u
	return &cp
}

func (s *TestStore) PutLegacyClient(c LegacyClient) LegacyClient {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ID == 0 {
		c.ID = s.nextID()
	}
	s.legacy = append(s.legacy, c)
	return c
}

func (s *TestStore) PutWorkout(w Workout) Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == 0 {
		w.ID = s.nextID()
	}
	s.workouts = append(s.workouts, w)
	return w
}

// PutAttendance stores the row as given, keeping its created_at.
func (s *TestStore) PutAttendance(a Attendance) Attendance {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == 0 {
		a.ID = s.nextID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	s.attendance = append(s.attendance, a)
	return a
}

func (s *TestStore) UserByID(_ context.Context, id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *TestStore) UsersByTrainer(_ context.Context, trainerID int64) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var users []User
	for _, u := range s.users {
		if u.Role == RoleUser && u.TrainerID != nil && *u.TrainerID == trainerID {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID > users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (s *TestStore) UsersByTelegramIDs(_ context.Context, telegramIDs []string) ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var users []User
	for _, u := range s.users {
		if u.TelegramID != nil && slices.Contains(telegramIDs, *u.TelegramID) {
			users = append(users, *u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (s *TestStore) LegacyClientsByTrainer(_ context.Context, trainerID int64) ([]LegacyClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var clients []LegacyClient
	for _, c := range s.legacy {
		if c.TrainerID != nil && *c.TrainerID == trainerID {
			clients = append(clients, c)
		}
	}
	return clients, nil
}

func (s *TestStore) LegacyClientByTelegramID(_ context.Context, telegramID string) (*LegacyClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.legacy {
		if c.TelegramID != nil && *c.TelegramID == telegramID {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *TestStore) LegacyClientByName(_ context.Context, name string) (*LegacyClient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.legacy {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *TestStore) UpcomingWorkouts(_ context.Context, clientID int64, fromDate string, limit int) ([]Workout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var workouts []Workout
	for _, w := range s.workouts {
		if w.ClientID == clientID && w.Date >= fromDate {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool { return workouts[i].Date < workouts[j].Date })
	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

func (s *TestStore) matchAttendance(filter AttendanceFilter) []Attendance {
	var rows []Attendance
	for _, a := range s.attendance {
		if !slices.Contains(filter.UserIDs, a.UserID) {
			continue
		}
		if filter.From != nil && a.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !a.CreatedAt.Before(*filter.To) {
			continue
		}
		rows = append(rows, a)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CreatedAt.Before(rows[j].CreatedAt) })
	return rows
}

func (s *TestStore) CountAttendance(_ context.Context, filter AttendanceFilter) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.matchAttendance(filter)), nil
}

func (s *TestStore) ListAttendance(_ context.Context, filter AttendanceFilter) ([]Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.matchAttendance(filter), nil
}

func (s *TestStore) LastAttendance(_ context.Context, userID int64) (*Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rows := s.matchAttendance(AttendanceFilter{UserIDs: []int64{userID}})
	if len(rows) == 0 {
		return nil, nil
	}
	last := rows[len(rows)-1]
	return &last, nil
}

func (s *TestStore) AddAttendance(_ context.Context, attendance Attendance) (*Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	attendance.ID = s.nextID()
	attendance.CreatedAt = s.now()
	s.attendance = append(s.attendance, attendance)
	return &attendance, nil
}

func (s *TestStore) SumNutrition(_ context.Context, userID int64, date string) (NutritionTotals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return NutritionTotals{}, s.Err
	}
	var totals NutritionTotals
	for _, n := range s.nutrition {
		if n.UserID == userID && n.Date == date {
			totals.Calories += n.Calories
			totals.Protein += n.Protein
		}
	}
	return totals, nil
}

func (s *TestStore) ListNutrition(_ context.Context, filter NutritionFilter) ([]Nutrition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var rows []Nutrition
	for _, n := range s.nutrition {
		if !slices.Contains(filter.UserIDs, n.UserID) {
			continue
		}
		if filter.Date != "" && n.Date != filter.Date {
			continue
		}
		if filter.FromDate != "" && n.Date < filter.FromDate {
			continue
		}
		rows = append(rows, n)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Date == rows[j].Date {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].Date > rows[j].Date
	})
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows, nil
}

func (s *TestStore) AddNutrition(_ context.Context, nutrition Nutrition) (*Nutrition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	nutrition.ID = s.nextID()
	nutrition.CreatedAt = s.now()
	s.nutrition = append(s.nutrition, nutrition)
	return &nutrition, nil
}

func (s *TestStore) WeightBounds(_ context.Context, userID int64) (WeightBounds, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return WeightBounds{}, s.Err
	}
	var (
		bounds             WeightBounds
		startDate, curDate string
	)
	for _, t := range s.tracking {
		if t.UserID != userID {
			continue
		}
		bounds.Entries++
		if t.Weight == nil {
			continue
		}
		if bounds.Start == nil || t.Date < startDate {
			startDate, bounds.Start = t.Date, t.Weight
		}
		if bounds.Current == nil || t.Date >= curDate {
			curDate, bounds.Current = t.Date, t.Weight
		}
	}
	return bounds, nil
}

func (s *TestStore) ListTracking(_ context.Context, filter TrackingFilter) ([]Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var rows []Tracking
	for _, t := range s.tracking {
		if slices.Contains(filter.UserIDs, t.UserID) {
			rows = append(rows, t)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if filter.NewestFirst {
			return rows[i].Date > rows[j].Date
		}
		if rows[i].UserID != rows[j].UserID {
			return rows[i].UserID < rows[j].UserID
		}
		return rows[i].Date < rows[j].Date
	})
	if filter.Limit > 0 && len(rows) > filter.Limit {
		rows = rows[:filter.Limit]
	}
	return rows, nil
}

func (s *TestStore) AddTracking(_ context.Context, tracking Tracking) (*Tracking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	tracking.ID = s.nextID()
	tracking.CreatedAt = s.now()
	s.tracking = append(s.tracking, tracking)
	return &tracking, nil
}

func (s *TestStore) WorkoutPlan(_ context.Context, userID int64) ([]WorkoutPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.planOf(userID), nil
}

func (s *TestStore) planOf(userID int64) []WorkoutPlanEntry {
	plan := []WorkoutPlanEntry{}
	for _, p := range s.plans {
		if p.UserID == userID {
			plan = append(plan, p)
		}
	}
	sort.Slice(plan, func(i, j int) bool { return plan[i].DayOfWeek < plan[j].DayOfWeek })
	return plan
}

func (s *TestStore) upsertPlanEntry(userID int64, day int, title string) WorkoutPlanEntry {
	for i := range s.plans {
		if s.plans[i].UserID == userID && s.plans[i].DayOfWeek == day {
			s.plans[i].Title = title
			s.plans[i].UpdatedAt = s.now()
			return s.plans[i]
		}
	}
	entry := WorkoutPlanEntry{
		ID:        s.nextID(),
		UserID:    userID,
		DayOfWeek: day,
		Title:     title,
		UpdatedAt: s.now(),
	}
	s.plans = append(s.plans, entry)
	return entry
}

func (s *TestStore) UpsertPlanEntry(_ context.Context, userID int64, day int, title string) (*WorkoutPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	entry := s.upsertPlanEntry(userID, day, title)
	return &entry, nil
}

func (s *TestStore) ReplacePlan(_ context.Context, userID int64, entries []WorkoutPlanEntry) ([]WorkoutPlanEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	days := make(map[int]bool, len(entries))
	for _, e := range entries {
		s.upsertPlanEntry(userID, e.DayOfWeek, e.Title)
		days[e.DayOfWeek] = true
	}
	kept := s.plans[:0]
	for _, p := range s.plans {
		if p.UserID != userID || days[p.DayOfWeek] {
			kept = append(kept, p)
		}
	}
	s.plans = kept
	return s.planOf(userID), nil
}

func (s *TestStore) UpdateGoalWeight(_ context.Context, userID int64, goalWeight *float64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	u.GoalWeight = goalWeight
	cp := *u
	return &cp, nil
}

func (s *TestStore) UpdateTargets(_ context.Context, userID int64, update TargetsUpdate) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	for _, field := range update.Fields {
		switch field {
		case FieldDailyCalorieTarget:
			u.DailyCalorieTarget = update.DailyCalorieTarget
		case FieldDailyProteinTarget:
			u.DailyProteinTarget = update.DailyProteinTarget
		case FieldDailyCarbTarget:
			u.DailyCarbTarget = update.DailyCarbTarget
		case FieldDailyFatTarget:
			u.DailyFatTarget = update.DailyFatTarget
		case FieldGoalWeight:
			u.GoalWeight = update.GoalWeight
		case FieldGoalDate:
			u.GoalDate = update.GoalDate
		}
	}
	cp := *u
	return &cp, nil
}
