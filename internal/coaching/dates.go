package coaching

import (
	"strings"
	"time"
)

const (
	calendarDateLayout = "2006-01-02"
	daysInWeek         = 7
)

// naive layouts are read in the deployment calendar
var instantLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	calendarDateLayout,
}

// Window is a half-open time range [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// LocalCalendarDate formats t as YYYY-MM-DD in the given calendar.
func LocalCalendarDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(calendarDateLayout)
}

// WeekdayBucket returns 0 for Sunday through 6 for Saturday.
func WeekdayBucket(t time.Time, loc *time.Location) int {
	return int(t.In(loc).Weekday())
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func DayWindow(anchor time.Time, loc *time.Location) Window {
	start := StartOfDay(anchor, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// TrailingWindow covers the anchor's day and the days-1 days before it.
func TrailingWindow(anchor time.Time, days int, loc *time.Location) Window {
	if days < 1 {
		days = 1
	}
	today := StartOfDay(anchor, loc)
	return Window{
		Start: today.AddDate(0, 0, -(days - 1)),
		End:   today.AddDate(0, 0, 1),
	}
}

// SevenDayWindow starts at local midnight six days before anchor.
// A zero anchor means today.
func SevenDayWindow(anchor time.Time, loc *time.Location) Window {
	if anchor.IsZero() {
		anchor = time.Now()
	}
	return TrailingWindow(anchor, daysInWeek, loc)
}

// DayOffset counts calendar days from start to t, negative when t is earlier.
func DayOffset(start, t time.Time, loc *time.Location) int {
	sy, sm, sd := start.In(loc).Date()
	ty, tm, td := t.In(loc).Date()
	from := time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC)
	to := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

func parseInstant(raw string, loc *time.Location) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// splitDateTime splits a workout date like "2025-03-01T18:30:00" or
// "2025-03-01 18:30" into its date and time parts. The ISO form is cut to HH:MM.
func splitDateTime(value string) (string, *string) {
	if date, rest, ok := strings.Cut(value, "T"); ok {
		if rest == "" {
			return date, nil
		}
		if len(rest) > 5 {
			rest = rest[:5]
		}
		return date, &rest
	}
	if date, rest, ok := strings.Cut(value, " "); ok {
		if rest, _, _ = strings.Cut(rest, " "); rest == "" {
			return date, nil
		}
		return date, &rest
	}
	return value, nil
}
