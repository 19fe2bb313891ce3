package coaching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCalendarDate(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	instant := time.Date(2025, time.March, 11, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-11", LocalCalendarDate(instant, time.UTC))
	assert.Equal(t, "2025-03-12", LocalCalendarDate(instant, plus3))
}

func TestWeekdayBucket(t *testing.T) {
	sunday := time.Date(2025, time.March, 9, 12, 0, 0, 0, time.UTC)
	saturday := time.Date(2025, time.March, 15, 23, 59, 0, 0, time.UTC)

	assert.Equal(t, 0, WeekdayBucket(sunday, time.UTC))
	assert.Equal(t, 6, WeekdayBucket(saturday, time.UTC))
	assert.Equal(t, 3, WeekdayBucket(testNow, time.UTC))

	// late saturday UTC is already sunday further east
	assert.Equal(t, 0, WeekdayBucket(saturday, time.FixedZone("UTC+3", 3*60*60)))
}

func TestWeekdayBucket_StableThroughCalendarDate(t *testing.T) {
	zones := []*time.Location{
		time.UTC,
		time.FixedZone("UTC+3", 3*60*60),
		time.FixedZone("UTC-7", -7*60*60),
	}
	start := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for _, loc := range zones {
		for h := 0; h < 24*14; h += 5 {
			instant := start.Add(time.Duration(h) * time.Hour)
			parsed, err := time.ParseInLocation(calendarDateLayout, LocalCalendarDate(instant, loc), loc)
			require.NoError(t, err)
			assert.Equal(t, WeekdayBucket(instant, loc), WeekdayBucket(parsed, loc), "instant %s in %s", instant, loc)
		}
	}
}

func TestSevenDayWindow(t *testing.T) {
	w := SevenDayWindow(testNow, time.UTC)
	assert.Equal(t, time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), w.End)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(testNow))
	assert.False(t, w.Contains(w.End))
	assert.False(t, w.Contains(w.Start.Add(-time.Nanosecond)))
}

func TestSevenDayWindow_ZeroAnchorIsToday(t *testing.T) {
	w := SevenDayWindow(time.Time{}, time.UTC)
	assert.Equal(t, 7*24*time.Hour, w.End.Sub(w.Start))
	assert.True(t, w.Contains(time.Now()))
}

func TestTrailingWindow(t *testing.T) {
	w := TrailingWindow(testNow, 30, time.UTC)
	assert.Equal(t, time.Date(2025, time.February, 11, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, time.March, 13, 0, 0, 0, 0, time.UTC), w.End)

	single := TrailingWindow(testNow, 0, time.UTC)
	assert.Equal(t, DayWindow(testNow, time.UTC), single)
}

func TestDayOffset(t *testing.T) {
	start := time.Date(2025, time.March, 6, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DayOffset(start, start, time.UTC))
	assert.Equal(t, 6, DayOffset(start, testNow, time.UTC))
	assert.Equal(t, -2, DayOffset(start, start.Add(-25*time.Hour), time.UTC))
}

func TestParseInstant(t *testing.T) {
	plus3 := time.FixedZone("UTC+3", 3*60*60)
	cases := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"2025-03-10T18:00:00Z", time.Date(2025, time.March, 10, 18, 0, 0, 0, time.UTC), true},
		{"2025-03-10T18:00:00.123Z", time.Date(2025, time.March, 10, 18, 0, 0, 123000000, time.UTC), true},
		{"2025-03-10T18:00:00+03:00", time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC), true},
		{"2025-03-10T18:00", time.Date(2025, time.March, 10, 18, 0, 0, 0, plus3), true},
		{"2025-03-10 18:00:00", time.Date(2025, time.March, 10, 18, 0, 0, 0, plus3), true},
		{"2025-03-10", time.Date(2025, time.March, 10, 0, 0, 0, 0, plus3), true},
		{"yesterday", time.Time{}, false},
		{"", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := parseInstant(c.raw, plus3)
		assert.Equal(t, c.ok, ok, c.raw)
		if c.ok {
			assert.True(t, c.want.Equal(got), "%s: want %s, got %s", c.raw, c.want, got)
		}
	}
}

func TestSplitDateTime(t *testing.T) {
	date, clock := splitDateTime("2025-03-14T18:30:00")
	assert.Equal(t, "2025-03-14", date)
	require.NotNil(t, clock)
	assert.Equal(t, "18:30", *clock)

	date, clock = splitDateTime("2025-03-14 07:15")
	assert.Equal(t, "2025-03-14", date)
	require.NotNil(t, clock)
	assert.Equal(t, "07:15", *clock)

	date, clock = splitDateTime("2025-03-14")
	assert.Equal(t, "2025-03-14", date)
	assert.Nil(t, clock)
}

func TestAttendanceInstant(t *testing.T) {
	created := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	instant, ok := Attendance{CreatedAt: created}.Instant(time.UTC)
	assert.True(t, ok)
	assert.Equal(t, created, instant)

	instant, ok = Attendance{Time: ptr("2025-03-10T18:00:00Z"), CreatedAt: created}.Instant(time.UTC)
	assert.True(t, ok)
	assert.Equal(t, 10, instant.Day())

	_, ok = Attendance{Time: ptr("not a time"), CreatedAt: created}.Instant(time.UTC)
	assert.False(t, ok)
}
