package stats

import (
	"time"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/models"
)

// DayCount is one bucket of the trailing 7-day histogram.
type DayCount struct {
	Day     string // weekday abbreviation, e.g. "Mon"
	Date    string // local calendar day, YYYY-MM-DD
	Count   int    // completed logs on that day
	IsToday bool
}

// Summary bundles the read-side statistics shown on the stats screen.
type Summary struct {
	Streak         int
	TotalCompleted int
	Weekly         []DayCount // oldest to newest, inclusive of today
}

// dayKey reduces an instant to its local calendar day string. All day
// comparisons here use the viewer's local date, not UTC; events near midnight
// may land on a different day than the server-side UTC filter would place
// them. That mismatch is documented behavior.
func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(constants.DateFormat)
}

// ActiveDays reduces logs to the set of distinct local calendar days that
// have at least one completed log.
func ActiveDays(logs []models.DailyLog, loc *time.Location) map[string]struct{} {
	days := make(map[string]struct{})
	for _, l := range logs {
		if l.Status != models.StatusCompleted {
			continue
		}
		days[dayKey(l.CreatedAt, loc)] = struct{}{}
	}
	return days
}

// Streak returns the current consecutive-day streak ending at today or
// yesterday. A day counts when it has at least one completed log; the first
// gap stops the scan. No grace day.
func Streak(activeDays map[string]struct{}, today time.Time, loc *time.Location) int {
	if len(activeDays) == 0 {
		return 0
	}

	streak := 0
	cursor := today
	if _, ok := activeDays[dayKey(today, loc)]; ok {
		streak = 1
		cursor = today.AddDate(0, 0, -1)
	} else {
		cursor = today.AddDate(0, 0, -1)
		if _, ok := activeDays[dayKey(cursor, loc)]; !ok {
			return 0
		}
		streak = 1
		cursor = cursor.AddDate(0, 0, -1)
	}

	for {
		if _, ok := activeDays[dayKey(cursor, loc)]; !ok {
			break
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return streak
}

// Weekly builds the trailing 7-day histogram, oldest to newest, inclusive of
// today.
func Weekly(logs []models.DailyLog, now time.Time, loc *time.Location) []DayCount {
	counts := make(map[string]int)
	for _, l := range logs {
		if l.Status != models.StatusCompleted {
			continue
		}
		counts[dayKey(l.CreatedAt, loc)]++
	}

	todayKey := dayKey(now, loc)
	week := make([]DayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		key := dayKey(d, loc)
		week = append(week, DayCount{
			Day:     d.In(loc).Weekday().String()[:3],
			Date:    key,
			Count:   counts[key],
			IsToday: key == todayKey,
		})
	}
	return week
}

// TotalCompleted is the lifetime completed-log count.
func TotalCompleted(logs []models.DailyLog) int {
	n := 0
	for _, l := range logs {
		if l.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

// Calculate computes the full summary from a user's log history. Any habit
// counts toward the streak; skipped logs never do.
func Calculate(logs []models.DailyLog, now time.Time, loc *time.Location) Summary {
	return Summary{
		Streak:         Streak(ActiveDays(logs, loc), now, loc),
		TotalCompleted: TotalCompleted(logs),
		Weekly:         Weekly(logs, now, loc),
	}
}
