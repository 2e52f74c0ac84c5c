package history

import (
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/models"
)

// Mode selects the history filter window.
type Mode string

const (
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// Entry is one log resolved against the habit list. Known is false when the
// habit has been deleted or is otherwise missing; the placeholder habit keeps
// the aggregation rendering instead of failing.
type Entry struct {
	Log   models.DailyLog
	Habit models.Habit
	Known bool
}

// DayGroup is all of one local calendar day's entries plus its completion
// ratio.
type DayGroup struct {
	Date      string // YYYY-MM-DD
	Entries   []Entry
	Completed int
	Total     int
}

// Ratio is completed/total for the day. A group always has at least one
// entry, but guard anyway.
func (g DayGroup) Ratio() float64 {
	if g.Total == 0 {
		return 0
	}
	return float64(g.Completed) / float64(g.Total)
}

// Percent is the ratio rounded to a whole percentage.
func (g DayGroup) Percent() int {
	return int(g.Ratio()*100 + 0.5)
}

// placeholder stands in for logs whose habit no longer exists.
var placeholder = models.Habit{Title: "Unknown habit", Icon: "•"}

// Aggregate filters logs to the selected period, groups them by local
// calendar day, and resolves each log's habit. The anchor is a YYYY-MM string
// in month mode or the Monday date string (YYYY-MM-DD) in week mode. Groups
// come back newest-first; an empty period yields an empty slice.
func Aggregate(logs []models.DailyLog, habits []models.Habit, mode Mode, anchor string, loc *time.Location) []DayGroup {
	habitMap := make(map[string]models.Habit, len(habits))
	for _, h := range habits {
		habitMap[h.ID] = h
	}

	var weekStart, weekEnd string
	if mode == ModeWeek {
		start, err := time.ParseInLocation(constants.DateFormat, anchor, loc)
		if err != nil {
			return nil
		}
		weekStart = start.Format(constants.DateFormat)
		weekEnd = start.AddDate(0, 0, 6).Format(constants.DateFormat)
	}

	groups := make(map[string]*DayGroup)
	var order []string

	for _, l := range logs {
		day := l.CreatedAt.In(loc).Format(constants.DateFormat)

		switch mode {
		case ModeMonth:
			if !strings.HasPrefix(day, anchor) {
				continue
			}
		case ModeWeek:
			if day < weekStart || day > weekEnd {
				continue
			}
		default:
			continue
		}

		habit, ok := habitMap[l.HabitID]
		if !ok {
			habit = placeholder
		}

		g, exists := groups[day]
		if !exists {
			g = &DayGroup{Date: day}
			groups[day] = g
			order = append(order, day)
		}
		g.Entries = append(g.Entries, Entry{Log: l, Habit: habit, Known: ok})
		g.Total++
		if l.Status == models.StatusCompleted {
			g.Completed++
		}
	}

	out := make([]DayGroup, 0, len(order))
	for _, day := range order {
		out = append(out, *groups[day])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// AnchorFor returns the default anchor for a mode: the current local month in
// month mode, the Monday of the current local week in week mode.
func AnchorFor(mode Mode, now time.Time, loc *time.Location) string {
	if mode == ModeWeek {
		return MondayOf(now, loc)
	}
	return now.In(loc).Format(constants.MonthFormat)
}

// MondayOf returns the date string of the Monday of now's local week, the
// default week anchor.
func MondayOf(now time.Time, loc *time.Location) string {
	n := now.In(loc)
	offset := int(n.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	return n.AddDate(0, 0, -offset).Format(constants.DateFormat)
}
