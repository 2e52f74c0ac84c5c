package dashboard

import (
	"github.com/julianstephens/nightly/internal/models"
)

// Status tags each habit's state for today.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

// HabitStatus pairs a habit with its derived status and, for skipped habits,
// the note the user left.
type HabitStatus struct {
	Habit  models.Habit
	Status Status
	Note   string
}

// Projection is the dashboard's view of today: per-habit status rows, the
// aggregate completion percentage, and whether a review can be started.
type Projection struct {
	Items          []HabitStatus
	CompletedCount int
	TotalCount     int
	Percentage     float64
	HasPending     bool
}

// Project combines the active habit list with today's logs. Logs match
// habits by habit id; when duplicate same-day logs exist (the store has no
// uniqueness guarantee) the most recent one wins.
func Project(habits []models.Habit, todayLogs []models.DailyLog) Projection {
	latest := make(map[string]models.DailyLog, len(todayLogs))
	for _, l := range todayLogs {
		prev, ok := latest[l.HabitID]
		if !ok || !l.CreatedAt.Before(prev.CreatedAt) {
			latest[l.HabitID] = l
		}
	}

	p := Projection{TotalCount: len(habits)}
	for _, h := range habits {
		item := HabitStatus{Habit: h, Status: StatusPending}
		if l, ok := latest[h.ID]; ok {
			switch l.Status {
			case models.StatusCompleted:
				item.Status = StatusCompleted
				p.CompletedCount++
			case models.StatusSkipped:
				item.Status = StatusSkipped
				item.Note = l.NoteText()
			}
		} else {
			p.HasPending = true
		}
		p.Items = append(p.Items, item)
	}

	if p.TotalCount > 0 {
		p.Percentage = float64(p.CompletedCount) / float64(p.TotalCount) * 100
	}
	return p
}
