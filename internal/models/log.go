package models

import "time"

// LogStatus is the decision recorded for one habit on one day.
type LogStatus string

const (
	StatusCompleted LogStatus = "completed"
	StatusSkipped   LogStatus = "skipped"
)

// DailyLog is one recorded decision about one habit on one calendar day.
// CreatedAt is the authoritative day the entry belongs to. Logs are created
// once and deleted on undo or reset; they are never updated in place.
//
// For a given (user, habit, day) there should be at most one log. The store
// has no uniqueness constraint; the reset path deletes same-day rows before
// reinserting, and the dashboard projector falls back to last-writer-wins
// when duplicates slip through.
type DailyLog struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	HabitID   string    `json:"habit_id"`
	Status    LogStatus `json:"status"`
	Note      *string   `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteText returns the note or "" when unset.
func (l DailyLog) NoteText() string {
	if l.Note == nil {
		return ""
	}
	return *l.Note
}

// NormalizeNote maps an empty note to nil so the store persists NULL.
func NormalizeNote(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
