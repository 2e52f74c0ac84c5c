package review

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/nightly/internal/models"
)

// State is the review session's position in its lifecycle.
type State int

const (
	StateIdle State = iota
	StateReviewing
	StateAwaitingNote
	StateCompleted
	StateSaving
	StateSaved
	StateSaveFailed
)

// ErrNothingToReview is returned when a session is started with no habits.
// The caller gates start on the dashboard's pending flag; this is the
// engine-side backstop.
var ErrNothingToReview = errors.New("no habits to review")

// Result is one accumulated decision. The title is snapshotted at decision
// time so a rename mid-session cannot change what was reviewed.
type Result struct {
	HabitID string
	Title   string
	Status  models.LogStatus
	Note    string
}

// LogInserter is the single store capability the session needs to persist
// itself.
type LogInserter interface {
	InsertLogs(logs []models.DailyLog) error
}

// Overridable for tests.
var (
	timeNow = time.Now
	newID   = func() string { return uuid.New().String() }
)

// Session walks an ordered habit list one decision at a time and persists
// the whole day's results as a single batch. Results are discarded with the
// session after a successful save; on failure they are retained so the user
// never redoes the swipe sequence.
type Session struct {
	habits   []models.Habit
	index    int
	results  []Result
	pending  *models.Habit
	state    State
	hasSaved bool
	saveErr  error
}

// NewSession starts a review over the given habits.
func NewSession(habits []models.Habit) (*Session, error) {
	if len(habits) == 0 {
		return nil, ErrNothingToReview
	}
	return &Session{habits: habits, state: StateReviewing}, nil
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Current returns the habit under review, or false once the walk is done.
func (s *Session) Current() (models.Habit, bool) {
	if s.index >= len(s.habits) {
		return models.Habit{}, false
	}
	return s.habits[s.index], true
}

// Pending returns the habit awaiting a note after a left decision.
func (s *Session) Pending() (models.Habit, bool) {
	if s.pending == nil {
		return models.Habit{}, false
	}
	return *s.pending, true
}

// Progress reports how many decisions have been made out of the total.
func (s *Session) Progress() (done, total int) {
	return s.index, len(s.habits)
}

// Results returns a copy of the accumulated decisions.
func (s *Session) Results() []Result {
	out := make([]Result, len(s.results))
	copy(out, s.results)
	return out
}

// SaveError returns the error from the last failed save attempt, if any.
func (s *Session) SaveError() error { return s.saveErr }

// MarkCompleted records a "right" decision for the current habit and
// advances. Ignored outside the reviewing state.
func (s *Session) MarkCompleted() {
	if s.state != StateReviewing {
		return
	}
	h, ok := s.Current()
	if !ok {
		return
	}
	s.results = append(s.results, Result{HabitID: h.ID, Title: h.Title, Status: models.StatusCompleted})
	s.advance()
}

// MarkSkipped records a "left" decision: the habit is parked until a note is
// submitted (or explicitly skipped). Ignored outside the reviewing state.
func (s *Session) MarkSkipped() {
	if s.state != StateReviewing {
		return
	}
	h, ok := s.Current()
	if !ok {
		return
	}
	s.pending = &h
	s.state = StateAwaitingNote
}

// SubmitNote completes a left decision with the given note. An empty note is
// valid and equivalent to skipping the note prompt.
func (s *Session) SubmitNote(note string) {
	if s.state != StateAwaitingNote || s.pending == nil {
		return
	}
	s.results = append(s.results, Result{HabitID: s.pending.ID, Title: s.pending.Title, Status: models.StatusSkipped, Note: note})
	s.pending = nil
	s.state = StateReviewing
	s.advance()
}

// SkipNote completes a left decision without a note.
func (s *Session) SkipNote() { s.SubmitNote("") }

func (s *Session) advance() {
	s.index++
	if s.index >= len(s.habits) {
		s.state = StateCompleted
	}
}

// Save persists the session's results as one batch insert. Every log in the
// batch shares a single save-time timestamp, not per-swipe times. A session
// saves at most once: after a success further calls are no-ops. On failure
// the session moves to StateSaveFailed with results intact, and Save may be
// called again to retry the same batch; no cleanup of possibly-inserted rows
// is attempted.
func (s *Session) Save(store LogInserter, userID string) error {
	if s.hasSaved {
		return nil
	}
	if s.state != StateCompleted && s.state != StateSaveFailed {
		return nil
	}

	s.state = StateSaving
	now := timeNow().UTC()
	logs := make([]models.DailyLog, 0, len(s.results))
	for _, r := range s.results {
		logs = append(logs, models.DailyLog{
			ID:        newID(),
			UserID:    userID,
			HabitID:   r.HabitID,
			Status:    r.Status,
			Note:      models.NormalizeNote(r.Note),
			CreatedAt: now,
		})
	}

	if err := store.InsertLogs(logs); err != nil {
		s.state = StateSaveFailed
		s.saveErr = err
		return err
	}

	s.hasSaved = true
	s.saveErr = nil
	s.state = StateSaved
	return nil
}
