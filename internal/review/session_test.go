package review

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

type fakeStore struct {
	inserts [][]models.DailyLog
	err     error
}

func (f *fakeStore) InsertLogs(logs []models.DailyLog) error {
	if f.err != nil {
		return f.err
	}
	f.inserts = append(f.inserts, logs)
	return nil
}

func testHabits() []models.Habit {
	return []models.Habit{
		{ID: "h1", Title: "Read"},
		{ID: "h2", Title: "Exercise"},
		{ID: "h3", Title: "Meditate"},
	}
}

func TestNewSessionEmpty(t *testing.T) {
	if _, err := NewSession(nil); !errors.Is(err, ErrNothingToReview) {
		t.Errorf("expected ErrNothingToReview, got %v", err)
	}
}

func TestSessionWalk(t *testing.T) {
	s, err := NewSession(testHabits())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if s.State() != StateReviewing {
		t.Fatalf("state = %v, want reviewing", s.State())
	}

	h, ok := s.Current()
	if !ok || h.ID != "h1" {
		t.Fatalf("current = %v %v, want h1", h, ok)
	}

	s.MarkCompleted()

	// Left decision parks the habit until a note arrives.
	s.MarkSkipped()
	if s.State() != StateAwaitingNote {
		t.Fatalf("state = %v, want awaiting note", s.State())
	}
	if p, ok := s.Pending(); !ok || p.ID != "h2" {
		t.Fatalf("pending = %v %v, want h2", p, ok)
	}
	// Decisions are ignored while a note is pending.
	s.MarkCompleted()
	if done, _ := s.Progress(); done != 1 {
		t.Fatalf("progress advanced while awaiting note")
	}
	s.SubmitNote("too busy")

	s.MarkSkipped()
	s.SkipNote()

	if s.State() != StateCompleted {
		t.Fatalf("state = %v, want completed", s.State())
	}

	results := s.Results()
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3", len(results))
	}
	want := []Result{
		{HabitID: "h1", Title: "Read", Status: models.StatusCompleted},
		{HabitID: "h2", Title: "Exercise", Status: models.StatusSkipped, Note: "too busy"},
		{HabitID: "h3", Title: "Meditate", Status: models.StatusSkipped, Note: ""},
	}
	for i, r := range results {
		if r != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, r, want[i])
		}
	}
}

func completeAll(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(testHabits())
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.MarkCompleted()
	s.MarkCompleted()
	s.MarkSkipped()
	s.SubmitNote("")
	return s
}

func TestSaveBatch(t *testing.T) {
	fixed := time.Date(2024, 5, 10, 22, 30, 0, 0, time.UTC)
	origNow := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = origNow }()

	s := completeAll(t)
	store := &fakeStore{}
	if err := s.Save(store, "user-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if s.State() != StateSaved {
		t.Fatalf("state = %v, want saved", s.State())
	}
	if len(store.inserts) != 1 {
		t.Fatalf("insert calls = %d, want 1", len(store.inserts))
	}

	batch := store.inserts[0]
	if len(batch) != 3 {
		t.Fatalf("batch size = %d, want 3", len(batch))
	}
	for _, l := range batch {
		if l.UserID != "user-1" {
			t.Errorf("log user = %s, want user-1", l.UserID)
		}
		if !l.CreatedAt.Equal(fixed) {
			t.Errorf("log timestamp = %v, all entries must share the save instant", l.CreatedAt)
		}
		if l.ID == "" {
			t.Error("log missing id")
		}
	}
	// Empty notes persist as NULL.
	if batch[2].Note != nil {
		t.Errorf("empty note = %v, want nil", *batch[2].Note)
	}
	if batch[0].Status != models.StatusCompleted || batch[2].Status != models.StatusSkipped {
		t.Error("batch statuses do not match decisions")
	}
}

func TestSaveIdempotent(t *testing.T) {
	s := completeAll(t)
	store := &fakeStore{}
	if err := s.Save(store, "user-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(store, "user-1"); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if len(store.inserts) != 1 {
		t.Errorf("insert calls = %d, a session must persist exactly once", len(store.inserts))
	}
}

func TestSaveFailureRetainsResultsAndRetries(t *testing.T) {
	s := completeAll(t)
	store := &fakeStore{err: errors.New("network down")}

	if err := s.Save(store, "user-1"); err == nil {
		t.Fatal("expected save error")
	}
	if s.State() != StateSaveFailed {
		t.Fatalf("state = %v, want save-failed", s.State())
	}
	if s.SaveError() == nil {
		t.Error("save error not retained")
	}
	if len(s.Results()) != 3 {
		t.Error("results must survive a failed save so the user need not redo the review")
	}

	// Retry the same batch once the store recovers.
	store.err = nil
	if err := s.Save(store, "user-1"); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if s.State() != StateSaved {
		t.Fatalf("state = %v after retry, want saved", s.State())
	}
	if len(store.inserts) != 1 {
		t.Errorf("insert calls = %d after retry, want 1", len(store.inserts))
	}
}

func TestSaveBeforeCompletionIsIgnored(t *testing.T) {
	s, _ := NewSession(testHabits())
	s.MarkCompleted()
	store := &fakeStore{}
	if err := s.Save(store, "user-1"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(store.inserts) != 0 {
		t.Error("an unfinished session must not persist anything")
	}
}
