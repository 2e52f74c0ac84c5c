package history

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

func day(dateStr string, hour int) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func testHabits() []models.Habit {
	return []models.Habit{
		{ID: "h1", Title: "Read", Icon: "📖"},
		{ID: "h2", Title: "Exercise"},
	}
}

func TestAggregateMonth(t *testing.T) {
	logs := []models.DailyLog{
		// newest first, as the store returns them
		{ID: "l4", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-03", 21)},
		{ID: "l3", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-01", 22)},
		{ID: "l2", HabitID: "h2", Status: models.StatusCompleted, CreatedAt: day("2024-05-01", 22)},
		{ID: "l1", HabitID: "h2", Status: models.StatusSkipped, CreatedAt: day("2024-05-01", 21)},
		{ID: "l0", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-04-28", 21)},
	}

	groups := Aggregate(logs, testHabits(), ModeMonth, "2024-05", time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}

	// Newest first.
	if groups[0].Date != "2024-05-03" || groups[1].Date != "2024-05-01" {
		t.Errorf("group order = [%s, %s], want newest first", groups[0].Date, groups[1].Date)
	}

	if got := groups[0].Ratio(); got != 1.0 {
		t.Errorf("2024-05-03 ratio = %v, want 1.0", got)
	}
	if got := groups[1].Ratio(); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("2024-05-01 ratio = %v, want 0.67", got)
	}
	if groups[1].Percent() != 67 {
		t.Errorf("2024-05-01 percent = %d, want 67", groups[1].Percent())
	}
	if len(groups[1].Entries) != 3 {
		t.Errorf("2024-05-01 entries = %d, want 3", len(groups[1].Entries))
	}
}

func TestAggregateWeek(t *testing.T) {
	logs := []models.DailyLog{
		{ID: "l1", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-06", 8)},  // Monday
		{ID: "l2", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-12", 23)}, // Sunday, inclusive
		{ID: "l3", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-13", 0)},  // next Monday, excluded
		{ID: "l4", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-05", 23)}, // Sunday before, excluded
	}

	groups := Aggregate(logs, testHabits(), ModeWeek, "2024-05-06", time.UTC)
	if len(groups) != 2 {
		t.Fatalf("expected 2 day groups, got %d", len(groups))
	}
	if groups[0].Date != "2024-05-12" || groups[1].Date != "2024-05-06" {
		t.Errorf("unexpected groups: %s, %s", groups[0].Date, groups[1].Date)
	}
}

func TestAggregateUnknownHabit(t *testing.T) {
	logs := []models.DailyLog{
		{ID: "l1", HabitID: "gone", Status: models.StatusCompleted, CreatedAt: day("2024-05-01", 10)},
	}

	groups := Aggregate(logs, testHabits(), ModeMonth, "2024-05", time.UTC)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	e := groups[0].Entries[0]
	if e.Known {
		t.Error("entry for deleted habit should not be marked known")
	}
	if e.Habit.Title != "Unknown habit" || e.Habit.Icon != "•" {
		t.Errorf("expected placeholder habit, got %+v", e.Habit)
	}
}

func TestAggregateEmptyPeriod(t *testing.T) {
	logs := []models.DailyLog{
		{ID: "l1", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-01", 10)},
	}
	groups := Aggregate(logs, testHabits(), ModeMonth, "2024-06", time.UTC)
	if len(groups) != 0 {
		t.Errorf("expected empty result for empty period, got %d groups", len(groups))
	}
}

func TestAggregateLocalDayGrouping(t *testing.T) {
	// 2024-05-02T03:00Z is still 2024-05-01 in UTC-5; the local calendar day
	// decides the group, not the UTC instant.
	loc := time.FixedZone("UTC-5", -5*3600)
	logs := []models.DailyLog{
		{ID: "l1", HabitID: "h1", Status: models.StatusCompleted, CreatedAt: day("2024-05-02", 3)},
	}
	groups := Aggregate(logs, testHabits(), ModeMonth, "2024-05", loc)
	if len(groups) != 1 || groups[0].Date != "2024-05-01" {
		t.Fatalf("expected one group on local day 2024-05-01, got %+v", groups)
	}
}

func TestMondayOf(t *testing.T) {
	tests := []struct {
		now  string
		want string
	}{
		{"2024-05-10", "2024-05-06"}, // Friday
		{"2024-05-06", "2024-05-06"}, // Monday
		{"2024-05-12", "2024-05-06"}, // Sunday belongs to the preceding Monday
	}
	for _, tc := range tests {
		now := day(tc.now, 12)
		if got := MondayOf(now, time.UTC); got != tc.want {
			t.Errorf("MondayOf(%s) = %s, want %s", tc.now, got, tc.want)
		}
	}
}

func TestAnchorFor(t *testing.T) {
	now := day("2024-05-10", 12)
	if got := AnchorFor(ModeMonth, now, time.UTC); got != "2024-05" {
		t.Errorf("month anchor = %s, want 2024-05", got)
	}
	if got := AnchorFor(ModeWeek, now, time.UTC); got != "2024-05-06" {
		t.Errorf("week anchor = %s, want 2024-05-06", got)
	}
}
