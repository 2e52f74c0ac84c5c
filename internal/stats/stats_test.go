package stats

import (
	"testing"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

func mkCompleted(t time.Time) models.DailyLog {
	return models.DailyLog{ID: "x", Status: models.StatusCompleted, CreatedAt: t}
}

func TestStreak(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 5, 10, 12, 0, 0, 0, loc)
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }

	tests := []struct {
		name    string
		offsets []int
		want    int
	}{
		{"no logs", nil, 0},
		{"today only", []int{0}, 1},
		{"three day run ending today", []int{0, -1, -2}, 3},
		{"run ending yesterday", []int{-1, -2}, 2},
		{"gap before today", []int{-2}, 0},
		{"gap inside run", []int{0, -1, -3, -4}, 2},
		{"yesterday only", []int{-1}, 1},
		{"long run", []int{0, -1, -2, -3, -4, -5, -6, -7}, 8},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var logs []models.DailyLog
			for _, off := range tc.offsets {
				logs = append(logs, mkCompleted(day(off)))
			}
			got := Streak(ActiveDays(logs, loc), today, loc)
			if got != tc.want {
				t.Errorf("streak = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestStreakIgnoresSkippedLogs(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 5, 10, 12, 0, 0, 0, loc)

	logs := []models.DailyLog{
		{Status: models.StatusSkipped, CreatedAt: today},
		{Status: models.StatusCompleted, CreatedAt: today.AddDate(0, 0, -1)},
	}

	got := Streak(ActiveDays(logs, loc), today, loc)
	if got != 1 {
		t.Errorf("streak = %d, want 1 (skipped logs must not count as active days)", got)
	}
}

func TestStreakMultipleLogsSameDay(t *testing.T) {
	loc := time.UTC
	today := time.Date(2024, 5, 10, 12, 0, 0, 0, loc)

	// Several completed logs on the same day collapse to one active day.
	logs := []models.DailyLog{
		mkCompleted(today),
		mkCompleted(today.Add(2 * time.Hour)),
		mkCompleted(today.AddDate(0, 0, -1)),
	}

	got := Streak(ActiveDays(logs, loc), today, loc)
	if got != 2 {
		t.Errorf("streak = %d, want 2", got)
	}
}

func TestWeekly(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, loc) // a Friday

	logs := []models.DailyLog{
		mkCompleted(now),
		mkCompleted(now.Add(-time.Hour)),
		mkCompleted(now.AddDate(0, 0, -2)),
		{Status: models.StatusSkipped, CreatedAt: now.AddDate(0, 0, -1)},
		mkCompleted(now.AddDate(0, 0, -10)), // outside the window
	}

	week := Weekly(logs, now, loc)
	if len(week) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(week))
	}

	if week[0].Date != "2024-05-04" {
		t.Errorf("oldest bucket = %s, want 2024-05-04", week[0].Date)
	}
	last := week[6]
	if last.Date != "2024-05-10" || !last.IsToday {
		t.Errorf("newest bucket = %+v, want today's date tagged IsToday", last)
	}
	if last.Count != 2 {
		t.Errorf("today's count = %d, want 2", last.Count)
	}
	if week[4].Count != 1 {
		t.Errorf("count two days back = %d, want 1", week[4].Count)
	}
	if week[5].Count != 0 {
		t.Errorf("skipped log counted in histogram: %d", week[5].Count)
	}
	for i, d := range week[:6] {
		if d.IsToday {
			t.Errorf("bucket %d wrongly tagged as today", i)
		}
	}
}

func TestCalculate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 5, 10, 18, 0, 0, 0, loc)

	logs := []models.DailyLog{
		mkCompleted(now),
		mkCompleted(now.AddDate(0, 0, -1)),
		{Status: models.StatusSkipped, CreatedAt: now},
	}

	sum := Calculate(logs, now, loc)
	if sum.Streak != 2 {
		t.Errorf("streak = %d, want 2", sum.Streak)
	}
	if sum.TotalCompleted != 2 {
		t.Errorf("total = %d, want 2", sum.TotalCompleted)
	}
	if len(sum.Weekly) != 7 {
		t.Errorf("weekly buckets = %d, want 7", len(sum.Weekly))
	}
}

func TestCalculateEmpty(t *testing.T) {
	sum := Calculate(nil, time.Now(), time.Local)
	if sum.Streak != 0 || sum.TotalCompleted != 0 {
		t.Errorf("empty history should yield zero streak and total, got %+v", sum)
	}
}
