package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/dashboard"
	"github.com/julianstephens/nightly/internal/storage"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.ListActiveHabits(settings.UserID)
	if err != nil {
		return err
	}

	from, to := storage.UTCDayRange(time.Now())
	logs, err := ctx.Store.ListLogs(settings.UserID, from, to)
	if err != nil {
		return err
	}

	proj := dashboard.Project(habits, logs)
	if proj.TotalCount == 0 {
		fmt.Println("No active habits. Add one with 'nightly habit add'.")
		return nil
	}

	for i, item := range proj.Items {
		marker := " "
		switch item.Status {
		case dashboard.StatusCompleted:
			marker = "✓"
		case dashboard.StatusSkipped:
			marker = "–"
		}
		fmt.Printf("%s %s %s\n", marker, item.Habit.DisplayIcon(i), item.Habit.Title)
		if item.Note != "" {
			fmt.Printf("    %s\n", item.Note)
		}
	}

	fmt.Printf("\n%d/%d completed (%.0f%%)\n", proj.CompletedCount, proj.TotalCount, proj.Percentage)
	if !proj.HasPending {
		fmt.Println("All habits reviewed for today.")
	}
	return nil
}
