package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/history"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/storage"
)

type HistoryCmd struct {
	Week      bool   `help:"Show the current week (Monday through Sunday) instead of the month."`
	Month     string `help:"Month to show, YYYY-MM. Defaults to the current month." placeholder:"YYYY-MM"`
	WeekStart string `name:"week-start" help:"Monday anchor for week mode, YYYY-MM-DD. Implies --week." placeholder:"YYYY-MM-DD"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}
	loc := Location(settings)
	now := time.Now().In(loc)

	from, _ := storage.UTCDayRange(now.AddDate(0, 0, -constants.HistoryLookbackDays))
	_, to := storage.UTCDayRange(now)
	logs, err := ctx.Store.ListLogs(settings.UserID, from, to)
	if err != nil {
		return err
	}

	// Include archived and deleted habits so old logs keep their titles.
	habits, err := ctx.Store.GetAllHabits(true, true)
	if err != nil {
		return err
	}

	mode := history.ModeMonth
	if c.Week || c.WeekStart != "" {
		mode = history.ModeWeek
	}
	anchor := history.AnchorFor(mode, now, loc)
	switch {
	case mode == history.ModeWeek && c.WeekStart != "":
		anchor = c.WeekStart
	case mode == history.ModeMonth && c.Month != "":
		anchor = c.Month
	}
	groups := history.Aggregate(logs, habits, mode, anchor, loc)

	if len(groups) == 0 {
		fmt.Println("No history for this period.")
		return nil
	}

	for _, g := range groups {
		fmt.Printf("%s  %d/%d (%d%%)\n", g.Date, g.Completed, g.Total, g.Percent())
		for _, e := range g.Entries {
			marker := "✓"
			if e.Log.Status != models.StatusCompleted {
				marker = "–"
			}
			fmt.Printf("  %s %s %s\n", marker, e.Habit.DisplayIcon(0), e.Habit.Title)
			if e.Log.Note != nil && *e.Log.Note != "" {
				fmt.Printf("      %s\n", *e.Log.Note)
			}
		}
	}
	return nil
}
