package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/stats"
	"github.com/julianstephens/nightly/internal/storage"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}
	loc := Location(settings)
	now := time.Now().In(loc)

	logs, err := allLogs(ctx, settings.UserID, now)
	if err != nil {
		return err
	}

	summary := stats.Calculate(logs, now, loc)

	fmt.Printf("Streak: %d day(s)\n", summary.Streak)
	fmt.Printf("Total completed: %d\n", summary.TotalCompleted)
	fmt.Println()

	max := 0
	for _, d := range summary.Weekly {
		if d.Count > max {
			max = d.Count
		}
	}
	for _, d := range summary.Weekly {
		bar := strings.Repeat("█", d.Count)
		if max > 0 && d.Count == 0 {
			bar = "·"
		}
		label := d.Day
		if d.IsToday {
			label = strings.ToUpper(label)
		}
		fmt.Printf("%3s %s\n", label, bar)
	}
	return nil
}

// allLogs fetches the user's entire log history through the end of the
// current day. Streak and lifetime totals scan the full history; only
// the history view applies a lookback window.
func allLogs(ctx *Context, userID string, now time.Time) ([]models.DailyLog, error) {
	_, to := storage.UTCDayRange(now)
	return ctx.Store.ListLogs(userID, time.Time{}, to)
}
