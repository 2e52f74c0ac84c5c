package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/dashboard"
	"github.com/julianstephens/nightly/internal/notifier"
	"github.com/julianstephens/nightly/internal/storage"
)

// RemindCmd sends a desktop popup through the nightly-tray companion
// when tonight's review still has pending habits. Meant to be run from
// a scheduler (cron, systemd timer) in the evening.
type RemindCmd struct {
	Message string `help:"Override the reminder text."`
	Force   bool   `help:"Send even when nothing is pending."`
}

func (c *RemindCmd) Run(ctx *Context) error {
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
	if !proj.HasPending && !c.Force {
		return nil
	}

	text := c.Message
	if text == "" {
		pending := 0
		for _, item := range proj.Items {
			if item.Status == dashboard.StatusPending {
				pending++
			}
		}
		text = fmt.Sprintf("Evening review: %d habit(s) waiting", pending)
	}

	return notifier.New().Notify(text)
}
