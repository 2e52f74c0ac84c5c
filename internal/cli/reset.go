package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/storage"
)

type ResetCmd struct {
	Yes bool `help:"Skip confirmation."`
}

// Run deletes today's logs so the evening review can be redone.
func (c *ResetCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	from, to := storage.UTCDayRange(time.Now())
	logs, err := ctx.Store.ListLogs(settings.UserID, from, to)
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("Nothing to reset for today.")
		return nil
	}

	if !c.Yes {
		fmt.Printf("Delete %d log(s) for today? [y/N] ", len(logs))
		var answer string
		_, _ = fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := ctx.Store.DeleteLogsInRange(settings.UserID, from, to); err != nil {
		return err
	}

	fmt.Printf("Deleted %d log(s). All habits are pending again.\n", len(logs))
	return nil
}
