package system

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/nightly/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		path := ctx.Store.GetConfigPath()
		if strings.HasPrefix(path, "postgres://") {
			return fmt.Errorf("--force only applies to SQLite storage")
		}
		if _, err := os.Stat(path); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove existing database: %w", err)
			}
			fmt.Printf("Removed existing database at %s\n", path)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Printf("Initialized storage at %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("User id: %s\n", settings.UserID)
	return nil
}
