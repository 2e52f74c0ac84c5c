package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/nightly/internal/keyring"
	"github.com/julianstephens/nightly/internal/utils"
)

type ConfigCmd struct {
	SetConnection   ConfigSetConnectionCmd   `cmd:"" name:"set-connection" help:"Store a Postgres connection string in the OS keyring."`
	ClearConnection ConfigClearConnectionCmd `cmd:"" name:"clear-connection" help:"Remove the stored connection string."`
	SetTimezone     ConfigSetTimezoneCmd     `cmd:"" name:"set-timezone" help:"Set the display timezone for streaks and history."`
}

type ConfigSetConnectionCmd struct {
	ConnStr string `arg:"" help:"postgres:// connection string including credentials."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if err := keyring.SetConnectionString(c.ConnStr); err != nil {
		return err
	}
	fmt.Println("Connection string stored in OS keyring.")
	return nil
}

type ConfigClearConnectionCmd struct{}

func (c *ConfigClearConnectionCmd) Run(ctx *Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		fmt.Println("No connection string stored.")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println("Connection string removed.")
	return nil
}

type ConfigSetTimezoneCmd struct {
	Zone string `arg:"" help:"IANA timezone name, e.g. America/New_York, or 'Local'."`
}

func (c *ConfigSetTimezoneCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	if !utils.ValidateTimezone(c.Zone) {
		return fmt.Errorf("unknown timezone %q", c.Zone)
	}
	settings.Timezone = c.Zone
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Timezone set to %s\n", c.Zone)
	return nil
}
