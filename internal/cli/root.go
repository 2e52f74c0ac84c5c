package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/storage"
	"github.com/julianstephens/nightly/internal/utils"
)

type Context struct {
	Store storage.Provider
}

// LoadSettings loads the store and returns the installation settings.
func (c *Context) LoadSettings() (models.AppSettings, error) {
	if err := c.Store.Load(); err != nil {
		return models.AppSettings{}, err
	}
	return c.Store.GetSettings()
}

// RequireAdmin loads settings and fails unless this installation is
// flagged as an admin user.
func (c *Context) RequireAdmin() (models.AppSettings, error) {
	settings, err := c.LoadSettings()
	if err != nil {
		return models.AppSettings{}, err
	}
	if !settings.IsAdmin() {
		return models.AppSettings{}, fmt.Errorf("admin commands require the admin_user setting")
	}
	return settings, nil
}

// Location resolves the display timezone from settings. Day grouping
// for streaks and history happens in this zone.
func Location(settings models.AppSettings) *time.Location {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
