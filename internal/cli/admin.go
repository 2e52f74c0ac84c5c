package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/storage"
)

type AdminCmd struct {
	Maintenance   AdminMaintenanceCmd   `cmd:"" help:"Toggle maintenance mode."`
	Version       AdminVersionCmd       `cmd:"" help:"Show or set the published app version."`
	Announce      AdminAnnounceCmd      `cmd:"" help:"Publish an announcement."`
	Announcements AdminAnnouncementsCmd `cmd:"" help:"List announcements."`
	Deactivate    AdminDeactivateCmd    `cmd:"" help:"Deactivate an announcement."`
	Grant         AdminGrantCmd         `cmd:"" help:"Flag this installation as admin."`
}

type AdminMaintenanceCmd struct {
	State string `arg:"" enum:"on,off" help:"on or off."`
}

func (c *AdminMaintenanceCmd) Run(ctx *Context) error {
	settings, err := ctx.RequireAdmin()
	if err != nil {
		return err
	}

	settings.MaintenanceMode = c.State == "on"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	fmt.Printf("Maintenance mode: %s\n", c.State)
	return nil
}

type AdminVersionCmd struct {
	Version string `arg:"" optional:"" help:"New published version. Omit to show the current one."`
}

func (c *AdminVersionCmd) Run(ctx *Context) error {
	settings, err := ctx.RequireAdmin()
	if err != nil {
		return err
	}

	if c.Version == "" {
		fmt.Printf("Published version: %s (this build: %s)\n", settings.AppVersion, constants.Version)
		switch models.CheckVersion(constants.Version, settings.AppVersion) {
		case models.VersionMismatch:
			fmt.Println("This build does not match the published version.")
		case models.VersionUpToDate:
			fmt.Println("Up to date.")
		}
		return nil
	}

	settings.AppVersion = c.Version
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}
	fmt.Printf("Published version set to %s\n", c.Version)
	return nil
}

type AdminAnnounceCmd struct {
	Message string `arg:"" help:"Announcement text, or a JSON object keyed by language with banner/update fields."`
}

func (c *AdminAnnounceCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAdmin(); err != nil {
		return err
	}

	a, err := ctx.Store.PublishAnnouncement(c.Message)
	if err != nil {
		return err
	}

	fmt.Printf("Published announcement %s\n", a.ID)
	return nil
}

type AdminAnnouncementsCmd struct {
	Limit int `help:"Maximum announcements to show." default:"20"`
}

func (c *AdminAnnouncementsCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAdmin(); err != nil {
		return err
	}

	all, err := ctx.Store.ListAnnouncements(c.Limit)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No announcements.")
		return nil
	}

	latest, err := ctx.Store.LatestActiveAnnouncement()
	if err != nil && !errors.Is(err, storage.ErrNoAnnouncement) {
		return err
	}

	for _, a := range all {
		state := "inactive"
		if a.IsActive {
			state = "active"
		}
		marker := " "
		if a.ID == latest.ID {
			marker = "*"
		}
		fmt.Printf("%s %s  [%s]  %s\n", marker, a.CreatedAt.Format("2006-01-02 15:04"), state, a.ID)
		if banner := a.Banner("en"); banner != "" {
			fmt.Printf("    %s\n", banner)
		}
	}
	return nil
}

type AdminDeactivateCmd struct {
	ID string `arg:"" help:"Announcement id."`
}

func (c *AdminDeactivateCmd) Run(ctx *Context) error {
	if _, err := ctx.RequireAdmin(); err != nil {
		return err
	}

	if err := ctx.Store.SetAnnouncementActive(c.ID, false); err != nil {
		return err
	}
	fmt.Printf("Deactivated announcement %s\n", c.ID)
	return nil
}

// AdminGrantCmd flips the local admin flag. Server-side enforcement
// belongs to the database's own access control; this only unlocks the
// admin surfaces in this client.
type AdminGrantCmd struct {
	Revoke bool `help:"Remove the admin flag instead."`
}

func (c *AdminGrantCmd) Run(ctx *Context) error {
	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	if c.Revoke {
		settings.AdminUser = ""
	} else {
		settings.AdminUser = settings.UserID
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return err
	}

	if c.Revoke {
		fmt.Println("Admin flag removed.")
	} else {
		fmt.Println("Admin flag set.")
	}
	return nil
}
