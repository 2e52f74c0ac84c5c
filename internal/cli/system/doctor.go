package system

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/nightly/internal/cli"
	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/keyring"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		settings, err := ctx.Store.GetSettings()
		if err != nil {
			fmt.Printf("❌ Settings present: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Settings present: OK (user %s)\n", settings.UserID)

			if settings.MaintenanceMode {
				fmt.Printf("⚠ Maintenance mode: ON\n")
			} else {
				fmt.Printf("✓ Maintenance mode: off\n")
			}

			switch models.CheckVersion(constants.Version, settings.AppVersion) {
			case models.VersionMismatch:
				fmt.Printf("⚠ App version: this build is %s, published is %s\n", constants.Version, settings.AppVersion)
			default:
				fmt.Printf("✓ App version: %s\n", constants.Version)
			}
		}

		if _, err := ctx.Store.LatestActiveAnnouncement(); err != nil && !errors.Is(err, storage.ErrNoAnnouncement) {
			fmt.Printf("❌ Announcements readable: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Announcements readable: OK\n")
		}
	} else {
		fmt.Printf("⊘ Settings present: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Announcements readable: SKIPPED (database not reachable)\n")
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: available\n")
	} else {
		fmt.Printf("⚠ OS keyring: unavailable (Postgres credentials must come from %s)\n", constants.EnvConnectionString)
	}

	if others, err := otherNightlyProcesses(); err == nil {
		if len(others) > 0 {
			fmt.Printf("⚠ Duplicate processes: %d other nightly instance(s) running (pids %v)\n", len(others), others)
		} else {
			fmt.Printf("✓ Duplicate processes: none\n")
		}
	} else {
		fmt.Printf("⊘ Duplicate processes: SKIPPED (%v)\n", err)
	}

	now := time.Now()
	if now.Year() < 2020 {
		fmt.Printf("❌ System clock: FAIL (year %d looks wrong)\n", now.Year())
		hasError = true
	} else {
		zone, _ := now.Zone()
		fmt.Printf("✓ System clock: OK (%s, %s)\n", now.Format(time.RFC3339), zone)
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// otherNightlyProcesses returns the pids of nightly binaries besides this
// one. The tray companion (nightly-tray) is excluded; it is expected to
// stay resident.
func otherNightlyProcesses() ([]int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		name := p.Executable()
		if p.Pid() == self || strings.HasPrefix(name, "nightly-") {
			continue
		}
		if name == constants.AppName || name == constants.AppName+".exe" {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}
