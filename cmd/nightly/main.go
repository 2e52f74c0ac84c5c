package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/nightly/internal/cli"
	"github.com/julianstephens/nightly/internal/cli/system"
	"github.com/julianstephens/nightly/internal/constants"
	apperrors "github.com/julianstephens/nightly/internal/errors"
	"github.com/julianstephens/nightly/internal/keyring"
	"github.com/julianstephens/nightly/internal/logger"
	"github.com/julianstephens/nightly/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Debug   bool   `help:"Enable debug logging."`
	DB      string `name:"db" help:"SQLite database path, or a postgres:// connection string without embedded credentials. Postgres credentials come from the OS keyring or ${env}." default:"~/.config/nightly/nightly.db"`

	Init    system.InitCmd `cmd:"" help:"Initialize nightly storage."`
	Doctor  system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui     system.TuiCmd  `cmd:"" help:"Launch the interactive evening review." default:"1"`
	Habit   cli.HabitCmd   `cmd:"" help:"Manage habits."`
	Today   cli.TodayCmd   `cmd:"" help:"Show today's habit status."`
	Stats   cli.StatsCmd   `cmd:"" help:"Show streak and weekly activity."`
	History cli.HistoryCmd `cmd:"" help:"Show past review days."`
	Reset   cli.ResetCmd   `cmd:"" help:"Delete today's logs and review again."`
	Admin   cli.AdminCmd   `cmd:"" help:"Admin operations (maintenance, version, announcements)."`
	Config  cli.ConfigCmd  `cmd:"" help:"Manage connection and display settings."`
	Remind  cli.RemindCmd  `cmd:"" hidden:"" help:"Send a desktop reminder when habits are pending."`
}

func main() {
	// Optional; a missing .env file is the normal case.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Evening habit review and streak tracker"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"env":     constants.EnvConnectionString,
		},
	)

	dbPath := expandHome(CLI.DB)
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir(dbPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	store, err := selectStore(dbPath)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{Store: store}
	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// selectStore picks the backend from the --db value. Postgres targets
// must not embed a password; it is resolved from the environment or the
// OS keyring instead.
func selectStore(dbPath string) (storage.Provider, error) {
	if !strings.HasPrefix(dbPath, "postgres://") && !strings.HasPrefix(dbPath, "postgresql://") {
		return storage.NewSQLiteStore(dbPath), nil
	}

	if storage.HasEmbeddedCredentials(dbPath) {
		return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; store them with 'nightly config set-connection' or export %s", constants.EnvConnectionString)
	}

	if env := os.Getenv(constants.EnvConnectionString); env != "" {
		return storage.NewPostgresStore(env), nil
	}
	connStr, err := keyring.GetConnectionString()
	if err == nil {
		return storage.NewPostgresStore(connStr), nil
	}

	// Fall back to the credential-less string; .pgpass or peer auth may
	// still make it work.
	logger.Debug("no stored credentials, using connection string as-is", "error", err)
	return storage.NewPostgresStore(dbPath), nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func configDir(dbPath string) string {
	if strings.HasPrefix(dbPath, "postgres") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		return filepath.Join(home, ".config", constants.AppName)
	}
	return filepath.Dir(dbPath)
}
