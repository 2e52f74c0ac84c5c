package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	StateDashboard SessionState = iota
	StateReviewing
	StateNote
	StateSummary
	StateStats
	StateHistory
	StateAdmin
	StateAddHabit
	StateMaintenance
)

const (
	AppName            = "nightly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/nightly/nightly.db"

	// Version is the software version compiled into this binary. The hosted
	// deployment stores its own app_version setting; a mismatch between the
	// two is surfaced as a restart notice, never acted on silently.
	Version = "1.0.1"

	// EnvConnectionString is the environment variable holding a PostgreSQL
	// connection string, checked before the OS keyring.
	EnvConnectionString = "NIGHTLY_DB_CONNECTION"

	// Tray companion app integration for desktop reminders.
	NotifierLockfileName   = "nightly-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.nightly"
)
