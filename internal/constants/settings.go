package constants

const (
	// Settings keys
	SettingMaintenanceMode = "maintenance_mode"
	SettingAppVersion      = "app_version"
	SettingAdminUser       = "admin_user"
	SettingUserID          = "user_id"
	SettingTimezone        = "timezone"

	// Default settings values
	DefaultMaintenanceMode = false
	DefaultAdminUser       = ""
	DefaultTimezone        = "Local" // system local timezone

	// HistoryLookbackDays is how far back the history view fetches logs.
	HistoryLookbackDays = 30

	// SavedReturnDelayMs is the pause on the review summary screen before
	// returning to the dashboard after a successful save. UX pacing only.
	SavedReturnDelayMs = 1500
)
