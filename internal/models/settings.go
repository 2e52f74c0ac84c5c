package models

// AppSettings holds the global, deployment-wide settings plus the local
// profile values. Stored as key/value rows; mutated by admin action and read
// by every client at startup and on change notification.
type AppSettings struct {
	MaintenanceMode bool   `json:"maintenance_mode"`
	AppVersion      string `json:"app_version"`
	AdminUser       string `json:"admin_user"` // user id allowed past maintenance mode
	UserID          string `json:"user_id"`    // local profile, generated at init
	Timezone        string `json:"timezone"`   // IANA name or "Local"
}

// IsAdmin reports whether the local profile is the configured admin.
func (s AppSettings) IsAdmin() bool {
	return s.AdminUser != "" && s.AdminUser == s.UserID
}

// VersionStatus is the result of comparing the compiled-in version against
// the deployment's app_version setting.
type VersionStatus int

const (
	VersionUnknown VersionStatus = iota
	VersionUpToDate
	VersionMismatch
)

// CheckVersion compares the local software version with the remote setting.
// The reaction to a mismatch (restart notice, reload) is a caller-level
// policy, deliberately not implemented here.
func CheckVersion(local, remote string) VersionStatus {
	if remote == "" {
		return VersionUnknown
	}
	if local == remote {
		return VersionUpToDate
	}
	return VersionMismatch
}
