package storage

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/julianstephens/nightly/internal/models"
)

// ErrNoAnnouncement is returned when no active announcement exists.
var ErrNoAnnouncement = errors.New("no active announcement")

// Change describes a mutation observed on a watched table.
type Change struct {
	Table string
	Op    string
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.AppSettings, error)
	SaveSettings(models.AppSettings) error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetHabitByTitle(title string) (models.Habit, error)
	ListActiveHabits(userID string) ([]models.Habit, error)
	GetAllHabits(includeInactive, includeDeleted bool) ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	ArchiveHabit(id string) error
	UnarchiveHabit(id string) error
	DeleteHabit(id string) error
	RestoreHabit(id string) error

	// Daily logs
	InsertLogs([]models.DailyLog) error
	ListLogs(userID string, from, to time.Time) ([]models.DailyLog, error)
	DeleteLog(id string) error
	DeleteLogsInRange(userID string, from, to time.Time) error
	DeleteLogsForHabit(habitID string) error

	// Announcements
	PublishAnnouncement(message string) (models.Announcement, error)
	LatestActiveAnnouncement() (models.Announcement, error)
	ListAnnouncements(limit int) ([]models.Announcement, error)
	SetAnnouncementActive(id string, active bool) error

	// Subscribe registers onChange for mutations of the named table and
	// returns an unsubscribe function. Delivery is at-least-once;
	// subscribers re-read the data they care about on each change.
	Subscribe(table string, onChange func(Change)) (func(), error)

	// Utils
	GetConfigPath() string
}

// UTCDayRange returns the inclusive bounds of the UTC calendar day
// containing t. Log queries filter on these server-side bounds even
// though display grouping happens in the viewer's local zone.
func UTCDayRange(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	from := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return from, from.Add(24*time.Hour - time.Nanosecond)
}

// HasEmbeddedCredentials reports whether a connection string carries its
// own password, in which case no keyring lookup is needed.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.Contains(connStr, "password=") {
		return true
	}
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
