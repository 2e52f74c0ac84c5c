package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/dashboard"
	"github.com/julianstephens/nightly/internal/history"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/review"
	"github.com/julianstephens/nightly/internal/stats"
	"github.com/julianstephens/nightly/internal/storage"
	"github.com/julianstephens/nightly/internal/utils"
)

type HabitFormModel struct {
	Title     string
	TimeOfDay string
}

type Model struct {
	store    storage.Provider
	settings models.AppSettings
	loc      *time.Location

	state constants.SessionState
	keys  KeyMap
	help  help.Model

	habits     []models.Habit
	todayLogs  []models.DailyLog
	projection dashboard.Projection

	announcement *models.Announcement

	session  *review.Session
	noteText string

	form      *huh.Form
	habitForm *HabitFormModel
	formError string

	statsSummary  stats.Summary
	historyMode   history.Mode
	historyGroups []history.DayGroup

	changes      chan storage.Change
	unsubscribes []func()

	quitting bool
	width    int
	height   int
}

func NewModel(store storage.Provider) Model {
	settings, _ := store.GetSettings()

	m := Model{
		store:    store,
		settings: settings,
		loc:      location(settings),
		state:    constants.StateDashboard,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		changes:  make(chan storage.Change, 16),
	}

	m.refreshToday()
	m.refreshAnnouncement()

	if settings.MaintenanceMode && !settings.IsAdmin() {
		m.state = constants.StateMaintenance
	}

	// Settings and announcements can change server-side while the TUI is
	// open; watch both so maintenance mode and banners apply live.
	for _, table := range []string{"settings", "announcements"} {
		ch := m.changes
		unsub, err := store.Subscribe(table, func(c storage.Change) {
			select {
			case ch <- c:
			default:
			}
		})
		if err == nil {
			m.unsubscribes = append(m.unsubscribes, unsub)
		}
	}

	return m
}

func location(settings models.AppSettings) *time.Location {
	loc, err := utils.LoadLocation(settings.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func (m *Model) refreshToday() {
	habits, err := m.store.ListActiveHabits(m.settings.UserID)
	if err != nil {
		habits = nil
	}
	m.habits = habits

	from, to := storage.UTCDayRange(time.Now())
	logs, err := m.store.ListLogs(m.settings.UserID, from, to)
	if err != nil {
		logs = nil
	}
	m.todayLogs = logs
	m.projection = dashboard.Project(m.habits, m.todayLogs)
}

func (m *Model) refreshAnnouncement() {
	a, err := m.store.LatestActiveAnnouncement()
	if err != nil {
		if !errors.Is(err, storage.ErrNoAnnouncement) {
			return
		}
		m.announcement = nil
		return
	}
	m.announcement = &a
}

func (m *Model) refreshSettings() {
	settings, err := m.store.GetSettings()
	if err != nil {
		return
	}
	m.settings = settings
	m.loc = location(settings)
}

// loadStats recomputes the summary over the full log history. Streak and
// lifetime totals must not be windowed; only the history view applies a
// lookback bound.
func (m *Model) loadStats() {
	now := time.Now().In(m.loc)
	_, to := storage.UTCDayRange(now)
	logs, err := m.store.ListLogs(m.settings.UserID, time.Time{}, to)
	if err != nil {
		logs = nil
	}
	m.statsSummary = stats.Calculate(logs, now, m.loc)
}

func (m *Model) loadHistory() {
	now := time.Now().In(m.loc)
	from, _ := storage.UTCDayRange(now.AddDate(0, 0, -constants.HistoryLookbackDays))
	_, to := storage.UTCDayRange(now)
	logs, err := m.store.ListLogs(m.settings.UserID, from, to)
	if err != nil {
		logs = nil
	}
	habits, err := m.store.GetAllHabits(true, true)
	if err != nil {
		habits = nil
	}
	anchor := history.AnchorFor(m.historyMode, now, m.loc)
	m.historyGroups = history.Aggregate(logs, habits, m.historyMode, anchor, m.loc)
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case constants.StateReviewing:
		return []key.Binding{m.keys.Right, m.keys.Left, m.keys.Back}
	case constants.StateSummary:
		return []key.Binding{m.keys.Enter, m.keys.Back}
	case constants.StateStats, constants.StateHistory, constants.StateAdmin:
		return []key.Binding{m.keys.Back, m.keys.Quit}
	default:
		return []key.Binding{m.keys.Review, m.keys.Stats, m.keys.History, m.keys.Add, m.keys.Help, m.keys.Quit}
	}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Review, m.keys.Stats, m.keys.History, m.keys.Add, m.keys.Reset},
		{m.keys.Right, m.keys.Left, m.keys.Enter, m.keys.Back},
		{m.keys.Admin, m.keys.Help, m.keys.Quit},
	}
}

func (m Model) Init() tea.Cmd {
	return waitForChange(m.changes)
}
