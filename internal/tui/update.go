package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/dashboard"
	"github.com/julianstephens/nightly/internal/history"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/review"
	"github.com/julianstephens/nightly/internal/storage"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case changeMsg:
		switch msg.Table {
		case "settings":
			m.refreshSettings()
			if m.settings.MaintenanceMode && !m.settings.IsAdmin() {
				m.state = constants.StateMaintenance
			} else if m.state == constants.StateMaintenance {
				m.refreshToday()
				m.state = constants.StateDashboard
			}
		case "announcements":
			m.refreshAnnouncement()
		}
		return m, waitForChange(m.changes)

	case saveResultMsg:
		if msg.err != nil {
			return m, nil
		}
		m.refreshToday()
		return m, savedReturnTick()

	case savedDoneMsg:
		if m.state == constants.StateSummary {
			m.session = nil
			m.state = constants.StateDashboard
		}
		return m, nil
	}

	switch m.state {
	case constants.StateNote:
		return m.updateNote(msg)
	case constants.StateAddHabit:
		return m.updateAddHabit(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if keyMsg.String() == "ctrl+c" {
		return m.quit()
	}

	switch m.state {
	case constants.StateDashboard:
		return m.updateDashboard(keyMsg)
	case constants.StateReviewing:
		return m.updateReviewing(keyMsg)
	case constants.StateSummary:
		return m.updateSummary(keyMsg)
	case constants.StateStats, constants.StateHistory:
		return m.updateBrowse(keyMsg)
	case constants.StateAdmin:
		return m.updateAdmin(keyMsg)
	case constants.StateMaintenance:
		if keyMsg.String() == "q" {
			return m.quit()
		}
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	for _, unsub := range m.unsubscribes {
		unsub()
	}
	return m, tea.Quit
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.quit()
	case "?":
		m.help.ShowAll = !m.help.ShowAll
	case "r":
		if !m.projection.HasPending {
			return m, nil
		}
		var pending []models.Habit
		for _, item := range m.projection.Items {
			if item.Status == dashboard.StatusPending {
				pending = append(pending, item.Habit)
			}
		}
		session, err := review.NewSession(pending)
		if err != nil {
			return m, nil
		}
		m.session = session
		m.state = constants.StateReviewing
	case "s":
		m.loadStats()
		m.state = constants.StateStats
	case "y":
		m.historyMode = history.ModeMonth
		m.loadHistory()
		m.state = constants.StateHistory
	case "a":
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.formError = ""
		m.state = constants.StateAddHabit
		return m, m.form.Init()
	case "x":
		from, to := storage.UTCDayRange(time.Now())
		if err := m.store.DeleteLogsInRange(m.settings.UserID, from, to); err == nil {
			m.refreshToday()
		}
	case "A":
		if m.settings.IsAdmin() {
			m.state = constants.StateAdmin
		}
	}
	return m, nil
}

func (m Model) updateReviewing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Abandon the walk; nothing was persisted yet.
		m.session = nil
		m.state = constants.StateDashboard
	case "right", "l":
		m.session.MarkCompleted()
		if m.session.State() == review.StateCompleted {
			m.state = constants.StateSummary
		}
	case "left", "h":
		m.session.MarkSkipped()
		if m.session.State() == review.StateAwaitingNote {
			m.noteText = ""
			m.form = newNoteForm(&m.noteText)
			m.state = constants.StateNote
			return m, m.form.Init()
		}
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.session.SkipNote()
		return m.afterNote()
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.session.SubmitNote(m.noteText)
		model, _ := m.afterNote()
		return model, cmd
	}
	return m, cmd
}

func (m Model) afterNote() (tea.Model, tea.Cmd) {
	m.form = nil
	if m.session.State() == review.StateCompleted {
		m.state = constants.StateSummary
	} else {
		m.state = constants.StateReviewing
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.session.State() == review.StateSaved {
			return m, nil
		}
		m.session = nil
		m.state = constants.StateDashboard
	case "enter", "s":
		switch m.session.State() {
		case review.StateCompleted, review.StateSaveFailed:
			return m, m.saveSession()
		}
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.state = constants.StateDashboard
	case "w":
		if m.state == constants.StateHistory && m.historyMode != history.ModeWeek {
			m.historyMode = history.ModeWeek
			m.loadHistory()
		}
	case "m":
		if m.state == constants.StateHistory && m.historyMode != history.ModeMonth {
			m.historyMode = history.ModeMonth
			m.loadHistory()
		}
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateAdmin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.state = constants.StateDashboard
	case "t":
		m.settings.MaintenanceMode = !m.settings.MaintenanceMode
		if err := m.store.SaveSettings(m.settings); err != nil {
			m.refreshSettings()
		}
	case "q":
		return m.quit()
	}
	return m, nil
}

func (m Model) updateAddHabit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.form = nil
		m.state = constants.StateDashboard
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		habit := models.Habit{
			ID:        uuid.New().String(),
			UserID:    m.settings.UserID,
			Title:     m.habitForm.Title,
			TimeOfDay: models.TimeOfDay(m.habitForm.TimeOfDay),
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		// Icon and color are left empty; views derive the fallback
		// through DisplayIcon/DisplayColor instead of persisting it.
		if err := m.store.AddHabit(habit); err != nil {
			m.formError = err.Error()
		} else {
			m.formError = ""
			m.refreshToday()
		}
		m.form = nil
		m.state = constants.StateDashboard
		return m, cmd
	}
	return m, cmd
}

func newNoteForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Why not today?").
				Description("Optional note for the skipped habit. Esc to skip.").
				Value(value),
		),
	)
}

func newHabitForm(f *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit title").
				Validate(func(s string) error {
					if s == "" {
						return errEmptyTitle
					}
					return nil
				}).
				Value(&f.Title),
			huh.NewSelect[string]().
				Title("Time of day").
				Options(
					huh.NewOption("Any", ""),
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Afternoon", "afternoon"),
					huh.NewOption("Night", "night"),
				).
				Value(&f.TimeOfDay),
		),
	)
}

var errEmptyTitle = errors.New("title cannot be empty")
