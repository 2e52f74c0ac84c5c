package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/storage"
)

type changeMsg storage.Change

type saveResultMsg struct{ err error }

// savedDoneMsg fires after the post-save pause on the summary screen.
type savedDoneMsg struct{}

func waitForChange(ch chan storage.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg(c)
	}
}

func (m Model) saveSession() tea.Cmd {
	session := m.session
	store := m.store
	userID := m.settings.UserID
	return func() tea.Msg {
		return saveResultMsg{err: session.Save(store, userID)}
	}
}

func savedReturnTick() tea.Cmd {
	return tea.Tick(time.Duration(constants.SavedReturnDelayMs)*time.Millisecond, func(time.Time) tea.Msg {
		return savedDoneMsg{}
	})
}
