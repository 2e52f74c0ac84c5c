package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/nightly/internal/constants"
	"github.com/julianstephens/nightly/internal/dashboard"
	"github.com/julianstephens/nightly/internal/history"
	"github.com/julianstephens/nightly/internal/models"
	"github.com/julianstephens/nightly/internal/review"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateMaintenance:
		content = m.viewMaintenance()
	case constants.StateReviewing:
		content = m.viewReviewing()
	case constants.StateNote, constants.StateAddHabit:
		content = m.form.View()
	case constants.StateSummary:
		content = m.viewSummary()
	case constants.StateStats:
		content = m.viewStats()
	case constants.StateHistory:
		content = m.viewHistory()
	case constants.StateAdmin:
		content = m.viewAdmin()
	default:
		content = m.viewDashboard()
	}

	sections := []string{}
	if banner := m.viewBanner(); banner != "" {
		sections = append(sections, banner)
	}
	sections = append(sections, content, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewBanner() string {
	var parts []string
	if m.announcement != nil {
		if banner := m.announcement.Banner("en"); banner != "" {
			parts = append(parts, bannerStyle.Render(banner))
		}
	}
	if m.settings.MaintenanceMode && m.settings.IsAdmin() {
		parts = append(parts, dangerStyle.Render("maintenance mode is ON"))
	}
	if models.CheckVersion(constants.Version, m.settings.AppVersion) == models.VersionMismatch {
		parts = append(parts, mutedStyle.Render(fmt.Sprintf("update available: %s", m.settings.AppVersion)))
	}
	return strings.Join(parts, "  ")
}

func (m Model) viewMaintenance() string {
	return cardStyle.Render(
		titleStyle.Render("Down for maintenance") + "\n\n" +
			"nightly is being worked on right now.\nCome back in a little while.")
}

func (m Model) viewDashboard() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tonight"))
	b.WriteString("\n\n")

	if m.projection.TotalCount == 0 {
		b.WriteString(mutedStyle.Render("No active habits yet. Press 'a' to add one."))
		return b.String()
	}

	for i, item := range m.projection.Items {
		marker := mutedStyle.Render("·")
		switch item.Status {
		case dashboard.StatusCompleted:
			marker = successStyle.Render("✓")
		case dashboard.StatusSkipped:
			marker = mutedStyle.Render("–")
		}
		b.WriteString(fmt.Sprintf("%s %s %s\n", marker, item.Habit.DisplayIcon(i), item.Habit.Title))
		if item.Note != "" {
			b.WriteString(noteStyle.Render("    "+item.Note) + "\n")
		}
	}

	b.WriteString(fmt.Sprintf("\n%d/%d completed (%.0f%%)\n", m.projection.CompletedCount, m.projection.TotalCount, m.projection.Percentage))
	if m.projection.HasPending {
		b.WriteString(mutedStyle.Render("Press 'r' to start tonight's review."))
	} else {
		b.WriteString(successStyle.Render("All reviewed for today."))
	}
	if m.formError != "" {
		b.WriteString("\n" + dangerStyle.Render(m.formError))
	}
	return b.String()
}

func (m Model) viewReviewing() string {
	habit, ok := m.session.Current()
	if !ok {
		return ""
	}
	done, total := m.session.Progress()

	card := cardStyle.Render(fmt.Sprintf("%s\n\n%s", habit.DisplayIcon(done), titleStyle.Render(habit.Title)))
	progress := mutedStyle.Render(fmt.Sprintf("%d of %d", done+1, total))
	hint := mutedStyle.Render("→ done    ← skip (with optional note)")

	return lipgloss.JoinVertical(lipgloss.Center, card, progress, hint)
}

func (m Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Review summary"))
	b.WriteString("\n\n")

	for _, r := range m.session.Results() {
		marker := successStyle.Render("✓")
		if r.Status == models.StatusSkipped {
			marker = mutedStyle.Render("–")
		}
		b.WriteString(fmt.Sprintf("%s %s\n", marker, r.Title))
		if r.Note != "" {
			b.WriteString(noteStyle.Render("    "+r.Note) + "\n")
		}
	}
	b.WriteString("\n")

	switch m.session.State() {
	case review.StateSaved:
		b.WriteString(successStyle.Render("Saved. Returning to the dashboard..."))
	case review.StateSaving:
		b.WriteString(mutedStyle.Render("Saving..."))
	case review.StateSaveFailed:
		b.WriteString(dangerStyle.Render(fmt.Sprintf("Save failed: %v", m.session.SaveError())))
		b.WriteString("\n" + mutedStyle.Render("Press enter to retry."))
	default:
		b.WriteString(mutedStyle.Render("Press enter to save tonight's review."))
	}
	return b.String()
}

func (m Model) viewStats() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Stats"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Streak: %s\n", successStyle.Render(fmt.Sprintf("%d day(s)", m.statsSummary.Streak))))
	b.WriteString(fmt.Sprintf("Total completed: %d\n\n", m.statsSummary.TotalCompleted))

	for _, d := range m.statsSummary.Weekly {
		bar := strings.Repeat("█", d.Count)
		if d.Count == 0 {
			bar = mutedStyle.Render("·")
		}
		label := d.Day
		if d.IsToday {
			label = titleStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%3s %s\n", label, bar))
	}
	return b.String()
}

func (m Model) viewHistory() string {
	var b strings.Builder
	mode := "month"
	if m.historyMode == history.ModeWeek {
		mode = "week"
	}
	b.WriteString(titleStyle.Render("History") + mutedStyle.Render("  ("+mode+", w/m to switch)"))
	b.WriteString("\n\n")

	if len(m.historyGroups) == 0 {
		b.WriteString(mutedStyle.Render("No logs for this period."))
		return b.String()
	}

	for _, g := range m.historyGroups {
		b.WriteString(fmt.Sprintf("%s  %d/%d (%d%%)\n", titleStyle.Render(g.Date), g.Completed, g.Total, g.Percent()))
		for _, e := range g.Entries {
			marker := successStyle.Render("✓")
			if e.Log.Status != models.StatusCompleted {
				marker = mutedStyle.Render("–")
			}
			b.WriteString(fmt.Sprintf("  %s %s %s\n", marker, e.Habit.DisplayIcon(0), e.Habit.Title))
			if e.Log.Note != nil && *e.Log.Note != "" {
				b.WriteString(noteStyle.Render("      "+*e.Log.Note) + "\n")
			}
		}
	}
	return b.String()
}

func (m Model) viewAdmin() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Admin"))
	b.WriteString("\n\n")

	state := "off"
	if m.settings.MaintenanceMode {
		state = dangerStyle.Render("ON")
	}
	b.WriteString(fmt.Sprintf("Maintenance mode: %s  %s\n", state, mutedStyle.Render("(t to toggle)")))
	b.WriteString(fmt.Sprintf("Published version: %s\n", m.settings.AppVersion))

	if m.announcement != nil {
		b.WriteString(fmt.Sprintf("\nActive announcement (%s):\n", m.announcement.CreatedAt.Format("2006-01-02")))
		if banner := m.announcement.Banner("en"); banner != "" {
			b.WriteString("  " + banner + "\n")
		}
		if update := m.announcement.Update("en"); update != "" {
			b.WriteString(noteStyle.Render("  "+update) + "\n")
		}
	} else {
		b.WriteString(mutedStyle.Render("\nNo active announcement.\n"))
	}

	b.WriteString(mutedStyle.Render("\nPublish announcements with 'nightly admin announce'."))
	return b.String()
}
