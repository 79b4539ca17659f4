package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateDetail:
		content = docStyle.Render(m.detailModel.View())
	case StateAddHabit, StateEditHabit, StateReport:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	default:
		content = docStyle.Render(m.habitsModel.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewHeader() string {
	title := "habitlog"
	switch m.state {
	case StateDetail:
		title += " · details"
	case StateAddHabit:
		title += " · new habit"
	case StateEditHabit:
		title += " · edit habit"
	case StateReport:
		title += " · report"
	}
	return headerStyle.Render(title)
}

func (m Model) viewStatus() string {
	switch {
	case m.errMsg != "":
		return dangerStyle.Render(m.errMsg)
	case m.notice != "":
		return okStyle.Render(m.notice)
	default:
		return ""
	}
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this habit and all of its reports?"),
			warningStyle.Render("This cannot be undone."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
