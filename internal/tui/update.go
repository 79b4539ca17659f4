package tui

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		h, v := docStyle.GetFrameSize()
		m.habitsModel.SetSize(msg.Width-h, msg.Height-v-4)
		m.detailModel.SetSize(msg.Width-h, msg.Height-v-4)
		return m, nil
	}

	if handled, cmd := m.handleHabitMessages(msg); handled {
		return m, cmd
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m, m.updateHabitForm(msg)
	case StateReport:
		return m, m.updateReportForm(msg)
	case StateConfirmDelete:
		return m, m.updateConfirmDelete(msg)
	case StateDetail:
		return m, m.updateDetail(msg)
	default:
		return m, m.updateHabits(msg)
	}
}

func (m *Model) updateHabits(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		m.errMsg = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
	}

	var cmd tea.Cmd
	m.habitsModel, cmd = m.habitsModel.Update(msg)
	return cmd
}

func (m *Model) updateDetail(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.state = StateHabits
			return nil
		}
	}

	var cmd tea.Cmd
	m.detailModel, cmd = m.detailModel.Update(msg)
	return cmd
}

// handleHabitMessages reacts to the actions emitted by the habits list.
func (m *Model) handleHabitMessages(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Cadence: models.CadenceDaily, Frequency: "1"}
		m.editingID = ""
		m.form = NewHabitForm(m.habitForm, false)
		m.state = StateAddHabit
		return true, m.form.Init()

	case habits.EditHabitMsg:
		m.habitForm = &HabitFormModel{
			Title:     msg.Habit.Title,
			Purpose:   msg.Habit.Purpose,
			Cadence:   msg.Habit.Cadence,
			Frequency: strconv.Itoa(msg.Habit.Frequency),
		}
		m.editingID = msg.Habit.ID
		m.form = NewHabitForm(m.habitForm, true)
		m.state = StateEditHabit
		return true, m.form.Init()

	case habits.DeleteHabitMsg:
		m.deleteID = msg.ID
		m.state = StateConfirmDelete
		return true, nil

	case habits.ReportMsg:
		if msg.Quick {
			m.submit(msg.ID, msg.Status, "")
			return true, nil
		}
		m.reportID = msg.ID
		m.reportForm = &ReportFormModel{Status: msg.Status}
		m.form = NewReportForm(m.reportForm)
		m.state = StateReport
		return true, m.form.Init()

	case habits.OpenDetailMsg:
		m.openDetail(msg.ID)
		return true, nil
	}
	return false, nil
}

func (m *Model) submit(id string, status models.Status, comment string) {
	res, err := m.svc.SubmitReport(m.owner, id, status, comment)
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrReportAhead):
			m.errMsg = "Latest report is dated after today; check the clock or --timezone"
		case errors.Is(err, tracker.ErrDuplicateDay):
			m.errMsg = "Already reported today"
		default:
			logger.Error("failed to submit report", "habit", id, "error", err)
			m.errMsg = err.Error()
		}
		return
	}

	m.notice = fmt.Sprintf("%s: %s, streak %d → %d", res.Habit.Title, status, res.PreviousStreak, res.Habit.Streak)
	if n := len(res.Backfilled); n > 0 {
		m.notice += fmt.Sprintf(" (%d missed day(s) marked forgot_to_mark)", n)
	}
	m.refresh()
}

// updateForm forwards msg to the active form and reports its state.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return huh.StateAborted, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m *Model) updateHabitForm(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)

	switch state {
	case huh.StateCompleted:
		m.state = StateHabits
		fm := m.habitForm
		if m.editingID == "" {
			h, err := m.svc.CreateHabit(m.owner, tracker.HabitInput{
				Title:     fm.Title,
				Purpose:   fm.Purpose,
				Cadence:   fm.Cadence,
				Frequency: fm.frequency(),
			})
			if err != nil {
				m.errMsg = err.Error()
				return cmd
			}
			m.notice = "Added " + h.Title
		} else {
			freq := fm.frequency()
			res, err := m.svc.UpdateHabit(m.owner, m.editingID, tracker.HabitPatch{
				Title:     &fm.Title,
				Purpose:   &fm.Purpose,
				Cadence:   &fm.Cadence,
				Frequency: &freq,
			})
			if err != nil {
				m.errMsg = err.Error()
				return cmd
			}
			m.notice = "Updated " + res.Habit.Title
			if res.Reset {
				m.notice += fmt.Sprintf(", history cleared (%d reports)", res.Purged)
			}
		}
		m.refresh()
	case huh.StateAborted:
		m.state = StateHabits
	}
	return cmd
}

func (m *Model) updateReportForm(msg tea.Msg) tea.Cmd {
	state, cmd := m.updateForm(msg)

	switch state {
	case huh.StateCompleted:
		m.state = StateHabits
		m.submit(m.reportID, m.reportForm.Status, m.reportForm.Comment)
	case huh.StateAborted:
		m.state = StateHabits
	}
	return cmd
}

func (m *Model) updateConfirmDelete(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.svc.DeleteHabit(m.owner, m.deleteID); err != nil {
			m.errMsg = err.Error()
		} else {
			m.notice = "Habit deleted"
			m.refresh()
		}
		m.deleteID = ""
		m.state = StateHabits
	case key.Matches(keyMsg, m.keys.Cancel):
		m.deleteID = ""
		m.state = StateHabits
	}
	return nil
}
