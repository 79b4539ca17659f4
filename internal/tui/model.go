package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/detail"
	"github.com/julianstephens/habitlog/internal/tui/components/habits"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateDetail
	StateAddHabit
	StateEditHabit
	StateReport
	StateConfirmDelete
)

// Service is the part of the tracker the TUI drives.
type Service interface {
	CreateHabit(owner string, in tracker.HabitInput) (models.Habit, error)
	ListHabits(owner string) ([]models.Habit, error)
	HabitDetail(owner, id string) (tracker.Detail, error)
	UpdateHabit(owner, id string, patch tracker.HabitPatch) (tracker.UpdateResult, error)
	DeleteHabit(owner, id string) error
	SubmitReport(owner, habitID string, status models.Status, comment string) (tracker.SubmitResult, error)
}

type Model struct {
	svc         Service
	owner       string
	state       SessionState
	keys        KeyMap
	help        help.Model
	habitsModel habits.Model
	detailModel detail.Model
	form        *huh.Form
	habitForm   *HabitFormModel
	reportForm  *ReportFormModel
	editingID   string
	reportID    string
	deleteID    string
	notice      string
	errMsg      string
	quitting    bool
	width       int
	height      int
}

func NewModel(svc Service, owner string) Model {
	m := Model{
		svc:         svc,
		owner:       owner,
		state:       StateHabits,
		keys:        DefaultKeyMap(),
		help:        help.New(),
		habitsModel: habits.New(nil, nil, 0, 0),
		detailModel: detail.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh reloads the habit list along with which habits already have a
// report for today.
func (m *Model) refresh() {
	list, err := m.svc.ListHabits(m.owner)
	if err != nil {
		logger.Error("failed to load habits", "error", err)
		m.errMsg = err.Error()
		return
	}

	reported := make(map[string]bool, len(list))
	for _, h := range list {
		d, err := m.svc.HabitDetail(m.owner, h.ID)
		if err != nil {
			logger.Warn("failed to load habit detail", "habit", h.ID, "error", err)
			continue
		}
		reported[h.ID] = d.ReportedToday
	}
	m.habitsModel.SetHabits(list, reported)
}

func (m *Model) openDetail(id string) {
	d, err := m.svc.HabitDetail(m.owner, id)
	if err != nil {
		m.errMsg = err.Error()
		return
	}
	m.detailModel.SetDetail(d)
	m.state = StateDetail
}

func (m Model) ShortHelp() []key.Binding {
	switch m.state {
	case StateDetail:
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Back, m.keys.Quit}
	case StateConfirmDelete:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case StateAddHabit, StateEditHabit, StateReport:
		return []key.Binding{m.keys.Back}
	}
	k := habits.DefaultKeyMap()
	return []key.Binding{k.Add, k.Complete, k.Incomplete, k.Open, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	if m.state != StateHabits {
		return [][]key.Binding{m.ShortHelp()}
	}
	k := habits.DefaultKeyMap()
	return [][]key.Binding{
		{m.keys.Up, m.keys.Down, m.keys.Help, m.keys.Quit},
		{k.Add, k.Edit, k.Delete},
		{k.Complete, k.Incomplete, k.Report, k.Open},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}
