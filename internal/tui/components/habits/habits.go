package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/models"
)

type AddHabitMsg struct{}

type EditHabitMsg struct {
	Habit models.Habit
}

type DeleteHabitMsg struct {
	ID string
}

// ReportMsg asks the parent to submit today's report. Comment-less quick
// reports set Quick; otherwise a form collects the comment first.
type ReportMsg struct {
	ID     string
	Status models.Status
	Quick  bool
}

type OpenDetailMsg struct {
	ID string
}

type Item struct {
	Habit         models.Habit
	ReportedToday bool
}

func (i Item) Title() string {
	if i.ReportedToday {
		return "✓ " + i.Habit.Title
	}
	return "○ " + i.Habit.Title
}

func (i Item) Description() string {
	cadence := "daily"
	if i.Habit.Cadence == models.CadenceWeekly {
		cadence = fmt.Sprintf("%d× weekly", i.Habit.Frequency)
	}
	desc := fmt.Sprintf("%s | streak %d", cadence, i.Habit.Streak)
	if i.ReportedToday {
		desc += " | reported today"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Habit.Title }

type KeyMap struct {
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Complete   key.Binding
	Incomplete key.Binding
	Report     key.Binding
	Open       key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "completed"),
		),
		Incomplete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "incomplete"),
		),
		Report: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "report with comment"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(habits []models.Habit, reported map[string]bool, width, height int) Model {
	l := list.New(items(habits, reported), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Complete, keys.Incomplete, keys.Open}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Complete, keys.Incomplete, keys.Report, keys.Open}
	}

	return Model{list: l, keys: keys}
}

func items(habits []models.Habit, reported map[string]bool) []list.Item {
	out := make([]list.Item, len(habits))
	for i, h := range habits {
		out[i] = Item{Habit: h, ReportedToday: reported[h.ID]}
	}
	return out
}

func (m *Model) SetHabits(habits []models.Habit, reported map[string]bool) {
	m.list.SetItems(items(habits, reported))
}

// Selected returns the highlighted habit, if any.
func (m Model) Selected() (Item, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddHabitMsg{} }
		}
		i, ok := m.Selected()
		if !ok {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Edit):
			return m, func() tea.Msg { return EditHabitMsg{Habit: i.Habit} }
		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteHabitMsg{ID: i.Habit.ID} }
		case key.Matches(msg, m.keys.Open):
			return m, func() tea.Msg { return OpenDetailMsg{ID: i.Habit.ID} }
		case i.ReportedToday:
			// already reported; fall through to list navigation
		case key.Matches(msg, m.keys.Complete):
			return m, func() tea.Msg { return ReportMsg{ID: i.Habit.ID, Status: models.StatusCompleted, Quick: true} }
		case key.Matches(msg, m.keys.Incomplete):
			return m, func() tea.Msg { return ReportMsg{ID: i.Habit.ID, Status: models.StatusIncomplete, Quick: true} }
		case key.Matches(msg, m.keys.Report):
			return m, func() tea.Msg { return ReportMsg{ID: i.Habit.ID, Status: models.StatusCompleted} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
