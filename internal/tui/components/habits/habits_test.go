package habits

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitlog/internal/models"
)

func TestItemText(t *testing.T) {
	tests := []struct {
		name      string
		item      Item
		wantTitle string
		wantDesc  string
	}{
		{
			name:      "daily pending",
			item:      Item{Habit: models.Habit{Title: "Read", Cadence: models.CadenceDaily, Frequency: 1, Streak: 3}},
			wantTitle: "○ Read",
			wantDesc:  "daily | streak 3",
		},
		{
			name:      "weekly reported",
			item:      Item{Habit: models.Habit{Title: "Gym", Cadence: models.CadenceWeekly, Frequency: 3}, ReportedToday: true},
			wantTitle: "✓ Gym",
			wantDesc:  "3× weekly | streak 0 | reported today",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if got := tt.item.Description(); got != tt.wantDesc {
				t.Errorf("Description() = %q, want %q", got, tt.wantDesc)
			}
		})
	}
}

func TestUpdateEmitsActions(t *testing.T) {
	h := models.Habit{ID: "h1", Title: "Read", Cadence: models.CadenceDaily, Frequency: 1}

	tests := []struct {
		key      string
		reported bool
		want     tea.Msg
	}{
		{"a", false, AddHabitMsg{}},
		{"c", false, ReportMsg{ID: "h1", Status: models.StatusCompleted, Quick: true}},
		{"x", false, ReportMsg{ID: "h1", Status: models.StatusIncomplete, Quick: true}},
		{"r", false, ReportMsg{ID: "h1", Status: models.StatusCompleted}},
		{"d", true, DeleteHabitMsg{ID: "h1"}},
		{"e", true, EditHabitMsg{Habit: h}},
		{"c", true, nil},
	}

	for _, tt := range tests {
		m := New([]models.Habit{h}, map[string]bool{"h1": tt.reported}, 80, 20)
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})

		var got tea.Msg
		if cmd != nil {
			got = cmd()
		}
		if tt.want == nil {
			if _, ok := got.(ReportMsg); ok {
				t.Errorf("key %q on reported habit emitted %+v", tt.key, got)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("key %q emitted %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestEmptyView(t *testing.T) {
	m := New(nil, nil, 80, 20)
	if got := m.View(); got != "\n  No habits yet.\n  Press 'a' to add one." {
		t.Errorf("View() = %q", got)
	}
}
