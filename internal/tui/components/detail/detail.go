package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(12)

	commentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	blockStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	statusStyles = map[models.Status]lipgloss.Style{
		models.StatusCompleted:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		models.StatusIncomplete:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.StatusForgotToMark: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
)

type Model struct {
	viewport viewport.Model
	Detail   *tracker.Detail
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Detail == nil {
		return "No habit selected."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
}

func (m *Model) SetDetail(d tracker.Detail) {
	m.Detail = &d
	m.viewport.SetContent(Render(d))
	m.viewport.GotoTop()
}

// Render draws a habit header followed by its history: weekly habits as
// evaluation blocks, daily habits as one line per report.
func Render(d tracker.Detail) string {
	var b strings.Builder
	h := d.Habit

	b.WriteString(titleStyle.Render(h.Title))
	b.WriteString("\n")
	if h.Purpose != "" {
		b.WriteString(commentStyle.Render(h.Purpose))
		b.WriteString("\n")
	}
	cadence := "daily"
	if h.Cadence == models.CadenceWeekly {
		cadence = fmt.Sprintf("weekly, %d of %d", h.Frequency, constants.BlockSize)
	}
	fmt.Fprintf(&b, "%s | streak %d\n\n", cadence, h.Streak)

	if len(d.Reports) == 0 {
		b.WriteString("No reports yet.")
		return b.String()
	}

	if h.Cadence == models.CadenceWeekly {
		for _, blk := range d.Blocks {
			header := fmt.Sprintf("Week %d: %d/%d completed", blk.Index+1, blk.Completed, h.Frequency)
			if !blk.Full() {
				header += fmt.Sprintf(" (open, %d/%d days)", blk.Size(), constants.BlockSize)
			}
			b.WriteString(blockStyle.Render(header + "\n" + reportLines(blk.Reports)))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(reportLines(d.Reports))
	return b.String()
}

func reportLines(reports []models.Report) string {
	lines := make([]string, 0, len(reports))
	for _, r := range reports {
		line := dayStyle.Render(r.Day) + " " + statusStyles[r.Status].Render(r.Status.String())
		if r.Comment != "" {
			line += " " + commentStyle.Render(r.Comment)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
