package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/detail"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List your habits."`
	Show   HabitShowCmd   `cmd:"" help:"Show a habit and its report history."`
	Edit   HabitEditCmd   `cmd:"" help:"Edit a habit. Changing cadence or frequency clears its history."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and all of its reports."`
}

type HabitAddCmd struct {
	Title     string `arg:"" help:"Habit title."`
	Purpose   string `help:"Why you are building this habit."`
	Cadence   string `help:"daily or weekly." default:"daily"`
	Frequency int    `help:"Completions needed per 7-day window (weekly habits)." default:"1"`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}
	cadence, err := models.ParseCadence(c.Cadence)
	if err != nil {
		return err
	}

	habit, err := ctx.Tracker.CreateHabit(owner, tracker.HabitInput{
		Title:     c.Title,
		Purpose:   c.Purpose,
		Cadence:   cadence,
		Frequency: c.Frequency,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (%s)\n", habit.Title, habit.ID)
	return nil
}

var (
	headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell       = lipgloss.NewStyle().Padding(0, 1)
)

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}

	habits, err := ctx.Tracker.ListHabits(owner)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	rows := make([][]string, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, []string{h.ID, h.Title, FormatCadence(h), strconv.Itoa(h.Streak)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		}).
		Headers("ID", "TITLE", "CADENCE", "STREAK").
		Rows(rows...)

	fmt.Println(t)
	return nil
}

type HabitShowCmd struct {
	ID string `arg:"" help:"Habit ID."`
}

func (c *HabitShowCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}

	d, err := ctx.Tracker.HabitDetail(owner, c.ID)
	if err != nil {
		return err
	}

	fmt.Println(detail.Render(d))
	if d.ReportedToday {
		fmt.Println("\nReported today.")
	}
	return nil
}

type HabitEditCmd struct {
	ID        string  `arg:"" help:"Habit ID."`
	Title     *string `help:"New title."`
	Purpose   *string `help:"New purpose."`
	Cadence   *string `help:"New cadence (daily or weekly). Clears history."`
	Frequency *int    `help:"New weekly frequency. Clears history."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}

	patch := tracker.HabitPatch{Title: c.Title, Purpose: c.Purpose, Frequency: c.Frequency}
	if c.Cadence != nil {
		cadence, err := models.ParseCadence(*c.Cadence)
		if err != nil {
			return err
		}
		patch.Cadence = &cadence
	}

	res, err := ctx.Tracker.UpdateHabit(owner, c.ID, patch)
	if err != nil {
		return err
	}

	fmt.Printf("Updated habit: %s\n", res.Habit.Title)
	if res.Reset {
		fmt.Printf("Cadence or frequency changed: removed %d report(s) and reset the streak.\n", res.Purged)
	}
	return nil
}

type HabitDeleteCmd struct {
	ID  string `arg:"" help:"Habit ID."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}

	habit, err := ctx.Tracker.GetHabit(owner, c.ID)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Delete %q and all of its reports?", habit.Title)).
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup("habit-delete")
	if err := ctx.Tracker.DeleteHabit(owner, c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted habit: %s\n", habit.Title)
	return nil
}
