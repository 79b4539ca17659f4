package cli

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/models"
)

type ReportCmd struct {
	HabitID string `arg:"" help:"Habit ID."`
	Status  string `help:"completed or incomplete." enum:"completed,incomplete" default:"completed"`
	Comment string `help:"Optional comment (up to 100 characters)."`
}

func (c *ReportCmd) Run(ctx *Context) error {
	owner, err := ctx.RequireOwner()
	if err != nil {
		return err
	}
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}

	res, err := ctx.Tracker.SubmitReport(owner, c.HabitID, status, c.Comment)
	if err != nil {
		return err
	}

	if n := len(res.Backfilled); n > 0 {
		fmt.Printf("Marked %d missed day(s) as %s (%s to %s).\n",
			n, models.StatusForgotToMark, res.Backfilled[0].Day, res.Backfilled[n-1].Day)
	}
	fmt.Printf("Reported %s for %s on %s.\n", status, res.Habit.Title, res.Report.Day)
	switch {
	case res.Habit.Streak > res.PreviousStreak:
		fmt.Printf("Streak: %d → %d\n", res.PreviousStreak, res.Habit.Streak)
	case res.Habit.Streak < res.PreviousStreak:
		fmt.Printf("Streak reset: %d → %d\n", res.PreviousStreak, res.Habit.Streak)
	default:
		fmt.Printf("Streak: %d\n", res.Habit.Streak)
	}
	return nil
}
