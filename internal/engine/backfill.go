// Package engine holds the habit-adherence accounting rules: gap backfilling,
// weekly window partitioning and streak evaluation. Everything here is a pure
// function of its inputs; persistence is the caller's job.
package engine

import (
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/utils"
)

// MissingDays returns every calendar day strictly between last and today,
// oldest first. A gap of less than two days yields nothing.
func MissingDays(last, today time.Time) []time.Time {
	gap := utils.DaysBetween(last, today)
	if gap < 2 {
		return nil
	}

	start := utils.StartOfDay(last)
	days := make([]time.Time, 0, gap-1)
	for i := 1; i < gap; i++ {
		days = append(days, utils.AddDays(start, i))
	}
	return days
}

// Backfill builds the placeholder reports for days skipped between the most
// recent report and today. The returned reports carry no ID or CreatedAt.
func Backfill(habitID string, last, today time.Time) []models.Report {
	days := MissingDays(last, today)
	if len(days) == 0 {
		return nil
	}

	reports := make([]models.Report, 0, len(days))
	for _, day := range days {
		reports = append(reports, models.Report{
			HabitID: habitID,
			Status:  models.StatusForgotToMark,
			Day:     utils.FormatDay(day),
			Comment: constants.BackfillComment,
		})
	}
	return reports
}
