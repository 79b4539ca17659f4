package tracker

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/engine"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

// SubmitResult describes everything one submission changed
type SubmitResult struct {
	Habit          models.Habit    `json:"habit"`
	Report         models.Report   `json:"report"`
	Backfilled     []models.Report `json:"backfilled"`
	PreviousStreak int             `json:"previous_streak"`
}

func (t *Tracker) todayString() string {
	return utils.FormatDay(t.Today())
}

// SubmitReport records today's outcome for a habit. Days skipped since the
// last report are backfilled as forgot_to_mark, the streak is re-evaluated
// over the filled history, and everything commits together or not at all.
func (t *Tracker) SubmitReport(owner, habitID string, status models.Status, comment string) (SubmitResult, error) {
	if err := validation.ValidateReport(status, comment); err != nil {
		return SubmitResult{}, err
	}

	today := t.Today()
	day := utils.FormatDay(today)
	stamp := t.now()

	var res SubmitResult
	err := t.store.WithTx(func(repo storage.Repository) error {
		habit, err := ownedHabit(repo, owner, habitID)
		if err != nil {
			return err
		}

		reports, err := repo.ListReports(habitID)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		if n := len(reports); n > 0 {
			last := reports[n-1]
			switch {
			case last.Day > day:
				return fmt.Errorf("%w (latest %s, today %s)", ErrReportAhead, last.Day, day)
			case last.Day == day:
				return fmt.Errorf("%w (%s)", ErrDuplicateDay, last.Day)
			}

			lastDay, err := utils.ParseDay(last.Day, t.loc)
			if err != nil {
				return err
			}
			for _, fill := range engine.Backfill(habitID, lastDay, today) {
				fill.ID = t.newID()
				fill.CreatedAt = stamp
				if err := repo.InsertReport(fill); err != nil {
					return fmt.Errorf("failed to backfill %s: %w", fill.Day, err)
				}
				res.Backfilled = append(res.Backfilled, fill)
			}
			if len(res.Backfilled) > 0 {
				if reports, err = repo.ListReports(habitID); err != nil {
					return fmt.Errorf("failed to reload history: %w", err)
				}
			}
		}

		streak, err := engine.Evaluate(habit, reports, status)
		if err != nil {
			return err
		}

		report := models.Report{
			ID:        t.newID(),
			HabitID:   habitID,
			Status:    status,
			Day:       day,
			Comment:   comment,
			CreatedAt: stamp,
		}
		if err := repo.InsertReport(report); err != nil {
			return err
		}

		res.PreviousStreak = habit.Streak
		habit.Streak = streak
		if err := repo.UpdateHabit(habit); err != nil {
			return fmt.Errorf("failed to persist streak: %w", err)
		}

		res.Habit = habit
		res.Report = report
		return nil
	})
	if err != nil {
		return SubmitResult{}, err
	}

	logger.Info("report submitted",
		"habit", habitID,
		"status", status,
		"day", day,
		"backfilled", len(res.Backfilled),
		"streak", res.Habit.Streak,
		"previous", res.PreviousStreak,
	)
	return res, nil
}
