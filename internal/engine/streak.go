package engine

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// Evaluate decides the streak that results from adding a report with the
// candidate status to existing (oldest first, candidate not included).
func Evaluate(habit models.Habit, existing []models.Report, candidate models.Status) (int, error) {
	if !candidate.Submittable() {
		return habit.Streak, fmt.Errorf("%w: %q", ErrInvalidCandidate, candidate)
	}

	switch habit.Cadence {
	case models.CadenceDaily:
		return evaluateDaily(habit.Streak, existing, candidate), nil
	case models.CadenceWeekly:
		return evaluateWeekly(habit.Streak, habit.Frequency, existing, candidate), nil
	default:
		return habit.Streak, fmt.Errorf("%w: %q", ErrUnknownCadence, habit.Cadence)
	}
}

func evaluateDaily(streak int, existing []models.Report, candidate models.Status) int {
	last, ok := lastSubmitted(existing)
	if !ok {
		if candidate == models.StatusCompleted {
			return 1
		}
		return streak
	}

	switch last.Status {
	case models.StatusCompleted:
		if candidate == models.StatusCompleted {
			return streak + 1
		}
		return 0
	default:
		return 0
	}
}

// evaluateWeekly increments the streak when a window closes with enough
// completions. An incomplete candidate is checked against the trailing
// block's count whether or not that block is full, and there is no reset path.
func evaluateWeekly(streak, frequency int, existing []models.Report, candidate models.Status) int {
	size, completed := LastBlock(existing)

	switch {
	case size+1 == constants.BlockSize && candidate == models.StatusCompleted:
		if completed+1 >= frequency {
			return streak + 1
		}
		return streak
	case candidate != models.StatusCompleted:
		if completed >= frequency {
			return streak + 1
		}
		return streak
	default:
		return streak
	}
}

// lastSubmitted returns the most recent report a user actually submitted.
// Backfilled placeholders fill gaps but never count as the last outcome.
func lastSubmitted(reports []models.Report) (models.Report, bool) {
	for i := len(reports) - 1; i >= 0; i-- {
		if reports[i].Status != models.StatusForgotToMark {
			return reports[i], true
		}
	}
	return models.Report{}, false
}
