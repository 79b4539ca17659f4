package engine

import "github.com/julianstephens/habitlog/internal/models"

// RequiresReset reports whether an edit invalidates the habit's history.
// Changing cadence or frequency makes old windows incomparable; title and
// purpose edits never do.
func RequiresReset(old, updated models.Habit) bool {
	return old.Cadence != updated.Cadence || old.Frequency != updated.Frequency
}
