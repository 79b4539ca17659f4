// Package validation checks user input for habits and reports before it
// reaches the tracker. Every problem found is reported, not just the first.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

// FieldError describes one invalid field
type FieldError struct {
	Field   string
	Message string
	kind    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *FieldError) Unwrap() error { return e.kind }

// Fields returns the field errors contained in err, in the order they were found.
func Fields(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, Fields(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}

// ValidateHabit checks title, purpose, cadence and frequency.
func ValidateHabit(h models.Habit) error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Message: fmt.Sprintf(format, args...), kind: ErrInvalidHabit})
	}

	title := strings.TrimSpace(h.Title)
	switch {
	case title == "":
		bad("title", "must not be empty")
	case utf8.RuneCountInString(title) > constants.MaxTitleLength:
		bad("title", "must be at most %d characters", constants.MaxTitleLength)
	}

	if utf8.RuneCountInString(h.Purpose) > constants.MaxPurposeLength {
		bad("purpose", "must be at most %d characters", constants.MaxPurposeLength)
	}

	if !h.Cadence.Valid() {
		bad("cadence", "must be daily or weekly, got %q", h.Cadence)
	}

	if h.Frequency < constants.MinFrequency || h.Frequency > constants.MaxFrequency {
		bad("frequency", "must be between %d and %d, got %d", constants.MinFrequency, constants.MaxFrequency, h.Frequency)
	} else if h.Cadence == models.CadenceDaily && h.Frequency != 1 {
		bad("frequency", "daily habits must have a frequency of 1")
	}

	if h.Streak < 0 {
		bad("streak", "must not be negative")
	}

	return errors.Join(errs...)
}

// ValidateReport checks a user submission: only completed or incomplete may be
// chosen, and the comment is length-limited.
func ValidateReport(status models.Status, comment string) error {
	var errs []error
	if !status.Submittable() {
		errs = append(errs, &FieldError{
			Field:   "status",
			Message: fmt.Sprintf("must be %s or %s, got %q", models.StatusCompleted, models.StatusIncomplete, status),
			kind:    ErrInvalidReport,
		})
	}
	if utf8.RuneCountInString(comment) > constants.MaxCommentLength {
		errs = append(errs, &FieldError{
			Field:   "comment",
			Message: fmt.Sprintf("must be at most %d characters", constants.MaxCommentLength),
			kind:    ErrInvalidReport,
		})
	}
	return errors.Join(errs...)
}

// NormalizeHabit trims whitespace and forces daily habits to a frequency of 1
// when none was given.
func NormalizeHabit(h models.Habit) models.Habit {
	h.Title = strings.TrimSpace(h.Title)
	h.Purpose = strings.TrimSpace(h.Purpose)
	if h.Cadence == models.CadenceDaily && h.Frequency == 0 {
		h.Frequency = 1
	}
	return h
}
