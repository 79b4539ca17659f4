package tui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/models"
)

type HabitFormModel struct {
	Title     string
	Purpose   string
	Cadence   models.Cadence
	Frequency string
}

type ReportFormModel struct {
	Status  models.Status
	Comment string
}

func maxLength(field string, limit int) func(string) error {
	return func(s string) error {
		if utf8.RuneCountInString(strings.TrimSpace(s)) > limit {
			return fmt.Errorf("%s must be at most %d characters", field, limit)
		}
		return nil
	}
}

func validateFrequency(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("frequency must be a number")
	}
	if n < constants.MinFrequency || n > constants.MaxFrequency {
		return fmt.Errorf("frequency must be between %d and %d", constants.MinFrequency, constants.MaxFrequency)
	}
	return nil
}

// NewHabitForm builds the add/edit form. Editing shows a warning because
// cadence and frequency changes clear the habit's history.
func NewHabitForm(fm *HabitFormModel, editing bool) *huh.Form {
	frequencyHelp := "Completions needed per 7-day window (daily habits use 1)"
	if editing {
		frequencyHelp = "Changing cadence or frequency clears all reports and the streak"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return maxLength("title", constants.MaxTitleLength)(s)
				}),
			huh.NewInput().
				Title("Purpose").
				Value(&fm.Purpose).
				Validate(maxLength("purpose", constants.MaxPurposeLength)),
			huh.NewSelect[models.Cadence]().
				Title("Cadence").
				Options(
					huh.NewOption("Daily", models.CadenceDaily),
					huh.NewOption("Weekly", models.CadenceWeekly),
				).
				Value(&fm.Cadence),
			huh.NewInput().
				Title("Frequency").
				Description(frequencyHelp).
				Value(&fm.Frequency).
				Validate(validateFrequency),
		),
	)
}

func NewReportForm(fm *ReportFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[models.Status]().
				Title("How did it go today?").
				Options(
					huh.NewOption("Completed", models.StatusCompleted),
					huh.NewOption("Incomplete", models.StatusIncomplete),
				).
				Value(&fm.Status),
			huh.NewInput().
				Title("Comment").
				Value(&fm.Comment).
				Validate(maxLength("comment", constants.MaxCommentLength)),
		),
	)
}

func (fm *HabitFormModel) frequency() int {
	n, _ := strconv.Atoi(strings.TrimSpace(fm.Frequency))
	if fm.Cadence == models.CadenceDaily {
		return 1
	}
	return n
}
