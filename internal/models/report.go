package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
)

// Status is the outcome recorded by a report
type Status string

const (
	StatusCompleted  Status = "completed"
	StatusIncomplete Status = "incomplete"
	// StatusForgotToMark is never chosen by a user; it marks backfilled days.
	StatusForgotToMark Status = "forgot_to_mark"
)

// ParseStatus converts stored or submitted text into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, nil
	case StatusIncomplete:
		return StatusIncomplete, nil
	case StatusForgotToMark:
		return StatusForgotToMark, nil
	default:
		return "", fmt.Errorf("invalid status %q", s)
	}
}

func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusIncomplete, StatusForgotToMark:
		return true
	default:
		return false
	}
}

// Submittable reports whether a user may choose this status for a new report
func (s Status) Submittable() bool {
	switch s {
	case StatusCompleted, StatusIncomplete:
		return true
	case StatusForgotToMark:
		return false
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Report is one record of a habit's outcome on a given day
type Report struct {
	ID        string    `json:"id"`
	HabitID   string    `json:"habit_id"`
	Status    Status    `json:"status"`
	Day       string    `json:"day"` // YYYY-MM-DD format
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Block is a fixed-size evaluation window over a weekly habit's reports
type Block struct {
	Index     int      `json:"index"`
	Completed int      `json:"completed"`
	Reports   []Report `json:"reports"`
}

// Size returns the number of reports in the block
func (b Block) Size() int { return len(b.Reports) }

// Full reports whether the block holds a complete window of reports
func (b Block) Full() bool { return len(b.Reports) == constants.BlockSize }
