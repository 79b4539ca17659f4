package models

import (
	"fmt"
	"strings"
	"time"
)

// Cadence is how often a habit is expected to be performed
type Cadence string

const (
	CadenceDaily  Cadence = "daily"
	CadenceWeekly Cadence = "weekly"
)

// ParseCadence converts user input into a Cadence.
// "every_day" and "week" are accepted as aliases for older clients.
func ParseCadence(s string) (Cadence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "every_day":
		return CadenceDaily, nil
	case "weekly", "week":
		return CadenceWeekly, nil
	default:
		return "", fmt.Errorf("invalid cadence %q (expected daily or weekly)", s)
	}
}

func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly:
		return true
	default:
		return false
	}
}

func (c Cadence) String() string { return string(c) }

// Habit represents a recurring activity and its adherence streak
type Habit struct {
	ID        string    `json:"id"`
	Owner     string    `json:"-"`
	Title     string    `json:"title"`
	Purpose   string    `json:"purpose"`
	Cadence   Cadence   `json:"cadence"`
	Frequency int       `json:"frequency"`
	Streak    int       `json:"streak"`
	CreatedAt time.Time `json:"created_at"`
}

// OwnedBy reports whether the habit belongs to the given owner
func (h Habit) OwnedBy(owner string) bool {
	return h.Owner != "" && h.Owner == owner
}
