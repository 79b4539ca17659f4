package tracker

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateDay is returned when the habit already has a report for today
	ErrDuplicateDay  = errors.New("habit already reported today")
	ErrOwnerRequired = errors.New("owner is required")
)

// ErrReportAhead means the latest report is dated after today, usually because
// the clock or timezone moved backwards. It matches ErrDuplicateDay.
var ErrReportAhead = fmt.Errorf("%w: latest report is dated after today", ErrDuplicateDay)
