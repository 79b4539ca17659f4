package validation

import "errors"

var (
	ErrInvalidHabit  = errors.New("invalid habit")
	ErrInvalidReport = errors.New("invalid report")
)
