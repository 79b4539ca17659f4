package engine

import "errors"

var (
	ErrInvalidCandidate = errors.New("candidate status must be completed or incomplete")
	ErrUnknownCadence   = errors.New("unknown habit cadence")
)
