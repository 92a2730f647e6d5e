package submission

import "errors"

// Sentinel kinds for state machine errors.
var (
	ErrAlreadyAssigned  = errors.New("submission already assigned to another evaluator")
	ErrAlreadyCompleted = errors.New("submission already completed")
)
