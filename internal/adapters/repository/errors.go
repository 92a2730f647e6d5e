package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound        = errors.New("record not found")
	ErrReportExists    = errors.New("evaluation report already exists for submission")
	ErrAlreadyAssigned = errors.New("submission already assigned to another evaluator")
	ErrCompleted       = errors.New("submission already completed")
)
