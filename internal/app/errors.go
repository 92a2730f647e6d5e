package service

import "errors"

// Sentinel kinds for orchestrator errors.
var (
	// ErrGradeRequired means neither an explicit overall grade nor a
	// rubric response was supplied. Stricter than the engine's own
	// neutral fallback, which only applies once a definition is found.
	ErrGradeRequired = errors.New("overallGrade is required when rubric is not provided")

	// ErrInvalidGrade means an explicit overall grade fell outside [1, 10].
	ErrInvalidGrade = errors.New("overallGrade must be between 1 and 10")

	// ErrForbidden means the caller's role or ownership does not allow
	// the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidForm means a submitted rubric definition is unusable.
	ErrInvalidForm = errors.New("invalid evaluation form")
)
