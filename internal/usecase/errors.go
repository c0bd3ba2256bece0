package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Assignment invariant violations. Always surfaced to the caller,
	// never silently coerced.
	ErrSelectorAlreadyAssigned = errors.New("selector already has a match this week")
	ErrMatchAlreadyTaken       = errors.New("match already claimed by another selector")
	ErrUnknownMatch            = errors.New("match is not in this week's catalog")
	ErrUnknownSelector         = errors.New("selector is not on the panel")
	ErrNotAssigned             = errors.New("selector has no match to unassign")
)
