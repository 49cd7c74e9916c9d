package models

import "errors"

var (
	// ErrUnknownStatus indicates a status that is not one of the configured columns
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownPriority indicates a priority outside LOW, MEDIUM, HIGH
	ErrUnknownPriority = errors.New("unknown priority")
)
