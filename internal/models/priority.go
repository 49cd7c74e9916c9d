package models

import "strings"

// Priority is the urgency of a task or notification
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Color returns the hex color used to render p
func (p Priority) Color() string {
	switch p {
	case PriorityLow:
		return "#22C55E"
	case PriorityMedium:
		return "#EAB308"
	case PriorityHigh:
		return "#EF4444"
	default:
		return "#6B7280"
	}
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), b)
}

// ParsePriority resolves a priority name (case-insensitive)
func ParsePriority(v string) (Priority, error) {
	p := Priority(strings.ToUpper(strings.TrimSpace(v)))
	if !p.Valid() {
		return "", ErrUnknownPriority
	}
	return p, nil
}
