package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/taskboard/internal/models"
)

var (
	ErrUsage        = errors.New("invalid usage")
	ErrNoNextColumn = errors.New("task is already in the last column")
	ErrNoPrevColumn = errors.New("task is already in the first column")
)

// ResolveTarget turns a move target into a column. Targets are "next",
// "prev" or a column name in any of its spellings ("In Progress",
// "in_progress").
func ResolveTarget(current models.Status, target string) (models.Status, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "next":
		i := current.Index()
		if i < 0 || i+1 >= len(models.Statuses) {
			return "", ErrNoNextColumn
		}
		return models.Statuses[i+1], nil
	case "prev", "previous":
		i := current.Index()
		if i <= 0 {
			return "", ErrNoPrevColumn
		}
		return models.Statuses[i-1], nil
	default:
		return models.ParseStatus(target)
	}
}

// DropIndex picks the target index for a move. A negative requested index
// means the end of the column: after the last task of another column, or
// the last slot when reordering within the same column.
func DropIndex(from, to models.Status, targetLen, requested int) int {
	if requested >= 0 {
		return requested
	}
	if from == to {
		return max(targetLen-1, 0)
	}
	return targetLen
}

// FormatAvailableColumns lists the configured columns for error hints
func FormatAvailableColumns() string {
	names := make([]string, len(models.Statuses))
	for i, st := range models.Statuses {
		names[i] = fmt.Sprintf("%s (%s)", st.Title(), st)
	}
	return strings.Join(names, ", ")
}
