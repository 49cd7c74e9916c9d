package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/taskboard/internal/models"
)

func TestParseValid(t *testing.T) {
	body := []byte(`{
		"id": "t-1",
		"title": "Write migration",
		"description": "before friday",
		"endDate": "2026-03-01T18:00:00Z",
		"priority": "HIGH",
		"status": "in_progress",
		"projectId": "p-9"
	}`)

	n, err := Parse(body)
	require.NoError(t, err)
	assert.Equal(t, models.TaskID("t-1"), n.ID)
	assert.Equal(t, "Write migration", n.Title)
	assert.Equal(t, "before friday", n.Description)
	assert.Equal(t, models.PriorityHigh, n.Priority)
	assert.Equal(t, "in_progress", n.Status)
	assert.Equal(t, "p-9", n.ProjectID)
	assert.True(t, n.EndDate.Equal(time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)))
}

func TestParseNumericIDsAndLocalDate(t *testing.T) {
	n, err := Parse([]byte(`{"id": 12345678901234567, "title": "x", "endDate": "2026-03-01T18:00:00", "priority": "LOW", "projectId": 7, "description": null}`))
	require.NoError(t, err)
	assert.Equal(t, models.TaskID("12345678901234567"), n.ID)
	assert.Equal(t, "7", n.ProjectID)
	assert.Empty(t, n.Description)
	assert.Equal(t, time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC), n.EndDate)
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
	}{
		{"not json", `{"id":`, ""},
		{"not an object", `[1,2]`, ""},
		{"missing title", `{"id":"1","endDate":"2026-03-01T18:00:00Z","priority":"LOW"}`, ""},
		{"bad priority", `{"id":"1","title":"x","endDate":"2026-03-01T18:00:00Z","priority":"URGENT"}`, "priority"},
		{"fractional id", `{"id":1.5,"title":"x","endDate":"2026-03-01T18:00:00Z","priority":"LOW"}`, "id"},
		{"empty id", `{"id":"","title":"x","endDate":"2026-03-01T18:00:00Z","priority":"LOW"}`, "id"},
		{"date not a date", `{"id":"1","title":"x","endDate":"tomorrow","priority":"LOW"}`, "endDate"},
		{"impossible date", `{"id":"1","title":"x","endDate":"2026-13-45T99:99:00Z","priority":"LOW"}`, "endDate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.body))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			if tt.path != "" {
				assert.Equal(t, tt.path, perr.Path)
			}
			assert.Contains(t, perr.Error(), "malformed notification")
		})
	}
}

func TestHistoryKeepsNewestTen(t *testing.T) {
	h := NewHistory(models.NotificationHistorySize)

	for i := 0; i < 13; i++ {
		h.Add(models.TaskNotification{ID: models.TaskID(rune('a' + i))})
	}

	items := h.Items()
	require.Len(t, items, 10)
	assert.Equal(t, models.TaskID("m"), items[0].ID)
	assert.Equal(t, models.TaskID("d"), items[9].ID)

	items[0].ID = "mutated"
	assert.Equal(t, models.TaskID("m"), h.Items()[0].ID)

	h.Clear()
	assert.Zero(t, h.Len())
}

func TestHistoryDefaultsSize(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < 20; i++ {
		h.Add(models.TaskNotification{})
	}
	assert.Equal(t, models.NotificationHistorySize, h.Len())
}
