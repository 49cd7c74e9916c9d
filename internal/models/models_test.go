package models

import (
	"errors"
	"testing"
)

// ============================================================================
// Status Tests
// ============================================================================

func TestStatuses_FixedOrder(t *testing.T) {
	want := []Status{"backlog", "todo", "in_progress", "review", "done"}
	if len(Statuses) != len(want) {
		t.Fatalf("Expected %d statuses, got %d", len(want), len(Statuses))
	}
	for i, st := range want {
		if Statuses[i] != st {
			t.Errorf("Statuses[%d] = %q, want %q", i, Statuses[i], st)
		}
		if st.Index() != i {
			t.Errorf("%q.Index() = %d, want %d", st, st.Index(), i)
		}
	}
}

func TestStatus_Valid(t *testing.T) {
	tests := []struct {
		status Status
		valid  bool
	}{
		{StatusBacklog, true},
		{StatusDone, true},
		{"archived", false},
		{"", false},
		{"TODO", false},
	}

	for _, tt := range tests {
		if got := tt.status.Valid(); got != tt.valid {
			t.Errorf("Status(%q).Valid() = %v, want %v", tt.status, got, tt.valid)
		}
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input string
		want  Status
		err   error
	}{
		{"todo", StatusTodo, nil},
		{"In Progress", StatusInProgress, nil},
		{" in_progress ", StatusInProgress, nil},
		{"DONE", StatusDone, nil},
		{"someday", "", ErrUnknownStatus},
	}

	for _, tt := range tests {
		got, err := ParseStatus(tt.input)
		if !errors.Is(err, tt.err) {
			t.Errorf("ParseStatus(%q) error = %v, want %v", tt.input, err, tt.err)
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestStatus_TitleFallsBackToIdentifier(t *testing.T) {
	if got := Status("archived").Title(); got != "archived" {
		t.Errorf("Expected raw identifier for unknown status, got %q", got)
	}
	if got := StatusReview.Title(); got != "Review" {
		t.Errorf("Expected 'Review', got %q", got)
	}
}

// ============================================================================
// Priority Tests
// ============================================================================

func TestParsePriority(t *testing.T) {
	for _, in := range []string{"low", "Medium", "HIGH"} {
		if _, err := ParsePriority(in); err != nil {
			t.Errorf("ParsePriority(%q) unexpected error: %v", in, err)
		}
	}
	if _, err := ParsePriority("urgent"); !errors.Is(err, ErrUnknownPriority) {
		t.Errorf("Expected ErrUnknownPriority, got %v", err)
	}
}

func TestPriority_Color(t *testing.T) {
	if PriorityHigh.Color() == PriorityLow.Color() {
		t.Error("Expected distinct colors for HIGH and LOW")
	}
	if Priority("").Color() != "#6B7280" {
		t.Error("Expected neutral color for empty priority")
	}
}

func TestTopic(t *testing.T) {
	if got := Topic("", "u1"); got != "/topic/deadline-reminders/u1" {
		t.Errorf("Expected default template expansion, got %q", got)
	}
	if got := Topic("/user/{userId}/queue/reminders", "abc"); got != "/user/abc/queue/reminders" {
		t.Errorf("Unexpected expansion: %q", got)
	}
}
