package user

import (
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	name := Current()
	if name == "" {
		t.Fatal("Expected a non-empty user name")
	}
	if strings.ContainsAny(name, `\/`) {
		t.Errorf("Expected a topic-safe name, got %q", name)
	}
}

func TestCurrentFallsBackToEnv(t *testing.T) {
	t.Setenv("USER", "")
	if Current() == "" {
		t.Error("Expected a fallback name")
	}
}
