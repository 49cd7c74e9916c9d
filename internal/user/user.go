package user

import (
	"os"
	"os/user"
	"strings"
)

// Current returns a topic-safe name for the user running the process.
// It tries user.Current, then $USER, then falls back to "dev".
func Current() string {
	name := ""
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	if name == "" {
		name = os.Getenv("USER")
	}
	// DOMAIN\name on Windows
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "dev"
	}
	return name
}
