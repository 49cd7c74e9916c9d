package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"time"
)

var (
	ErrUnknownPreference = errors.New("unknown preference")
	ErrInvalidValue      = errors.New("invalid preference value")
)

const (
	KeyTheme  = "theme"
	KeyLocale = "locale"
)

var localePattern = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{2,8})*$`)

type preferenceSpec struct {
	def      string
	validate func(string) bool
}

var preferenceSpecs = map[string]preferenceSpec{
	KeyTheme: {
		def: "system",
		validate: func(v string) bool {
			return slices.Contains([]string{"light", "dark", "system"}, v)
		},
	},
	KeyLocale: {
		def:      "en",
		validate: localePattern.MatchString,
	},
}

// Preference is one stored or defaulted setting
type Preference struct {
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	IsDefault bool       `json:"is_default"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// PreferenceKeys lists the known keys in display order
func PreferenceKeys() []string {
	return []string{KeyTheme, KeyLocale}
}

// Preferences is the key-value store of UI preferences
type Preferences struct {
	db *sql.DB
}

func NewPreferences(db *sql.DB) *Preferences {
	return &Preferences{db: db}
}

// Get returns the stored value of key, or its default
func (p *Preferences) Get(ctx context.Context, key string) (Preference, error) {
	spec, ok := preferenceSpecs[key]
	if !ok {
		return Preference{}, fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}

	var value, updatedAt string
	err := p.db.QueryRowContext(ctx,
		"SELECT value, updated_at FROM preferences WHERE key = ?", key,
	).Scan(&value, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Preference{Key: key, Value: spec.def, IsDefault: true}, nil
	}
	if err != nil {
		return Preference{}, fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	pref := Preference{Key: key, Value: value}
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		pref.UpdatedAt = &t
	}
	return pref, nil
}

// Set validates and stores value for key
func (p *Preferences) Set(ctx context.Context, key, value string) error {
	spec, ok := preferenceSpecs[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	if !spec.validate(value) {
		return fmt.Errorf("%w for %s: %q", ErrInvalidValue, key, value)
	}

	_, err := p.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Reset removes the stored value so the default applies again
func (p *Preferences) Reset(ctx context.Context, key string) error {
	if _, ok := preferenceSpecs[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPreference, key)
	}
	if _, err := p.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to reset preference %s: %w", key, err)
	}
	return nil
}

// List returns every known preference
func (p *Preferences) List(ctx context.Context) ([]Preference, error) {
	out := make([]Preference, 0, len(preferenceSpecs))
	for _, key := range PreferenceKeys() {
		pref, err := p.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, pref)
	}
	return out, nil
}
