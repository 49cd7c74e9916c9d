package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thenoetrevino/taskboard/internal/auth"
	"gopkg.in/yaml.v3"
)

var (
	ErrNoAPIURL  = errors.New("api_url is not configured (set it in config.yaml or TASKBOARD_API_URL)")
	ErrNoProject = errors.New("project_id is not configured (set it in config.yaml or TASKBOARD_PROJECT)")
)

// Config represents the application configuration
type Config struct {
	APIURL    string `yaml:"api_url"`
	WSURL     string `yaml:"ws_url"`
	ProjectID string `yaml:"project_id"`

	// Credentials. Token wins over TokenFile.
	Token     string `yaml:"token,omitempty"`
	TokenFile string `yaml:"token_file,omitempty"`

	// Notification topic; UserID defaults to the token's subject
	UserID         string        `yaml:"user_id,omitempty"`
	TopicTemplate  string        `yaml:"topic_template"`
	ReconnectDelay time.Duration `yaml:"reconnect_delay"`

	PollSchedule   string        `yaml:"poll_schedule"`
	PersistTimeout time.Duration `yaml:"persist_timeout"`

	LogLevel     string `yaml:"log_level"`
	DatabasePath string `yaml:"database_path,omitempty"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`

	path string
}

// Default returns a config with every default applied
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load loads config from the user's config directory, then applies
// TASKBOARD_* environment overrides.
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := Path()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from a specific file. A missing file yields defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
		}
	}

	cfg.path = configPath
	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

// Save saves the config to the file it was loaded from, or to the user's
// config directory
func (c *Config) Save() error {
	configPath := c.path
	if configPath == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	// may hold a token
	return os.WriteFile(configPath, data, 0o600)
}

// Validate reports settings the API commands cannot run without
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrNoAPIURL
	}
	if c.ProjectID == "" {
		return ErrNoProject
	}
	return nil
}

// Tokens returns the configured bearer credential, or nil when none is set
func (c *Config) Tokens() auth.TokenProvider {
	switch {
	case c.Token != "":
		return auth.StaticToken(c.Token)
	case c.TokenFile != "":
		return auth.FileToken{Path: c.TokenFile}
	default:
		return nil
	}
}

// Path returns the path to the config file
func Path() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "taskboard", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "taskboard", "config.yaml"), nil
}

// applyEnv overrides file settings with TASKBOARD_* variables
func (c *Config) applyEnv() {
	overrides := []struct {
		env   string
		field *string
	}{
		{"TASKBOARD_API_URL", &c.APIURL},
		{"TASKBOARD_WS_URL", &c.WSURL},
		{"TASKBOARD_PROJECT", &c.ProjectID},
		{"TASKBOARD_TOKEN", &c.Token},
		{"TASKBOARD_TOKEN_FILE", &c.TokenFile},
		{"TASKBOARD_USER_ID", &c.UserID},
		{"TASKBOARD_LOG_LEVEL", &c.LogLevel},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.field = v
		}
	}
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.TopicTemplate == "" {
		c.TopicTemplate = "/topic/deadline-reminders/{userId}"
	}
	if c.ReconnectDelay <= 0 {
		c.ReconnectDelay = 5 * time.Second
	}
	if c.PollSchedule == "" {
		c.PollSchedule = "@every 30s"
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = 30 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.ApplyDefaults()
}
