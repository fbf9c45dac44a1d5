package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds user preferences
type Config struct {
	DataDir       string `yaml:"data_dir" json:"data_dir" env:"EXAMPREP_DATA_DIR"`                // Directory holding the database
	Storage       string `yaml:"storage" json:"storage" env:"EXAMPREP_STORAGE"`                   // Backend: sqlite or bolt
	ConfirmDelete bool   `yaml:"confirm_delete" json:"confirm_delete"`                            // Require confirmation for delete
	FocusMinutes  int    `yaml:"focus_minutes" json:"focus_minutes" env:"EXAMPREP_FOCUS_MINUTES"` // Focus phase length
	BreakMinutes  int    `yaml:"break_minutes" json:"break_minutes" env:"EXAMPREP_BREAK_MINUTES"` // Break phase length
	ReminderHour  int    `yaml:"reminder_hour" json:"reminder_hour"`                              // Calendar reminder offset from midnight
	ServerAddr    string `yaml:"server_addr" json:"server_addr" env:"EXAMPREP_ADDR"`              // Listen address of examprep-server

	// Logging configuration
	LogLevel   string `yaml:"log_level" json:"log_level" env:"EXAMPREP_LOG_LEVEL"`       // Log level: DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" json:"log_file" env:"EXAMPREP_LOG_FILE"`          // Path to log file
	LogConsole bool   `yaml:"log_console" json:"log_console" env:"EXAMPREP_LOG_CONSOLE"` // Enable console logging

	path string
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	dir := baseDir()
	logPath := ""
	if dir != "" {
		logPath = filepath.Join(dir, "logs", "examprep.log")
	}

	return &Config{
		DataDir:       dir,
		Storage:       "sqlite",
		ConfirmDelete: true,
		FocusMinutes:  25,
		BreakMinutes:  5,
		ReminderHour:  9,
		ServerAddr:    "127.0.0.1:8080",
		LogLevel:      "INFO",
		LogFile:       logPath,
		LogConsole:    false,
	}
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".examprep")
}

// DefaultPath returns ~/.examprep/config.yaml
func DefaultPath() (string, error) {
	dir := baseDir()
	if dir == "" {
		return "", fmt.Errorf("failed to get home directory")
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load loads config from ~/.examprep/config.yaml
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads a config file, falling back to defaults when it doesn't
// exist, then applies EXAMPREP_* environment overrides
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults if no config
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.FocusMinutes <= 0 {
		c.FocusMinutes = def.FocusMinutes
	}
	if c.BreakMinutes <= 0 {
		c.BreakMinutes = def.BreakMinutes
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		c.ReminderHour = def.ReminderHour
	}
	if c.Storage == "" {
		c.Storage = def.Storage
	}
	if c.DataDir == "" {
		c.DataDir = def.DataDir
	}
}

// Save saves config back to the file it was loaded from (default path otherwise)
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
