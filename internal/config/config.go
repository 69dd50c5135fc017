package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default pomodoro interval lengths, in minutes
const (
	DefaultFocusMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// Config holds user-level settings loaded from ~/.studytrack/config.yaml
type Config struct {
	User              string `yaml:"user"`
	DataDir           string `yaml:"data_dir"`
	FocusMinutes      int    `yaml:"focus_minutes"`
	ShortBreakMinutes int    `yaml:"short_break_minutes"`
	LongBreakMinutes  int    `yaml:"long_break_minutes"`
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	return &Config{
		User:              "default",
		FocusMinutes:      DefaultFocusMinutes,
		ShortBreakMinutes: DefaultShortBreakMinutes,
		LongBreakMinutes:  DefaultLongBreakMinutes,
	}
}

// Load reads the config file from the studytrack directory, falling
// back to defaults when the file is missing. A present file only
// overrides the fields it sets.
func Load() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	return LoadFrom(filepath.Join(dir, "config.yaml"))
}

// LoadFrom reads a config file from an explicit path
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Re-apply defaults for fields the file zeroed or omitted
	if cfg.User == "" {
		cfg.User = "default"
	}
	if cfg.FocusMinutes <= 0 {
		cfg.FocusMinutes = DefaultFocusMinutes
	}
	if cfg.ShortBreakMinutes <= 0 {
		cfg.ShortBreakMinutes = DefaultShortBreakMinutes
	}
	if cfg.LongBreakMinutes <= 0 {
		cfg.LongBreakMinutes = DefaultLongBreakMinutes
	}

	return cfg, nil
}

// Dir returns the studytrack dotdir, honoring a DataDir override
func Dir() (string, error) {
	if dir := os.Getenv("STUDYTRACK_DIR"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".studytrack"), nil
}

// DatabasePath returns the sqlite file location for this config
func (c *Config) DatabasePath() (string, error) {
	if c.DataDir != "" {
		return filepath.Join(c.DataDir, "studytrack.db"), nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "studytrack.db"), nil
}
