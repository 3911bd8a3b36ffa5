// Package config provides layered configuration for helpdesk.
// Configuration is loaded from multiple sources with the following precedence:
// embedded defaults → global file → .env and env vars → local file → CLI flags
package config

import (
	"embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alexander-akhmetov/helpdesk/internal/dirs"
)

//go:embed defaults/config.yaml
var defaultsFS embed.FS

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token"`
	Timeout int    `yaml:"timeout"` // seconds

	TimeoutSet bool `yaml:"-"`
}

// DashboardConfig controls the polling panels.
type DashboardConfig struct {
	RefreshInterval int `yaml:"refresh_interval"` // seconds
	RangeHours      int `yaml:"range_hours"`

	RefreshIntervalSet bool `yaml:"-"`
	RangeHoursSet      bool `yaml:"-"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Config holds all configuration settings for helpdesk.
// Fields ending in *Set track whether that field was explicitly set, so a
// later layer can override an earlier one with a zero value.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`

	configDir string
	localDir  string
	sources   []string
}

// Sources lists, in order, where values were loaded from.
func (c *Config) Sources() []string {
	return c.sources
}

// LocalDir returns the local project config directory if one was detected.
func (c *Config) LocalDir() string {
	return c.localDir
}

// ConfigDir returns the global config directory.
func (c *Config) ConfigDir() string {
	return c.configDir
}

// Load loads configuration from the default locations. A .env file in the
// working directory is read into the environment first, without overriding
// variables that are already set.
func Load() (*Config, error) {
	globalDir := dirs.ConfigDir()

	var localDir string
	dotenv := false
	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, ".helpdesk")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			localDir = candidate
		}
		dotenv, err = LoadDotenv(filepath.Join(cwd, ".env"))
		if err != nil {
			return nil, err
		}
	}

	cfg, err := LoadWithDirs(globalDir, localDir)
	if err != nil {
		return nil, err
	}
	if dotenv {
		cfg.sources = append([]string{"dotenv:.env"}, cfg.sources...)
	}
	return cfg, nil
}

// LoadDotenv loads path into the process environment. A missing file is not
// an error; it reports whether the file was loaded.
func LoadDotenv(path string) (bool, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, fmt.Errorf("load %s: %w", path, err)
	}
	return true, nil
}

// LoadWithDirs loads configuration with explicit global and local directories.
// If localDir is empty, only global config is used.
func LoadWithDirs(globalDir, localDir string) (*Config, error) {
	if err := InstallDefaults(globalDir); err != nil {
		return nil, fmt.Errorf("install defaults: %w", err)
	}

	cfg, err := loadEmbedded()
	if err != nil {
		return nil, fmt.Errorf("load embedded defaults: %w", err)
	}
	cfg.sources = append(cfg.sources, "embedded")

	globalPath := filepath.Join(globalDir, "config.yaml")
	if globalCfg, err := loadFile(globalPath); err == nil {
		cfg.mergeFrom(globalCfg)
		cfg.sources = append(cfg.sources, globalPath)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("load global config: %w", err)
	}

	cfg.applyEnv()

	if localDir != "" {
		localPath := filepath.Join(localDir, "config.yaml")
		if localCfg, err := loadFile(localPath); err == nil {
			cfg.mergeFrom(localCfg)
			cfg.sources = append(cfg.sources, localPath)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load local config: %w", err)
		}
	}

	cfg.configDir = globalDir
	cfg.localDir = localDir
	return cfg, nil
}

// InstallDefaults creates the config directory and writes the default config
// file if it does not exist yet.
func InstallDefaults(configDir string) error {
	if err := os.MkdirAll(configDir, 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	configPath := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		data, err := defaultsFS.ReadFile("defaults/config.yaml")
		if err != nil {
			return fmt.Errorf("read embedded config: %w", err)
		}
		if err := os.WriteFile(configPath, data, 0o600); err != nil {
			return fmt.Errorf("write config file: %w", err)
		}
	}
	return nil
}

func loadEmbedded() (*Config, error) {
	data, err := defaultsFS.ReadFile("defaults/config.yaml")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}
	return parseConfig(data)
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user's config file
	if err != nil {
		return nil, err
	}
	return parseConfigWithTracking(data)
}

func parseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// parseConfigWithTracking parses YAML config and tracks which numeric fields
// were set explicitly.
func parseConfigWithTracking(data []byte) (*Config, error) {
	cfg, err := parseConfig(data)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	if api, ok := raw["api"].(map[string]any); ok {
		if _, ok := api["timeout"]; ok {
			cfg.API.TimeoutSet = true
		}
	}
	if dash, ok := raw["dashboard"].(map[string]any); ok {
		if _, ok := dash["refresh_interval"]; ok {
			cfg.Dashboard.RefreshIntervalSet = true
		}
		if _, ok := dash["range_hours"]; ok {
			cfg.Dashboard.RangeHoursSet = true
		}
	}
	return cfg, nil
}

// applyEnv applies HELPDESK_* environment variables.
// Env vars sit between global and local config in precedence.
func (c *Config) applyEnv() {
	if v := os.Getenv("HELPDESK_API_URL"); v != "" {
		c.API.BaseURL = v
		c.sources = append(c.sources, "env:HELPDESK_API_URL")
	}

	if v := os.Getenv("HELPDESK_API_TOKEN"); v != "" {
		c.API.Token = v
		c.sources = append(c.sources, "env:HELPDESK_API_TOKEN")
	}

	if v := os.Getenv("HELPDESK_API_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.API.Timeout = n
			c.API.TimeoutSet = true
			c.sources = append(c.sources, "env:HELPDESK_API_TIMEOUT")
		}
	}

	if v := os.Getenv("HELPDESK_REFRESH_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Dashboard.RefreshInterval = n
			c.Dashboard.RefreshIntervalSet = true
			c.sources = append(c.sources, "env:HELPDESK_REFRESH_INTERVAL")
		}
	}

	if v := os.Getenv("HELPDESK_RANGE_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Dashboard.RangeHours = n
			c.Dashboard.RangeHoursSet = true
			c.sources = append(c.sources, "env:HELPDESK_RANGE_HOURS")
		}
	}

	if v := os.Getenv("HELPDESK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
		c.sources = append(c.sources, "env:HELPDESK_LOG_LEVEL")
	}

	if v := os.Getenv("HELPDESK_LOG_FILE"); v != "" {
		c.Log.File = v
		c.sources = append(c.sources, "env:HELPDESK_LOG_FILE")
	}
}

// mergeFrom merges non-empty/set values from src into c.
func (c *Config) mergeFrom(src *Config) {
	if src.API.BaseURL != "" {
		c.API.BaseURL = src.API.BaseURL
	}
	if src.API.Token != "" {
		c.API.Token = src.API.Token
	}
	if src.API.TimeoutSet {
		c.API.Timeout = src.API.Timeout
		c.API.TimeoutSet = true
	}

	if src.Dashboard.RefreshIntervalSet {
		c.Dashboard.RefreshInterval = src.Dashboard.RefreshInterval
		c.Dashboard.RefreshIntervalSet = true
	}
	if src.Dashboard.RangeHoursSet {
		c.Dashboard.RangeHours = src.Dashboard.RangeHours
		c.Dashboard.RangeHoursSet = true
	}

	if src.Log.Level != "" {
		c.Log.Level = src.Log.Level
	}
	if src.Log.File != "" {
		c.Log.File = src.Log.File
	}
}

// ApplyCLIFlags applies command line overrides. Empty strings and
// non-positive numbers leave the loaded value alone.
func (c *Config) ApplyCLIFlags(baseURL, token string, refreshInterval int) {
	if baseURL != "" {
		c.API.BaseURL = baseURL
		c.sources = append(c.sources, "cli:api-url")
	}
	if token != "" {
		c.API.Token = token
		c.sources = append(c.sources, "cli:token")
	}
	if refreshInterval > 0 {
		c.Dashboard.RefreshInterval = refreshInterval
		c.Dashboard.RefreshIntervalSet = true
		c.sources = append(c.sources, "cli:refresh")
	}
}

// Validate checks that the effective configuration is usable.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("api.base_url is required")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %d", c.API.Timeout)
	}
	if c.Dashboard.RefreshInterval <= 0 {
		return fmt.Errorf("dashboard.refresh_interval must be positive, got %d", c.Dashboard.RefreshInterval)
	}
	if c.Dashboard.RangeHours <= 0 {
		return fmt.Errorf("dashboard.range_hours must be positive, got %d", c.Dashboard.RangeHours)
	}
	return nil
}

// APITimeout returns the request timeout.
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// RefreshInterval returns the dashboard polling interval.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Dashboard.RefreshInterval) * time.Second
}

// LogFile returns the log file path, defaulting to the state directory.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return dirs.LogFile()
}
