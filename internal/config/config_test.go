package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"HELPDESK_API_URL",
		"HELPDESK_API_TOKEN",
		"HELPDESK_API_TIMEOUT",
		"HELPDESK_REFRESH_INTERVAL",
		"HELPDESK_RANGE_HOURS",
		"HELPDESK_LOG_LEVEL",
		"HELPDESK_LOG_FILE",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
}

func TestLoadEmbedded(t *testing.T) {
	cfg, err := loadEmbedded()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.Timeout)
	assert.Equal(t, 3600, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 24, cfg.Dashboard.RangeHours)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadWithDirs_InstallsDefaults(t *testing.T) {
	clearEnv(t)
	globalDir := filepath.Join(t.TempDir(), "helpdesk")

	cfg, err := LoadWithDirs(globalDir, "")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(globalDir, "config.yaml"))
	assert.Equal(t, globalDir, cfg.ConfigDir())
	assert.Equal(t, time.Hour, cfg.RefreshInterval())
}

func TestLoadWithDirs_GlobalOnly(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "api:\n  base_url: https://helpdesk.example.com/api\ndashboard:\n  range_hours: 48\n")

	cfg, err := LoadWithDirs(tmpDir, "")
	require.NoError(t, err)

	assert.Equal(t, "https://helpdesk.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, 48, cfg.Dashboard.RangeHours)
	assert.Equal(t, 3600, cfg.Dashboard.RefreshInterval) // from embedded default
}

func TestLoadWithDirs_LocalOverridesGlobal(t *testing.T) {
	clearEnv(t)
	globalDir := t.TempDir()
	localDir := t.TempDir()
	writeConfig(t, globalDir, "dashboard:\n  refresh_interval: 600\n  range_hours: 48\n")
	writeConfig(t, localDir, "dashboard:\n  refresh_interval: 60\n")

	cfg, err := LoadWithDirs(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Dashboard.RefreshInterval) // from local
	assert.Equal(t, 48, cfg.Dashboard.RangeHours)      // from global
	assert.Equal(t, 30, cfg.API.Timeout)               // from embedded default
	assert.Equal(t, localDir, cfg.LocalDir())
}

func TestLoadWithDirs_InvalidYAML(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, "api: [unclosed\n")

	_, err := LoadWithDirs(tmpDir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load global config")
}

func TestApplyEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPDESK_API_URL", "https://env.example.com")
	t.Setenv("HELPDESK_API_TOKEN", "env-token")
	t.Setenv("HELPDESK_API_TIMEOUT", "5")
	t.Setenv("HELPDESK_REFRESH_INTERVAL", "120")
	t.Setenv("HELPDESK_RANGE_HOURS", "72")
	t.Setenv("HELPDESK_LOG_LEVEL", "debug")
	t.Setenv("HELPDESK_LOG_FILE", "/tmp/helpdesk.log")

	cfg := &Config{}
	cfg.applyEnv()

	assert.Equal(t, "https://env.example.com", cfg.API.BaseURL)
	assert.Equal(t, "env-token", cfg.API.Token)
	assert.Equal(t, 5, cfg.API.Timeout)
	assert.True(t, cfg.API.TimeoutSet)
	assert.Equal(t, 120, cfg.Dashboard.RefreshInterval)
	assert.Equal(t, 72, cfg.Dashboard.RangeHours)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/helpdesk.log", cfg.LogFile())
	assert.Len(t, cfg.Sources(), 7)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"timeout", "HELPDESK_API_TIMEOUT"},
		{"refresh interval", "HELPDESK_REFRESH_INTERVAL"},
		{"range hours", "HELPDESK_RANGE_HOURS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, "not-a-number")

			cfg, err := loadEmbedded()
			require.NoError(t, err)
			cfg.applyEnv()

			assert.Empty(t, cfg.Sources())
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestEnvBetweenGlobalAndLocal(t *testing.T) {
	clearEnv(t)
	globalDir := t.TempDir()
	localDir := t.TempDir()
	writeConfig(t, globalDir, "dashboard:\n  refresh_interval: 600\n  range_hours: 12\n")
	writeConfig(t, localDir, "dashboard:\n  range_hours: 6\n")
	t.Setenv("HELPDESK_REFRESH_INTERVAL", "300")
	t.Setenv("HELPDESK_RANGE_HOURS", "96")

	cfg, err := LoadWithDirs(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.Dashboard.RefreshInterval) // env beats global
	assert.Equal(t, 6, cfg.Dashboard.RangeHours)        // local beats env
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides a variable that exists, even when empty.
	require.NoError(t, os.Unsetenv("HELPDESK_API_TOKEN"))
	dir := t.TempDir()

	loaded, err := LoadDotenv(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.False(t, loaded)

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("HELPDESK_API_TOKEN=from-dotenv\n"), 0o600))

	loaded, err = LoadDotenv(path)
	require.NoError(t, err)
	assert.True(t, loaded)

	cfg, err := LoadWithDirs(t.TempDir(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.API.Token)
}

func TestLoadDotenv_DoesNotOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("HELPDESK_API_URL", "https://already.example.com")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HELPDESK_API_URL=https://dotenv.example.com\n"), 0o600))

	_, err := LoadDotenv(path)
	require.NoError(t, err)
	assert.Equal(t, "https://already.example.com", os.Getenv("HELPDESK_API_URL"))
}

func TestApplyCLIFlags(t *testing.T) {
	cfg := &Config{API: APIConfig{BaseURL: "http://a", Token: "t"}}
	cfg.ApplyCLIFlags("https://b.example.com", "cli-token", 15)

	assert.Equal(t, "https://b.example.com", cfg.API.BaseURL)
	assert.Equal(t, "cli-token", cfg.API.Token)
	assert.Equal(t, 15*time.Second, cfg.RefreshInterval())
	assert.Equal(t, []string{"cli:api-url", "cli:token", "cli:refresh"}, cfg.Sources())
}

func TestApplyCLIFlagsZeroNoOverride(t *testing.T) {
	cfg := &Config{
		API:       APIConfig{BaseURL: "http://a", Token: "t"},
		Dashboard: DashboardConfig{RefreshInterval: 600},
	}
	cfg.ApplyCLIFlags("", "", 0)

	assert.Equal(t, "http://a", cfg.API.BaseURL)
	assert.Equal(t, "t", cfg.API.Token)
	assert.Equal(t, 600, cfg.Dashboard.RefreshInterval)
	assert.Empty(t, cfg.Sources())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:       APIConfig{BaseURL: "https://h.example.com/api", Timeout: 30},
			Dashboard: DashboardConfig{RefreshInterval: 3600, RangeHours: 24},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty url", func(c *Config) { c.API.BaseURL = "" }, "api.base_url is required"},
		{"bad scheme", func(c *Config) { c.API.BaseURL = "ftp://h" }, "http(s) URL"},
		{"no host", func(c *Config) { c.API.BaseURL = "http://" }, "http(s) URL"},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }, "api.timeout"},
		{"zero refresh", func(c *Config) { c.Dashboard.RefreshInterval = 0 }, "refresh_interval"},
		{"negative range", func(c *Config) { c.Dashboard.RangeHours = -1 }, "range_hours"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseConfigWithTracking(t *testing.T) {
	cfg, err := parseConfigWithTracking([]byte("api:\n  timeout: 0\ndashboard:\n  range_hours: 12\n"))
	require.NoError(t, err)

	assert.True(t, cfg.API.TimeoutSet)
	assert.Equal(t, 0, cfg.API.Timeout)
	assert.True(t, cfg.Dashboard.RangeHoursSet)
	assert.False(t, cfg.Dashboard.RefreshIntervalSet)
}

func TestMergeFrom_ExplicitZero(t *testing.T) {
	base, err := loadEmbedded()
	require.NoError(t, err)

	src, err := parseConfigWithTracking([]byte("api:\n  timeout: 0\n"))
	require.NoError(t, err)
	base.mergeFrom(src)

	assert.Equal(t, 0, base.API.Timeout)
	assert.Error(t, base.Validate())
}

func TestSources(t *testing.T) {
	clearEnv(t)
	globalDir := t.TempDir()
	localDir := t.TempDir()
	writeConfig(t, globalDir, "log:\n  level: warn\n")
	writeConfig(t, localDir, "log:\n  level: debug\n")
	t.Setenv("HELPDESK_API_TOKEN", "x")

	cfg, err := LoadWithDirs(globalDir, localDir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"embedded",
		filepath.Join(globalDir, "config.yaml"),
		"env:HELPDESK_API_TOKEN",
		filepath.Join(localDir, "config.yaml"),
	}, cfg.Sources())
	assert.Equal(t, "debug", cfg.Log.Level)
}
