package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/config"
	"github.com/alexander-akhmetov/helpdesk/internal/logging"
	"github.com/alexander-akhmetov/helpdesk/internal/timing"
)

// session is what every API-backed command needs.
type session struct {
	cfg    *config.Config
	logger *zap.Logger
	client *api.Client
}

// openSession loads and validates configuration, then builds the logger and
// the API client. refresh overrides dashboard.refresh_interval when positive.
func openSession(refresh int) (*session, error) {
	timing.Log("openSession: loading config")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyCLIFlags(apiURL, apiToken, refresh)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.LogFile()})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	client, err := api.New(api.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		Timeout: cfg.APITimeout(),
	}, api.WithLogger(logger.Named("api")))
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("failed to create api client: %w", err)
	}
	timing.Log("openSession: ready")

	return &session{cfg: cfg, logger: logger, client: client}, nil
}

func (s *session) Close() {
	_ = s.logger.Sync()
}

// expandPath resolves a leading ~ to the home directory.
func expandPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
