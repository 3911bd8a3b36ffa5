package tui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/config"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account of the configured access token",
	RunE:  runWhoami,
}

func runWhoami(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyCLIFlags(apiURL, apiToken, 0)

	sess, err := api.ParseSession(cfg.API.Token)
	if err != nil {
		return err
	}
	printSession(os.Stdout, sess, time.Now())
	return nil
}

func printSession(out io.Writer, s api.Session, now time.Time) {
	name := s.Name
	if name == "" {
		name = "(tanpa nama)"
	}
	fmt.Fprintf(out, "Nama:    %s\n", name)
	if s.Email != "" {
		fmt.Fprintf(out, "Email:   %s\n", s.Email)
	}
	if s.Subject != "" {
		fmt.Fprintf(out, "ID:      %s\n", s.Subject)
	}
	fmt.Fprintf(out, "Peran:   %s\n", s.Role)
	switch {
	case s.ExpiresAt.IsZero():
		fmt.Fprintln(out, "Berlaku: tanpa batas")
	case s.Expired(now):
		fmt.Fprintf(out, "Berlaku: kedaluwarsa sejak %s\n", s.ExpiresAt.Format(time.RFC3339))
	default:
		fmt.Fprintf(out, "Berlaku: sampai %s\n", s.ExpiresAt.Format(time.RFC3339))
	}
}
