package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexander-akhmetov/helpdesk/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage helpdesk configuration",
	Long:  `View and manage helpdesk configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show resolved configuration with source annotations",
	Long: `Show the fully resolved configuration with annotations indicating
where each value came from.

Configuration is loaded from multiple sources with the following precedence:
  1. Embedded defaults (built into binary)
  2. Global config (~/.config/helpdesk/config.yaml)
  3. .env file and HELPDESK_* environment variables
  4. Local config (.helpdesk/config.yaml)
  5. CLI flags (highest precedence)`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ApplyCLIFlags(apiURL, apiToken, 0)
	printConfig(os.Stdout, cfg)
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "# Helpdesk Configuration")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "## Sources (in order of precedence)")
	for _, src := range cfg.Sources() {
		fmt.Fprintf(out, "  - %s\n", src)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Directories")
	fmt.Fprintf(out, "  Global config: %s\n", cfg.ConfigDir())
	if cfg.LocalDir() != "" {
		fmt.Fprintf(out, "  Local config:  %s\n", cfg.LocalDir())
	} else {
		fmt.Fprintf(out, "  Local config:  (none detected)\n")
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## API")
	fmt.Fprintf(out, "  base_url: %s\n", cfg.API.BaseURL)
	if cfg.API.Token != "" {
		fmt.Fprintf(out, "  token:    (set)\n")
	} else {
		fmt.Fprintf(out, "  token:    (not set)\n")
	}
	fmt.Fprintf(out, "  timeout:  %ds\n", cfg.API.Timeout)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Dashboard")
	fmt.Fprintf(out, "  refresh_interval: %ds\n", cfg.Dashboard.RefreshInterval)
	fmt.Fprintf(out, "  range_hours:      %d\n", cfg.Dashboard.RangeHours)
	fmt.Fprintln(out)

	fmt.Fprintln(out, "## Log")
	fmt.Fprintf(out, "  level: %s\n", cfg.Log.Level)
	fmt.Fprintf(out, "  file:  %s\n", cfg.LogFile())

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "warning: %v\n", err)
	}
}
