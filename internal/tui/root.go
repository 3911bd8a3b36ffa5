// Package tui implements the helpdesk command line and its bubbletea screens.
package tui

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information set from main.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Flags shared by every command.
var (
	apiURL   string
	apiToken string
)

// SetVersionInfo sets the version information for the CLI.
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (%s, %s)", version, commit, date)
}

var rootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Terminal client for the IT-support helpdesk",
	Long: `helpdesk talks to the IT-support ticketing API. It creates tickets through
a four-step form and shows the analytics dashboard for the logged-in role.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "API base URL (overrides HELPDESK_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Access token (overrides HELPDESK_API_TOKEN)")

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(submitCLICmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(configCmd)
}
