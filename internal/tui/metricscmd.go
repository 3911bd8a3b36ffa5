package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
)

var (
	metricsRangeHours int
	metricsJSON       bool
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <line|bar|doughnut>",
	Short: "Fetch one analytics chart",
	Long: `Fetch one analytics chart once and print it. With --json the raw payload is
printed as indented JSON.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(metrics.KindLine), string(metrics.KindBar), string(metrics.KindDoughnut)},
	RunE:      runMetrics,
}

func init() {
	metricsCmd.Flags().IntVar(&metricsRangeHours, "range-hours", 0, "Time window in hours (default: dashboard.range_hours)")
	metricsCmd.Flags().BoolVar(&metricsJSON, "json", false, "Print the raw payload as JSON")
}

// rawChartSource fetches an undecoded chart payload.
type rawChartSource interface {
	FetchRaw(ctx context.Context, kind metrics.ChartKind, rangeHours int) ([]byte, error)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	kind, err := metrics.ParseChartKind(args[0])
	if err != nil {
		return err
	}

	s, err := openSession(0)
	if err != nil {
		return err
	}
	defer s.Close()

	hours := metricsRangeHours
	if hours <= 0 {
		hours = s.cfg.Dashboard.RangeHours
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return printChart(ctx, os.Stdout, s.client, kind, hours, metricsJSON, time.Now)
}

func printChart(ctx context.Context, out io.Writer, src rawChartSource, kind metrics.ChartKind, hours int, asJSON bool, now func() time.Time) error {
	raw, err := src.FetchRaw(ctx, kind, hours)
	if err != nil {
		return fmt.Errorf("fetch %s chart: %w", kind, err)
	}
	if asJSON {
		_, err := out.Write(pretty.Pretty(raw))
		return err
	}

	snap, err := metrics.Decode(kind, raw, now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%s chart, %d jam terakhir (%s)\n", kind, hours, snap.FetchedAt.Format("2006-01-02 15:04"))
	fmt.Fprintln(out, metrics.Render(snap, 72))
	return nil
}
