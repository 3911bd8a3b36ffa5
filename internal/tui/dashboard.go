package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/config"
	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
	"github.com/alexander-akhmetov/helpdesk/internal/poll"
	"github.com/alexander-akhmetov/helpdesk/internal/timing"
)

var dashboardRefresh int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the analytics dashboard for your role",
	Long: `Show the analytics charts available to the logged-in role. Each chart is
fetched when the screen opens and again on every refresh interval. A failed
refresh keeps the previous chart on screen.

  admin     ticket volume, status distribution, SLA alerts per category
  pimpinan  status distribution, SLA alerts per category
  user      your own ticket volume

Controls:
  q / esc - Quit`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardRefresh, "refresh", 0, "Refresh interval in seconds (overrides HELPDESK_REFRESH_INTERVAL)")
}

// DashboardPanels picks the charts shown to role.
func DashboardPanels(role api.Role, cfg *config.Config) []poll.Config {
	interval := cfg.RefreshInterval()
	hours := cfg.Dashboard.RangeHours

	volume := poll.Config{Title: "Volume Tiket", Kind: metrics.KindLine, RefreshInterval: interval, RangeHours: hours}
	status := poll.Config{Title: "Distribusi Status", Kind: metrics.KindDoughnut, RefreshInterval: interval, RangeHours: hours}
	sla := poll.Config{Title: "Peringatan SLA per Kategori", Kind: metrics.KindBar, RefreshInterval: interval, RangeHours: hours}

	switch role {
	case api.RoleAdmin:
		return []poll.Config{volume, status, sla}
	case api.RolePimpinan:
		return []poll.Config{status, sla}
	default:
		volume.Title = "Tiket Saya"
		return []poll.Config{volume}
	}
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	s, err := openSession(dashboardRefresh)
	if err != nil {
		return err
	}
	defer s.Close()

	sess, err := api.ParseSession(s.cfg.API.Token)
	if err != nil {
		return err
	}
	if sess.Expired(time.Now()) {
		return fmt.Errorf("access token expired at %s", sess.ExpiresAt.Format(time.RFC3339))
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var program *tea.Program
	panelCfgs := DashboardPanels(sess.Role, s.cfg)
	panels := make([]*poll.Panel, 0, len(panelCfgs))
	for i, panelCfg := range panelCfgs {
		p, err := poll.New(panelCfg, s.client,
			poll.WithLogger(s.logger.Named("poll").With(zap.String("panel", panelCfg.Title))),
			poll.WithOnUpdate(func(metrics.Snapshot) {
				program.Send(panelUpdatedMsg{index: i})
			}),
		)
		if err != nil {
			return fmt.Errorf("panel %q: %w", panelCfg.Title, err)
		}
		panels = append(panels, p)
	}

	program = tea.NewProgram(newDashboardModel(sess, panels, time.Now), tea.WithAltScreen())

	timing.Log("runDashboard: mounting panels")
	for _, p := range panels {
		if err := p.Mount(ctx); err != nil {
			return err
		}
	}
	defer func() {
		for _, p := range panels {
			p.Unmount()
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// panelUpdatedMsg reports that panel index has a new snapshot.
type panelUpdatedMsg struct {
	index int
}

// clockTickMsg refreshes the "updated ... ago" lines.
type clockTickMsg time.Time

func clockTickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}

// dashboardPanel is the read side of a poll.Panel.
type dashboardPanel interface {
	Config() poll.Config
	Stats() poll.Stats
	Render(width int) string
}

type dashboardModel struct {
	session api.Session
	panels  []dashboardPanel
	now     func() time.Time
	updates int
	width   int
}

func newDashboardModel(sess api.Session, panels []*poll.Panel, now func() time.Time) dashboardModel {
	dp := make([]dashboardPanel, len(panels))
	for i, p := range panels {
		dp[i] = p
	}
	return dashboardModel{session: sess, panels: dp, now: now}
}

func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), tea.WindowSize())
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case panelUpdatedMsg:
		m.updates++
	case clockTickMsg:
		return m, clockTickCmd()
	}
	return m, nil
}

func (m dashboardModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	inner := max(width-4, 20)

	var b strings.Builder
	who := m.session.Name
	if who == "" {
		who = m.session.Email
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("📊 HELPDESK · Dashboard · %s (%s)", who, m.session.Role)))
	b.WriteString("\n")

	if len(m.panels) == 0 {
		b.WriteString(labelStyle.Render("Tidak ada grafik untuk peran ini"))
		b.WriteString("\n")
	}
	for _, p := range m.panels {
		b.WriteString(m.renderPanel(p, inner))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("q: keluar"))
	return b.String()
}

func (m dashboardModel) renderPanel(p dashboardPanel, width int) string {
	cfg := p.Config()
	stats := p.Stats()

	var status string
	switch {
	case stats.LastError != nil && stats.Successes > 0:
		status = warningStyle.Render(fmt.Sprintf("! gagal memperbarui, data %s: %v", formatAgo(m.now(), stats.LastSuccess), stats.LastError))
	case stats.LastError != nil:
		status = errorStyle.Render(fmt.Sprintf("✗ gagal memuat: %v", stats.LastError))
	case stats.Successes > 0:
		status = labelStyle.Render("diperbarui " + formatAgo(m.now(), stats.LastSuccess))
	}

	header := lipgloss.JoinHorizontal(lipgloss.Top,
		stepStyle.Render(cfg.Title),
		labelStyle.Render(fmt.Sprintf("  %d jam terakhir · setiap %s", cfg.RangeHours, cfg.RefreshInterval)),
	)
	body := header + "\n" + p.Render(width-4)
	if status != "" {
		body += "\n" + status
	}
	return panelBoxStyle.Width(width).Render(body)
}
