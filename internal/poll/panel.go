// Package poll implements a metrics panel that fetches a snapshot on mount
// and re-fetches on a fixed interval until unmounted. Fetch failures are
// logged and the last good snapshot stays on display.
package poll

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/alexander-akhmetov/helpdesk/internal/clock"
	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
)

var (
	ErrInvalidInterval = errors.New("refresh interval must be positive")
	ErrAlreadyMounted  = errors.New("panel already mounted")
)

// Fetcher loads one chart snapshot.
type Fetcher interface {
	FetchSnapshot(ctx context.Context, kind metrics.ChartKind, rangeHours int) (metrics.Snapshot, error)
}

// Config describes one panel.
type Config struct {
	Title           string
	Kind            metrics.ChartKind
	RefreshInterval time.Duration
	RangeHours      int
}

// Stats counts fetch outcomes since mount.
type Stats struct {
	Successes   int
	Failures    int
	LastError   error // error of the latest fetch; nil after a success
	LastSuccess time.Time
}

// Attempts is the number of completed fetches.
func (s Stats) Attempts() int { return s.Successes + s.Failures }

// Option configures a Panel.
type Option func(*Panel)

func WithClock(c clock.Clock) Option {
	return func(p *Panel) { p.clock = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Panel) { p.logger = l }
}

// WithOnUpdate registers a callback invoked after every successful fetch,
// from the polling goroutine. It is never invoked after Unmount returns.
func WithOnUpdate(fn func(metrics.Snapshot)) Option {
	return func(p *Panel) { p.onUpdate = fn }
}

// Panel owns one independent polling loop. Each panel holds its own ticker;
// panels never share a scheduler.
type Panel struct {
	cfg      Config
	fetcher  Fetcher
	clock    clock.Clock
	logger   *zap.Logger
	onUpdate func(metrics.Snapshot)

	mu        sync.Mutex
	latest    *metrics.Snapshot
	stats     Stats
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
}

// New validates cfg and creates an unmounted panel.
func New(cfg Config, fetcher Fetcher, opts ...Option) (*Panel, error) {
	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInterval, cfg.RefreshInterval)
	}
	if _, err := metrics.ParseChartKind(string(cfg.Kind)); err != nil {
		return nil, err
	}
	if cfg.RangeHours <= 0 {
		cfg.RangeHours = metrics.DefaultRangeHours
	}
	p := &Panel{
		cfg:     cfg,
		fetcher: fetcher,
		clock:   clock.Real(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.With(zap.String("panel", cfg.Title), zap.String("kind", string(cfg.Kind)))
	return p, nil
}

// Config returns the panel configuration.
func (p *Panel) Config() Config { return p.cfg }

// Mount starts polling: one immediate fetch, then one per interval. The
// ticker is registered before Mount returns.
func (p *Panel) Mount(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted {
		return ErrAlreadyMounted
	}
	p.mounted = true

	ctx, p.cancel = context.WithCancel(ctx)
	p.done = make(chan struct{})
	ticker := p.clock.NewTicker(p.cfg.RefreshInterval)
	p.logger.Debug("panel mounted", zap.Duration("interval", p.cfg.RefreshInterval))

	go p.run(ctx, ticker)
	return nil
}

// Unmount stops the loop and waits for it to exit. In-flight requests are
// cancelled and their results dropped. Safe to call more than once, or on a
// panel that was never mounted.
func (p *Panel) Unmount() {
	p.mu.Lock()
	if !p.mounted || p.unmounted {
		p.unmounted = true
		p.mu.Unlock()
		return
	}
	p.unmounted = true
	cancel, done := p.cancel, p.done
	p.mu.Unlock()

	cancel()
	<-done
	p.logger.Debug("panel unmounted")
}

// Latest returns the last successful snapshot.
func (p *Panel) Latest() (metrics.Snapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == nil {
		return metrics.Snapshot{}, false
	}
	return *p.latest, true
}

func (p *Panel) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Render draws the latest snapshot, or a loading line before the first
// successful fetch.
func (p *Panel) Render(width int) string {
	snap, _ := p.Latest()
	return metrics.Render(snap, width)
}

func (p *Panel) run(ctx context.Context, ticker *clock.Ticker) {
	defer close(p.done)
	defer ticker.Stop()

	p.fetch(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetch(ctx)
		}
	}
}

func (p *Panel) fetch(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	snap, err := p.fetcher.FetchSnapshot(ctx, p.cfg.Kind, p.cfg.RangeHours)

	p.mu.Lock()
	if p.unmounted || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	if err != nil {
		p.stats.Failures++
		p.stats.LastError = err
		p.mu.Unlock()
		p.logger.Warn("metrics fetch failed, keeping last snapshot", zap.Error(err))
		return
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = p.clock.Now()
	}
	p.latest = &snap
	p.stats.Successes++
	p.stats.LastError = nil
	p.stats.LastSuccess = snap.FetchedAt
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if onUpdate != nil {
		onUpdate(snap)
	}
}
