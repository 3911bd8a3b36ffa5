package poll

import (
	"context"
	"sync"

	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
)

// MockFetcher records FetchSnapshot calls. FetchSnapshotFunc receives the
// 1-based call number.
type MockFetcher struct {
	mu sync.Mutex

	FetchSnapshotFunc func(ctx context.Context, call int, kind metrics.ChartKind, rangeHours int) (metrics.Snapshot, error)

	FetchSnapshotCalls []struct {
		Kind       metrics.ChartKind
		RangeHours int
	}
}

var _ Fetcher = (*MockFetcher)(nil)

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) FetchSnapshot(ctx context.Context, kind metrics.ChartKind, rangeHours int) (metrics.Snapshot, error) {
	m.mu.Lock()
	m.FetchSnapshotCalls = append(m.FetchSnapshotCalls, struct {
		Kind       metrics.ChartKind
		RangeHours int
	}{kind, rangeHours})
	call := len(m.FetchSnapshotCalls)
	m.mu.Unlock()

	if m.FetchSnapshotFunc != nil {
		return m.FetchSnapshotFunc(ctx, call, kind, rangeHours)
	}
	return metrics.Snapshot{Kind: kind}, nil
}

// CallCount returns the number of FetchSnapshot calls so far.
func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.FetchSnapshotCalls)
}
