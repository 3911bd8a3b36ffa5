package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexander-akhmetov/helpdesk/internal/metrics"
	"github.com/alexander-akhmetov/helpdesk/internal/poll"
)

var _ poll.Fetcher = (*Client)(nil)

// FetchSnapshot loads one chart from /analytics/charts/{kind}.
func (c *Client) FetchSnapshot(ctx context.Context, kind metrics.ChartKind, rangeHours int) (metrics.Snapshot, error) {
	raw, err := c.FetchRaw(ctx, kind, rangeHours)
	if err != nil {
		return metrics.Snapshot{}, err
	}
	return metrics.Decode(kind, raw, c.now())
}

// FetchRaw returns the chart payload without interpreting it.
func (c *Client) FetchRaw(ctx context.Context, kind metrics.ChartKind, rangeHours int) ([]byte, error) {
	if rangeHours <= 0 {
		rangeHours = metrics.DefaultRangeHours
	}
	query := url.Values{"range_hours": []string{strconv.Itoa(rangeHours)}}
	req, err := c.newRequest(ctx, http.MethodGet, "/analytics/charts/"+url.PathEscape(string(kind)), query, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}
