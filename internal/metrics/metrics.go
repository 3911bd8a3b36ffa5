// Package metrics models dashboard chart snapshots. A snapshot is either a
// time series (line and bar charts) or a category distribution (doughnut).
package metrics

import (
	"errors"
	"fmt"
	"time"
)

// DefaultRangeHours is the time window requested when none is configured.
const DefaultRangeHours = 24

// ErrUnexpectedShape is returned when a payload does not match the shape
// its chart kind expects.
var ErrUnexpectedShape = errors.New("unexpected metrics payload shape")

// ChartKind selects how a payload is fetched and interpreted.
type ChartKind string

const (
	KindLine     ChartKind = "line"
	KindBar      ChartKind = "bar"
	KindDoughnut ChartKind = "doughnut"
)

// ParseChartKind validates a chart kind name.
func ParseChartKind(s string) (ChartKind, error) {
	switch k := ChartKind(s); k {
	case KindLine, KindBar, KindDoughnut:
		return k, nil
	default:
		return "", fmt.Errorf("unknown chart kind %q (want line, bar or doughnut)", s)
	}
}

// IsSeries reports whether the kind is rendered from a Series.
func (k ChartKind) IsSeries() bool { return k == KindLine || k == KindBar }

// Dataset is one named line or bar group.
type Dataset struct {
	Label  string
	Values []float64
}

// Series is time-bucketed data: one label per bucket, one value per bucket
// in every dataset.
type Series struct {
	Labels   []string
	Datasets []Dataset
}

// Slice is one category of a Distribution.
type Slice struct {
	Label string
	Value float64
}

// Distribution is a categorical breakdown.
type Distribution struct {
	Slices []Slice
}

// Total returns the sum of all slice values.
func (d *Distribution) Total() float64 {
	var total float64
	for _, s := range d.Slices {
		total += s.Value
	}
	return total
}

// Percent returns slice i's share of the total, 0..100.
func (d *Distribution) Percent(i int) float64 {
	total := d.Total()
	if total == 0 || i < 0 || i >= len(d.Slices) {
		return 0
	}
	return d.Slices[i].Value / total * 100
}

// Snapshot is one fetched chart state. Exactly one of Series and
// Distribution is set, depending on Kind.
type Snapshot struct {
	FetchedAt    time.Time
	Kind         ChartKind
	Series       *Series
	Distribution *Distribution
}

// Shape names the populated variant.
func (s Snapshot) Shape() string {
	switch {
	case s.Series != nil:
		return "series"
	case s.Distribution != nil:
		return "distribution"
	default:
		return "empty"
	}
}
