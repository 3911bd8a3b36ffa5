package metrics

import (
	"fmt"
	"math"
	"strings"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Render draws a snapshot as plain text no wider than width. It depends only
// on the snapshot.
func Render(s Snapshot, width int) string {
	width = max(width, 20)
	switch {
	case s.Series != nil && s.Kind == KindBar:
		return renderBars(s.Series, width)
	case s.Series != nil:
		return renderSparklines(s.Series, width)
	case s.Distribution != nil:
		return renderDistribution(s.Distribution, width)
	default:
		return "memuat..."
	}
}

func renderSparklines(s *Series, width int) string {
	if len(s.Datasets) == 0 {
		return "tidak ada data"
	}
	labelWidth := datasetLabelWidth(s.Datasets)
	var b strings.Builder
	for i, ds := range s.Datasets {
		if i > 0 {
			b.WriteString("\n")
		}
		values := ds.Values
		room := width - labelWidth - 10
		if room > 0 && len(values) > room {
			values = values[len(values)-room:]
		}
		last := 0.0
		if len(values) > 0 {
			last = values[len(values)-1]
		}
		fmt.Fprintf(&b, "%-*s %s %s", labelWidth, ds.Label, sparkline(values), formatValue(last))
	}
	if len(s.Labels) > 0 {
		fmt.Fprintf(&b, "\n%-*s %s → %s", labelWidth, "", s.Labels[0], s.Labels[len(s.Labels)-1])
	}
	return b.String()
}

func sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	top := len(sparkRunes) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if finite(v) && hi > lo && finite(hi-lo) {
			idx = min(max(int((v-lo)/(hi-lo)*float64(top)), 0), top)
		}
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func renderBars(s *Series, width int) string {
	if len(s.Datasets) == 0 || len(s.Labels) == 0 {
		return "tidak ada data"
	}
	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, len([]rune(l)))
	}
	labelWidth = min(labelWidth, width/3)

	peak := 0.0
	for _, ds := range s.Datasets {
		for _, v := range ds.Values {
			if finite(v) {
				peak = math.Max(peak, v)
			}
		}
	}
	barRoom := max(width-labelWidth-10, 1)

	var b strings.Builder
	for di, ds := range s.Datasets {
		if len(s.Datasets) > 1 {
			if di > 0 {
				b.WriteString("\n")
			}
			b.WriteString(ds.Label + "\n")
		}
		for i, label := range s.Labels {
			v := 0.0
			if i < len(ds.Values) {
				v = ds.Values[i]
			}
			n := 0
			if peak > 0 && finite(v) {
				n = min(max(int(math.Round(v/peak*float64(barRoom))), 0), barRoom)
			}
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "%-*s %s %s", labelWidth, truncate(label, labelWidth), strings.Repeat("█", n), formatValue(v))
		}
	}
	return b.String()
}

func renderDistribution(d *Distribution, width int) string {
	if len(d.Slices) == 0 {
		return "tidak ada data"
	}
	labelWidth := 0
	for _, s := range d.Slices {
		labelWidth = max(labelWidth, len([]rune(s.Label)))
	}
	labelWidth = min(labelWidth, width/3)
	barRoom := max(width-labelWidth-18, 1)

	var b strings.Builder
	for i, s := range d.Slices {
		if i > 0 {
			b.WriteString("\n")
		}
		pct := d.Percent(i)
		if !finite(pct) {
			pct = 0
		}
		n := min(max(int(math.Round(pct/100*float64(barRoom))), 0), barRoom)
		fmt.Fprintf(&b, "%-*s %5.1f%% %s (%s)", labelWidth, truncate(s.Label, labelWidth), pct, strings.Repeat("■", n), formatValue(s.Value))
	}
	return b.String()
}

func datasetLabelWidth(ds []Dataset) int {
	w := 0
	for _, d := range ds {
		w = max(w, len([]rune(d.Label)))
	}
	return w
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func formatValue(v float64) string {
	if !finite(v) {
		return "-"
	}
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}
