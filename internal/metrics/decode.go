package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// Decode interprets a raw chart payload according to kind. Payloads may be
// wrapped in a top-level "data" object, as the API does for every resource.
//
// Series payloads look like
//
//	{"labels": ["08:00", "09:00"], "datasets": [{"label": "Dibuat", "data": [3, 5]}]}
//
// Distribution payloads are either parallel arrays
//
//	{"labels": ["Open", "Closed"], "data": [4, 10]}
//
// or a list of objects with label/name and value/count keys.
func Decode(kind ChartKind, raw []byte, fetchedAt time.Time) (Snapshot, error) {
	if !gjson.ValidBytes(raw) {
		return Snapshot{}, fmt.Errorf("%w: invalid json", ErrUnexpectedShape)
	}
	root := gjson.ParseBytes(raw)
	if data := root.Get("data"); data.IsObject() || (data.IsArray() && !root.Get("labels").Exists()) {
		root = data
	}

	snap := Snapshot{FetchedAt: fetchedAt, Kind: kind}
	switch kind {
	case KindLine, KindBar:
		series, err := decodeSeries(root)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Series = series
	case KindDoughnut:
		dist, err := decodeDistribution(root)
		if err != nil {
			return Snapshot{}, err
		}
		snap.Distribution = dist
	default:
		return Snapshot{}, fmt.Errorf("%w: unknown chart kind %q", ErrUnexpectedShape, kind)
	}
	return snap, nil
}

func decodeSeries(root gjson.Result) (*Series, error) {
	labels := root.Get("labels")
	datasets := root.Get("datasets")
	if !labels.IsArray() || !datasets.IsArray() {
		return nil, fmt.Errorf("%w: series needs labels and datasets arrays", ErrUnexpectedShape)
	}

	s := &Series{}
	for _, l := range labels.Array() {
		s.Labels = append(s.Labels, l.String())
	}
	for i, ds := range datasets.Array() {
		values := ds.Get("data")
		if !values.IsArray() {
			return nil, fmt.Errorf("%w: dataset %d has no data array", ErrUnexpectedShape, i)
		}
		d := Dataset{Label: ds.Get("label").String()}
		for j, v := range values.Array() {
			f, err := seriesValue(v)
			if err != nil {
				return nil, fmt.Errorf("%w: dataset %d value %d: %v", ErrUnexpectedShape, i, j, err)
			}
			d.Values = append(d.Values, f)
		}
		s.Datasets = append(s.Datasets, d)
	}
	return s, nil
}

func decodeDistribution(root gjson.Result) (*Distribution, error) {
	if root.IsArray() {
		d := &Distribution{}
		var err error
		root.ForEach(func(_, item gjson.Result) bool {
			label := item.Get("label")
			if !label.Exists() {
				label = item.Get("name")
			}
			value := item.Get("value")
			if !value.Exists() {
				value = item.Get("count")
			}
			if !label.Exists() || !value.Exists() {
				err = fmt.Errorf("%w: distribution item %s lacks label or value", ErrUnexpectedShape, item.Raw)
				return false
			}
			f, verr := sliceValue(value)
			if verr != nil {
				err = fmt.Errorf("%w: distribution item %q: %v", ErrUnexpectedShape, label.String(), verr)
				return false
			}
			d.Slices = append(d.Slices, Slice{Label: label.String(), Value: f})
			return true
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	}

	labels := root.Get("labels")
	values := root.Get("data")
	if !labels.IsArray() || !values.IsArray() {
		return nil, fmt.Errorf("%w: distribution needs labels and data arrays", ErrUnexpectedShape)
	}
	ls, vs := labels.Array(), values.Array()
	if len(ls) != len(vs) {
		return nil, fmt.Errorf("%w: %d labels for %d values", ErrUnexpectedShape, len(ls), len(vs))
	}
	d := &Distribution{}
	for i := range ls {
		f, err := sliceValue(vs[i])
		if err != nil {
			return nil, fmt.Errorf("%w: distribution item %q: %v", ErrUnexpectedShape, ls[i].String(), err)
		}
		d.Slices = append(d.Slices, Slice{Label: ls[i].String(), Value: f})
	}
	return d, nil
}

// seriesValue reads one point. Series may go negative but must be finite.
func seriesValue(r gjson.Result) (float64, error) {
	f := r.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %s is not finite", r.Raw)
	}
	return f, nil
}

// sliceValue reads one distribution share: finite and not negative.
func sliceValue(r gjson.Result) (float64, error) {
	f, err := seriesValue(r)
	if err != nil {
		return 0, err
	}
	if f < 0 {
		return 0, fmt.Errorf("value %s is negative", r.Raw)
	}
	return f, nil
}
