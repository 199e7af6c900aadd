package rangeview

import (
	"sort"
	"time"
)

// Slice is one series in the snapshot.
type Slice struct {
	Key    string
	Index  int // position in series order, drives the palette
	Value  float64
	OK     bool
	Allied bool
}

// Snapshot is the row at the upper edge of the range.
type Snapshot struct {
	Date   time.Time
	Slices []Slice
	Allied map[string]bool
}

// Empty reports whether there is nothing to show.
func (s Snapshot) Empty() bool { return len(s.Slices) == 0 }

// Total sums the valid slice values.
func (s Snapshot) Total() float64 {
	var sum float64
	for _, sl := range s.Slices {
		if sl.OK {
			sum += sl.Value
		}
	}
	return sum
}

// Point is one (date, value) sample. OK is false when the row had no
// number for the series.
type Point struct {
	Date  time.Time
	Value float64
	OK    bool
}

// Series is one line of the trend view.
type Series struct {
	Key    string
	Index  int
	Points []Point
}

// Trend is the per-series view over the selected range.
type Trend struct {
	Series []Series
}

// Empty reports whether no series has any point.
func (t Trend) Empty() bool {
	for _, s := range t.Series {
		if len(s.Points) > 0 {
			return false
		}
	}
	return true
}

// Views is the snapshot and trend published together for one state.
type Views struct {
	Snapshot Snapshot
	Trend    Trend
	Range    Range
	HasRange bool
	Version  uint64
}

// DeriveSnapshot returns the last row whose date does not exceed the range
// end, decomposed into slices.
func (v *View) DeriveSnapshot() Snapshot {
	if !v.hasRange {
		return Snapshot{}
	}
	// first index with date > end; the row before it is the snapshot
	idx := sort.Search(len(v.rows), func(i int) bool {
		return v.rows[i].Date.After(v.rng.End)
	}) - 1
	if idx < 0 {
		return Snapshot{}
	}
	row := v.rows[idx]

	allied := make(map[string]bool, len(row.Coalitions))
	for _, k := range row.Coalitions {
		allied[k] = true
	}

	keys := v.SeriesKeys()
	slices := make([]Slice, 0, len(keys))
	for i, k := range keys {
		val, ok := row.Value(k)
		slices = append(slices, Slice{
			Key:    k,
			Index:  i,
			Value:  val,
			OK:     ok,
			Allied: allied[k],
		})
	}
	return Snapshot{Date: row.Date, Slices: slices, Allied: allied}
}

// DeriveTrend returns every series restricted to the selected range.
func (v *View) DeriveTrend() Trend {
	if !v.hasRange {
		return Trend{}
	}
	lo := sort.Search(len(v.rows), func(i int) bool {
		return !v.rows[i].Date.Before(v.rng.Start)
	})
	hi := sort.Search(len(v.rows), func(i int) bool {
		return v.rows[i].Date.After(v.rng.End)
	})
	if hi < lo {
		hi = lo
	}
	inRange := v.rows[lo:hi]

	keys := v.SeriesKeys()
	series := make([]Series, 0, len(keys))
	for i, k := range keys {
		pts := make([]Point, 0, len(inRange))
		for _, row := range inRange {
			val, ok := row.Value(k)
			pts = append(pts, Point{Date: row.Date, Value: val, OK: ok})
		}
		series = append(series, Series{Key: k, Index: i, Points: pts})
	}
	return Trend{Series: series}
}

// RowsInRange returns the rows inside the selected range.
func (v *View) RowsInRange() Dataset {
	if !v.hasRange {
		return nil
	}
	var out Dataset
	for _, row := range v.rows {
		if v.rng.Contains(row.Date) {
			out = append(out, row)
		}
	}
	return out
}

// Views returns both derived views for the current state. They are computed
// together and cached until the dataset or range changes.
func (v *View) Views() Views {
	if v.cached != nil && v.cached.Version == v.version {
		return *v.cached
	}
	out := Views{
		Snapshot: v.DeriveSnapshot(),
		Trend:    v.DeriveTrend(),
		Range:    v.rng,
		HasRange: v.hasRange,
		Version:  v.version,
	}
	v.cached = &out
	return out
}
