// Package rangeview owns a loaded time series and the selected date range,
// and derives the snapshot (pie) and trend (line) views from them.
package rangeview

import (
	"time"
)

// Range is the selected [Start, End] window, both ends inclusive.
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether d lies inside the range.
func (r Range) Contains(d time.Time) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days is the number of calendar days covered, inclusive.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// LoadToken identifies one Load request. Only the newest token may apply.
type LoadToken uint64

// View is the single owner of a Dataset and its Range. It is not safe for
// concurrent use; the UI loop is its only writer.
type View struct {
	opts Options

	rows     Dataset
	rng      Range
	hasRange bool

	version  uint64
	cached   *Views
	loadSeq  LoadToken
	lastLoad LoadToken
}

// New returns an empty view.
func New(opts Options) *View {
	return &View{opts: opts.withDefaults()}
}

// Options returns the effective options.
func (v *View) Options() Options { return v.opts }

// Load replaces the dataset and range in one step. Records with a missing
// or unparseable date are dropped. Load supersedes any token issued before
// it, so a late CompleteLoad cannot overwrite the result.
func (v *View) Load(table RawTable) Dataset {
	v.loadSeq++
	v.lastLoad = v.loadSeq
	return v.apply(table)
}

func (v *View) apply(table RawTable) Dataset {
	rows := buildDataset(table, v.opts)
	v.rows = rows
	v.hasRange = len(rows) > 0
	if v.hasRange {
		v.rng = Range{Start: rows[0].Date, End: rows[len(rows)-1].Date}
	} else {
		v.rng = Range{}
	}
	v.touch()
	return rows
}

// BeginLoad issues a token for an asynchronous load. Any earlier token is
// superseded from this point on.
func (v *View) BeginLoad() LoadToken {
	v.loadSeq++
	return v.loadSeq
}

// CompleteLoad applies table if tok is the latest issued token. A stale
// completion is discarded and reported with applied=false.
func (v *View) CompleteLoad(tok LoadToken, table RawTable) (Dataset, bool) {
	if tok != v.loadSeq {
		return nil, false
	}
	v.lastLoad = tok
	return v.apply(table), true
}

// FailLoad reports a retrieval failure for tok. Prior state is kept. The
// returned error is nil when tok has already been superseded.
func (v *View) FailLoad(tok LoadToken, source string, err error) error {
	if tok != v.loadSeq {
		return nil
	}
	v.lastLoad = tok
	return &RetrievalError{Source: source, Err: err}
}

// Pending reports whether a load has been issued but not yet applied.
func (v *View) Pending() bool {
	return v.loadSeq != v.lastLoad
}

// Dataset returns the loaded rows. Callers must not modify them.
func (v *View) Dataset() Dataset { return v.rows }

// Empty reports whether no usable rows are loaded.
func (v *View) Empty() bool { return len(v.rows) == 0 }

// Range returns the selected range; ok is false when nothing is loaded.
func (v *View) Range() (Range, bool) { return v.rng, v.hasRange }

// Bounds returns the first and last date of the dataset.
func (v *View) Bounds() (time.Time, time.Time, bool) {
	if len(v.rows) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return v.rows[0].Date, v.rows[len(v.rows)-1].Date, true
}

// SeriesKeys returns the series in the order of the first row.
func (v *View) SeriesKeys() []string {
	if len(v.rows) == 0 {
		return nil
	}
	return v.rows[0].Keys
}

// MoveRangeStart sets the start to d. A move past the end or before the
// first date is ignored.
func (v *View) MoveRangeStart(d time.Time) Range {
	if !v.hasRange {
		return v.rng
	}
	d = Day(d)
	lo, _, _ := v.Bounds()
	if d.After(v.rng.End) || d.Before(lo) || d.Equal(v.rng.Start) {
		return v.rng
	}
	v.rng.Start = d
	v.touch()
	return v.rng
}

// MoveRangeEnd sets the end to d. A move before the start or past the last
// date is ignored.
func (v *View) MoveRangeEnd(d time.Time) Range {
	if !v.hasRange {
		return v.rng
	}
	d = Day(d)
	_, hi, _ := v.Bounds()
	if d.Before(v.rng.Start) || d.After(hi) || d.Equal(v.rng.End) {
		return v.rng
	}
	v.rng.End = d
	v.touch()
	return v.rng
}

// StepStart moves the start handle by days.
func (v *View) StepStart(days int) Range {
	return v.MoveRangeStart(v.rng.Start.AddDate(0, 0, days))
}

// StepEnd moves the end handle by days.
func (v *View) StepEnd(days int) Range {
	return v.MoveRangeEnd(v.rng.End.AddDate(0, 0, days))
}

// ResetRange selects the full span again.
func (v *View) ResetRange() Range {
	lo, hi, ok := v.Bounds()
	if !ok {
		return v.rng
	}
	if v.rng.Start.Equal(lo) && v.rng.End.Equal(hi) {
		return v.rng
	}
	v.rng = Range{Start: lo, End: hi}
	v.touch()
	return v.rng
}

func (v *View) touch() {
	v.version++
	v.cached = nil
}
