package rangeview

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotUsesRangeEndOnly(t *testing.T) {
	v := New(Options{})
	v.Load(threeRowTable())
	v.MoveRangeStart(jan(3))
	v.MoveRangeEnd(jan(7))

	snap := v.DeriveSnapshot()
	assert.Equal(t, jan(5), snap.Date)
	require.Len(t, snap.Slices, 2)
	assert.Equal(t, 15.0, snap.Slices[0].Value)
	assert.Equal(t, 18.0, snap.Slices[1].Value)

	v.MoveRangeStart(jan(7))
	assert.Equal(t, jan(5), v.DeriveSnapshot().Date, "start handle does not affect the snapshot")
}

func TestSnapshotCoalitionEmphasis(t *testing.T) {
	v := New(Options{})
	v.Load(RawTable{
		Fields: []string{"Date", "A", "B", "C", "Coalitions"},
		Records: []RawRecord{
			{"Date": "2024-01-01", "A": "1", "B": "2", "C": "3", "Coalitions": "A-B"},
		},
	})

	snap := v.DeriveSnapshot()
	got := map[string]bool{}
	for _, s := range snap.Slices {
		got[s.Key] = s.Allied
	}
	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": false}, got)
	assert.Equal(t, 6.0, snap.Total())
}

// Jan 1, Jan 5 and Jan 10 rows, walked through a full load and one end move.
func TestEndToEnd(t *testing.T) {
	v := New(Options{})
	v.Load(threeRowTable())

	rng, _ := v.Range()
	assert.Equal(t, Range{Start: jan(1), End: jan(10)}, rng)

	views := v.Views()
	wantSnap := Snapshot{
		Date: jan(10),
		Slices: []Slice{
			{Key: "A", Index: 0, Value: 12, OK: true, Allied: true},
			{Key: "B", Index: 1, Value: 25, OK: true, Allied: false},
		},
		Allied: map[string]bool{"A": true},
	}
	if diff := cmp.Diff(wantSnap, views.Snapshot); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	wantTrend := Trend{Series: []Series{
		{Key: "A", Index: 0, Points: []Point{{jan(1), 10, true}, {jan(5), 15, true}, {jan(10), 12, true}}},
		{Key: "B", Index: 1, Points: []Point{{jan(1), 20, true}, {jan(5), 18, true}, {jan(10), 25, true}}},
	}}
	if diff := cmp.Diff(wantTrend, views.Trend); diff != "" {
		t.Fatalf("trend mismatch (-want +got):\n%s", diff)
	}

	v.MoveRangeEnd(jan(5))
	views = v.Views()
	wantSnap = Snapshot{
		Date: jan(5),
		Slices: []Slice{
			{Key: "A", Index: 0, Value: 15, OK: true},
			{Key: "B", Index: 1, Value: 18, OK: true},
		},
		Allied: map[string]bool{},
	}
	if diff := cmp.Diff(wantSnap, views.Snapshot); diff != "" {
		t.Fatalf("snapshot after move mismatch (-want +got):\n%s", diff)
	}
	wantTrend = Trend{Series: []Series{
		{Key: "A", Index: 0, Points: []Point{{jan(1), 10, true}, {jan(5), 15, true}}},
		{Key: "B", Index: 1, Points: []Point{{jan(1), 20, true}, {jan(5), 18, true}}},
	}}
	if diff := cmp.Diff(wantTrend, views.Trend); diff != "" {
		t.Fatalf("trend after move mismatch (-want +got):\n%s", diff)
	}
}

func TestTrendPointCountMonotonicUnderShrink(t *testing.T) {
	v := New(Options{})
	records := make([]RawRecord, 0, 30)
	for d := 1; d <= 30; d += 2 {
		records = append(records, RawRecord{
			"Date": jan(d).Format("2006-01-02"),
			"A":    "1",
		})
	}
	v.Load(RawTable{Fields: []string{"Date", "A"}, Records: records})

	prev := len(v.DeriveTrend().Series[0].Points)
	assert.Equal(t, 15, prev)
	for i := 0; i < 20; i++ {
		if i%2 == 0 {
			v.StepStart(1)
		} else {
			v.StepEnd(-1)
		}
		trend := v.DeriveTrend()
		n := len(trend.Series[0].Points)
		assert.LessOrEqual(t, n, prev)
		assert.Equal(t, len(v.RowsInRange()), n)
		prev = n
	}
}

func TestTrendEmptyWindowKeepsSeries(t *testing.T) {
	v := New(Options{})
	v.Load(threeRowTable())
	v.MoveRangeStart(jan(6))
	v.MoveRangeEnd(jan(8))

	trend := v.DeriveTrend()
	require.Len(t, trend.Series, 2)
	assert.Empty(t, trend.Series[0].Points)
	assert.Empty(t, trend.Series[1].Points)
	assert.True(t, trend.Empty())

	assert.Equal(t, jan(5), v.DeriveSnapshot().Date)
}

func TestMissingAndNonNumericValues(t *testing.T) {
	v := New(Options{})
	v.Load(RawTable{
		Fields: []string{"Date", "A", "B"},
		Records: []RawRecord{
			{"Date": "2024-01-01", "A": "1", "B": "n/a"},
			{"Date": "2024-01-02", "A": "2"},
		},
	})

	trend := v.DeriveTrend()
	require.Len(t, trend.Series, 2)
	b := trend.Series[1]
	require.Len(t, b.Points, 2)
	assert.False(t, b.Points[0].OK)
	assert.False(t, b.Points[1].OK)

	snap := v.DeriveSnapshot()
	assert.False(t, snap.Slices[1].OK)
	assert.Equal(t, 2.0, snap.Total())
}

func TestDuplicateDatesKeepEncounterOrder(t *testing.T) {
	v := New(Options{})
	v.Load(RawTable{
		Fields: []string{"Date", "A"},
		Records: []RawRecord{
			{"Date": "2024-01-02", "A": "1"},
			{"Date": "2024-01-01", "A": "0"},
			{"Date": "2024-01-02", "A": "2"},
		},
	})
	assert.Equal(t, 2.0, v.DeriveSnapshot().Slices[0].Value)
}

func TestViewsCachedUntilMutation(t *testing.T) {
	v := New(Options{})
	v.Load(threeRowTable())

	a := v.Views()
	b := v.Views()
	assert.Equal(t, a.Version, b.Version)

	v.MoveRangeEnd(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, a.Version, v.Views().Version, "rejected move does not invalidate")

	v.MoveRangeEnd(jan(5))
	c := v.Views()
	assert.NotEqual(t, a.Version, c.Version)
	assert.Equal(t, c.Range.End, c.Snapshot.Date)
	assert.Len(t, c.Trend.Series[0].Points, 2)
}
