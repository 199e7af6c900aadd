package chartout

import (
	"errors"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/andareed/siftly-rangeview/rangeview"
)

// ErrNothingToRender is returned for an empty snapshot or trend.
var ErrNothingToRender = errors.New("nothing to render")

const (
	alliedStrokeWidth = 6.0
	plainStrokeWidth  = 1.0
	dateLayout        = "2006-01-02"
)

// Options sizes and colours the charts.
type Options struct {
	Title   string
	Width   int
	Height  int
	Palette Palette
}

func (o Options) size() (int, int) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 800
	}
	if h <= 0 {
		h = 480
	}
	return w, h
}

// PieChart builds the snapshot chart. Allied slices get a heavy dark border.
// Slices without a positive value are left out since they have no area.
func PieChart(snap rangeview.Snapshot, opts Options) (*chart.PieChart, error) {
	if snap.Empty() {
		return nil, ErrNothingToRender
	}

	values := make([]chart.Value, 0, len(snap.Slices))
	for _, sl := range snap.Slices {
		if !sl.OK || sl.Value <= 0 {
			continue
		}
		style := chart.Style{
			FillColor:   opts.Palette.Color(sl.Index),
			StrokeColor: drawing.ColorWhite,
			StrokeWidth: plainStrokeWidth,
		}
		label := sl.Key
		if sl.Allied {
			style.StrokeColor = drawing.ColorBlack
			style.StrokeWidth = alliedStrokeWidth
			label += " *"
		}
		values = append(values, chart.Value{Label: label, Value: sl.Value, Style: style})
	}
	if len(values) == 0 {
		return nil, ErrNothingToRender
	}

	w, h := opts.size()
	title := opts.Title
	if title == "" {
		title = "Snapshot"
	}
	return &chart.PieChart{
		Title:  fmt.Sprintf("%s (%s)", title, snap.Date.Format(dateLayout)),
		Width:  w,
		Height: h,
		Values: values,
	}, nil
}

// LineChart builds the trend chart with one time series per key.
func LineChart(trend rangeview.Trend, opts Options) (*chart.Chart, error) {
	if trend.Empty() {
		return nil, ErrNothingToRender
	}

	var series []chart.Series
	for _, s := range trend.Series {
		ts := chart.TimeSeries{
			Name: s.Key,
			Style: chart.Style{
				StrokeColor: opts.Palette.Color(s.Index),
				StrokeWidth: 2,
				DotColor:    opts.Palette.Color(s.Index),
				DotWidth:    3,
			},
		}
		for _, p := range s.Points {
			if !p.OK {
				continue
			}
			ts.XValues = append(ts.XValues, p.Date)
			ts.YValues = append(ts.YValues, p.Value)
		}
		switch len(ts.XValues) {
		case 0:
			continue
		case 1:
			// go-chart needs a non-zero x range; pad a single sample out by a day
			ts.XValues = append(ts.XValues, ts.XValues[0].AddDate(0, 0, 1))
			ts.YValues = append(ts.YValues, ts.YValues[0])
		}
		series = append(series, ts)
	}
	if len(series) == 0 {
		return nil, ErrNothingToRender
	}

	w, h := opts.size()
	title := opts.Title
	if title == "" {
		title = "Trend"
	}
	ch := &chart.Chart{
		Title:  title,
		Width:  w,
		Height: h,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(dateLayout),
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(ch)}
	return ch, nil
}
