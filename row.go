package main

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/andareed/siftly-rangeview/rangeview"
)

// tableRow is one dataset row flattened into display cells, in column order.
type tableRow struct {
	date   time.Time
	cols   []string
	allied map[int]bool // series column index -> allied on this date
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func newTableRow(r rangeview.Row, keys []string, sep string) tableRow {
	cols := make([]string, 0, len(keys)+2)
	cols = append(cols, r.Date.Format(dateLayout))

	allied := make(map[string]bool, len(r.Coalitions))
	for _, c := range r.Coalitions {
		allied[c] = true
	}
	row := tableRow{date: r.Date, allied: make(map[int]bool)}
	for i, k := range keys {
		if v, ok := r.Value(k); ok {
			cols = append(cols, formatValue(v))
		} else {
			cols = append(cols, "")
		}
		if allied[k] {
			row.allied[i+1] = true
		}
	}
	cols = append(cols, strings.Join(r.Coalitions, sep))
	row.cols = cols
	return row
}

func (r *tableRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String is tab separated, which pastes cleanly into spreadsheets.
func (r *tableRow) String() string {
	return r.Join("\t")
}

func (r *tableRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string

	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}

		cellText := truncate.StringWithTail(text, uint(max(0, meta.Width-2)), "…")
		cell := style.Width(meta.Width).Render(cellText)
		if r.allied[i] {
			cell = style.Width(meta.Width).Inherit(alliedStyle).Render(cellText)
		}
		rendered = append(rendered, cell)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// buildTable flattens the rows in range of v into table rows and columns.
func buildTable(v *rangeview.View) ([]ColumnMeta, []tableRow) {
	keys := v.SeriesKeys()
	sep := v.Options().CoalitionSep
	inRange := v.RowsInRange()
	rows := make([]tableRow, 0, len(inRange))
	for _, r := range inRange {
		rows = append(rows, newTableRow(r, keys, sep))
	}
	header := buildColumns(v.Options(), keys)
	markEmptyColumns(header, rows)
	return header, rows
}
