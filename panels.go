package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/andareed/siftly-rangeview/rangeview"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

const (
	keyColWidth   = 12
	shareBarWidth = 16
)

func (m *model) seriesStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.palette.Hex(index)))
}

// pieView lists every slice of the snapshot with its share of the total.
func (m *model) pieView(snap rangeview.Snapshot, width int) string {
	inner := max(0, width-4)
	if snap.Empty() {
		return panelStyle.Width(width - 2).Render(titleStyle.Render("Snapshot") + "\n" + dimStyle.Render("No data"))
	}

	title := titleStyle.Render("Snapshot " + snap.Date.Format(dateLayout))
	lines := []string{title}
	total := snap.Total()
	barW := clamp(inner-keyColWidth-22, 4, shareBarWidth)

	for _, sl := range snap.Slices {
		swatch := m.seriesStyle(sl.Index).Render(swatchMarker)
		name := padRightPlain(truncatePlain(sl.Key, keyColWidth-2), keyColWidth-2)
		if sl.Allied {
			name = alliedStyle.Render(name)
		}
		marker := " "
		if sl.Allied {
			marker = alliedMarker
		}

		if !sl.OK {
			lines = append(lines, fmt.Sprintf("%s %s%s %s", swatch, name, marker, dimStyle.Render(missingMarker)))
			continue
		}
		share := 0.0
		if total > 0 && sl.Value > 0 {
			share = sl.Value / total
		}
		bar := shareBar(share, barW)
		lines = append(lines, fmt.Sprintf("%s %s%s %s %8s %5.1f%%",
			swatch, name, marker,
			m.seriesStyle(sl.Index).Render(bar),
			formatValue(sl.Value), share*100,
		))
	}

	if len(snap.Allied) > 0 {
		lines = append(lines, dimStyle.Render(alliedMarker+" coalition partners on this date"))
	}
	return panelStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func shareBar(share float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(share * float64(width)))
	filled = clamp(filled, 0, width)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// trendView draws one sparkline per series on a shared scale.
func (m *model) trendView(trend rangeview.Trend, width int) string {
	inner := max(0, width-4)
	if trend.Empty() {
		return panelStyle.Width(width - 2).Render(titleStyle.Render("Trend") + "\n" + dimStyle.Render("No data"))
	}

	lo, hi := trendBounds(trend)
	sparkW := max(4, inner-keyColWidth-20)
	lines := []string{titleStyle.Render("Trend")}
	for _, s := range trend.Series {
		name := padRightPlain(truncatePlain(s.Key, keyColWidth-2), keyColWidth-2)
		first, last := endpoints(s.Points)
		lines = append(lines, fmt.Sprintf("%s %s %8s → %-8s",
			name,
			m.seriesStyle(s.Index).Render(sparkline(s.Points, sparkW, lo, hi)),
			first, last,
		))
	}
	return panelStyle.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func trendBounds(trend rangeview.Trend) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range trend.Series {
		for _, p := range s.Points {
			if !p.OK {
				continue
			}
			lo = math.Min(lo, p.Value)
			hi = math.Max(hi, p.Value)
		}
	}
	if math.IsInf(lo, 1) {
		return 0, 0
	}
	return lo, hi
}

// sparkline samples points down to width cells. Missing values are blank.
func sparkline(points []rangeview.Point, width int, lo, hi float64) string {
	if len(points) == 0 || width <= 0 {
		return ""
	}
	n := min(width, len(points))
	out := make([]rune, n)
	for i := range out {
		p := points[i*len(points)/n]
		if !p.OK {
			out[i] = ' '
			continue
		}
		level := 0
		if hi > lo {
			level = int((p.Value - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		out[i] = sparkLevels[clamp(level, 0, len(sparkLevels)-1)]
	}
	return string(out)
}

func endpoints(points []rangeview.Point) (string, string) {
	first, last := missingMarker, missingMarker
	for _, p := range points {
		if p.OK {
			first = formatValue(p.Value)
			break
		}
	}
	for i := len(points) - 1; i >= 0; i-- {
		if points[i].OK {
			last = formatValue(points[i].Value)
			break
		}
	}
	return first, last
}

func (m *model) descriptionsView(width int) string {
	if m.data == nil || len(m.data.page.Descriptions) == 0 {
		return ""
	}
	paras := make([]string, 0, len(m.data.page.Descriptions))
	for _, d := range m.data.page.Descriptions {
		paras = append(paras, wordwrap.String(strings.TrimSpace(d), max(20, width-2)))
	}
	return descriptionStyle.Render(strings.Join(paras, "\n\n"))
}
