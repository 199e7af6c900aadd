package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-rangeview/dialogs"
	"github.com/andareed/siftly-rangeview/rangeview"
)

const (
	dateLayout  = "2006-01-02"
	stepDay     = 1
	stepWeek    = 7
	barMinWidth = 10
)

// moveFocused steps the focused handle by days. It reports whether the
// range changed.
func (m *model) moveFocused(days int) bool {
	v := m.data.view
	before, ok := v.Range()
	if !ok {
		return false
	}
	var after rangeview.Range
	if m.ui.focus == dialogs.HandleEnd {
		after = v.StepEnd(days)
	} else {
		after = v.StepStart(days)
	}
	return after != before
}

// jumpFocused pushes the focused handle as far as it may go: the dataset
// bound on its own side, or the other handle.
func (m *model) jumpFocused(forward bool) bool {
	v := m.data.view
	before, ok := v.Range()
	if !ok {
		return false
	}
	lo, hi, _ := v.Bounds()
	var after rangeview.Range
	switch {
	case m.ui.focus == dialogs.HandleStart && forward:
		after = v.MoveRangeStart(before.End)
	case m.ui.focus == dialogs.HandleStart:
		after = v.MoveRangeStart(lo)
	case forward:
		after = v.MoveRangeEnd(hi)
	default:
		after = v.MoveRangeEnd(before.Start)
	}
	return after != before
}

// moveHandleTo sets handle to the typed date. Only a parseable date inside
// the allowed span is applied.
func (m *model) moveHandleTo(h dialogs.Handle, raw string) error {
	v := m.data.view
	before, ok := v.Range()
	if !ok {
		return fmt.Errorf("no data loaded")
	}
	d, ok := rangeview.ParseDate(raw, v.Options().DateLayouts)
	if !ok {
		return fmt.Errorf("unrecognised date %q", raw)
	}
	d = rangeview.Day(d)

	var after rangeview.Range
	current := before.Start
	if h == dialogs.HandleEnd {
		after = v.MoveRangeEnd(d)
		current = before.End
	} else {
		after = v.MoveRangeStart(d)
	}
	if after == before && !d.Equal(current) {
		lo, hi, _ := v.Bounds()
		if h == dialogs.HandleEnd {
			lo = before.Start
		} else {
			hi = before.End
		}
		return fmt.Errorf("%s must be between %s and %s", h, lo.Format(dateLayout), hi.Format(dateLayout))
	}
	return nil
}

func (m *model) toggleFocus() {
	if m.ui.focus == dialogs.HandleStart {
		m.ui.focus = dialogs.HandleEnd
	} else {
		m.ui.focus = dialogs.HandleStart
	}
}

func (m *model) focusedDate() time.Time {
	rng, ok := m.data.view.Range()
	if !ok {
		return time.Time{}
	}
	if m.ui.focus == dialogs.HandleEnd {
		return rng.End
	}
	return rng.Start
}

// rangeBarView renders both handles above a scrubber of the full span.
func (m *model) rangeBarView(width int) string {
	innerWidth := max(0, width-4)
	lineStyle := lipgloss.NewStyle().Width(innerWidth)

	rng, ok := m.data.view.Range()
	if !ok {
		lines := []string{
			dimStyle.Render("Start: ----------   End: ----------"),
			dimStyle.Render("No data loaded"),
		}
		return rangeArea.Width(width - 2).Render(strings.Join(lines, "\n"))
	}

	start := handleStyle
	end := handleStyle
	if m.ui.focus == dialogs.HandleEnd {
		end = handleFocusedStyle
	} else {
		start = handleFocusedStyle
	}
	handles := fmt.Sprintf("Start: %s   End: %s   %s",
		start.Render(rng.Start.Format(dateLayout)),
		end.Render(rng.End.Format(dateLayout)),
		dimStyle.Render(fmt.Sprintf("(%d days)", rng.Days())),
	)

	lines := []string{
		lineStyle.Render(handles),
		lineStyle.Render(m.scrubberLine(innerWidth)),
	}
	return rangeArea.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m *model) scrubberLine(width int) string {
	lo, hi, ok := m.data.view.Bounds()
	rng, _ := m.data.view.Range()
	if !ok {
		return "Scrubber: n/a"
	}

	minLabel := lo.Format(dateLayout)
	maxLabel := hi.Format(dateLayout)
	padding := 2
	barWidth := width - len(minLabel) - len(maxLabel) - padding*2
	if barWidth < barMinWidth {
		return fmt.Sprintf("Span: %s - %s", minLabel, maxLabel)
	}

	startPos, endPos := scrubberPositions(lo, hi, rng, barWidth)

	var b strings.Builder
	b.WriteString(strings.Repeat("-", startPos))
	if endPos > startPos {
		fill := strings.Repeat("=", max(0, endPos-startPos-1))
		b.WriteString("[" + scrubberFill.Render(fill) + "]")
	} else {
		b.WriteString("|")
	}
	b.WriteString(strings.Repeat("-", max(0, barWidth-endPos-1)))

	return fmt.Sprintf("%s  %s  %s", minLabel, b.String(), maxLabel)
}

// scrubberPositions maps the range handles onto cells [0, barWidth).
func scrubberPositions(lo, hi time.Time, rng rangeview.Range, barWidth int) (int, int) {
	span := hi.Sub(lo)
	if span <= 0 || barWidth <= 1 {
		return 0, 0
	}
	pos := func(t time.Time) int {
		p := int(float64(barWidth-1) * t.Sub(lo).Seconds() / span.Seconds())
		return clamp(p, 0, barWidth-1)
	}
	return pos(rng.Start), pos(rng.End)
}

func (m *model) rangeStatusLabel() string {
	if m.data == nil {
		return ""
	}
	rng, ok := m.data.view.Range()
	if !ok {
		return "Range: none"
	}
	return fmt.Sprintf("Range: %s - %s", rng.Start.Format(dateLayout), rng.End.Format(dateLayout))
}
