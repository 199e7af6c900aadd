package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andareed/siftly-rangeview/logging"
)

const (
	footerHeight  = 2
	minTableRows  = 3
	sideBySideMin = 100
)

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		return lipgloss.Place(
			m.terminalWidth, m.terminalHeight,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	contentW := max(20, m.terminalWidth-4)
	if m.ui.screen == screenMenu || m.data == nil {
		return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, m.menuView(contentW), m.footerView(contentW)))
	}
	return appstyle.Render(m.pageView(contentW))
}

func (m *model) menuView(width int) string {
	lines := []string{titleStyle.Render("sfrange"), ""}
	if len(m.pages) == 0 {
		lines = append(lines, dimStyle.Render("No pages configured"))
	}
	for i, p := range m.pages {
		label := fmt.Sprintf("%-24s %s", p.Title, dimStyle.Render(p.Source))
		if i == m.ui.menuCursor {
			lines = append(lines, menuSelectedStyle.Width(width).Render(label))
		} else {
			lines = append(lines, menuItemStyle.Width(width).Render(label))
		}
	}
	body := strings.Join(lines, "\n")
	pad := m.terminalHeight - lipgloss.Height(body) - footerHeight - 2
	if pad > 0 {
		body += strings.Repeat("\n", pad)
	}
	return body
}

func (m *model) pageView(width int) string {
	views := m.data.view.Views()

	title := titleStyle.Render(m.data.page.Title)
	if m.data.lastErr != nil {
		title += "  " + errorStyle.Render(m.data.lastErr.Error())
	}

	var charts string
	if width >= sideBySideMin {
		half := width / 2
		charts = lipgloss.JoinHorizontal(lipgloss.Top,
			m.pieView(views.Snapshot, half),
			m.trendView(views.Trend, width-half),
		)
	} else {
		charts = lipgloss.JoinVertical(lipgloss.Left,
			m.pieView(views.Snapshot, width),
			m.trendView(views.Trend, width),
		)
	}

	parts := []string{title, m.rangeBarView(width), charts}
	if d := m.descriptionsView(width); d != "" {
		parts = append(parts, d)
	}
	top := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// the table gets whatever height is left
	free := m.terminalHeight - lipgloss.Height(top) - footerHeight - 2 - 3
	m.viewport.Height = max(minTableRows, free)

	table := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), tableStyle.Render(m.viewport.View()))
	return lipgloss.JoinVertical(lipgloss.Left, top, table, m.footerView(width))
}

func (m *model) headerView() string {
	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		style := cellStyle.Width(col.Width)
		if col.Role == RoleSeries {
			style = style.Inherit(m.seriesStyle(col.Series))
		}
		cells = append(cells, style.Render(truncatePlain(col.Name, max(0, col.Width-2))))
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m *model) renderTable() string {
	if m.data == nil {
		return ""
	}
	if len(m.data.rows) == 0 {
		return dimStyle.Render("No rows in range")
	}
	var b strings.Builder
	for i := range m.data.rows {
		b.WriteString(m.data.rows[i].Render(cellStyle, m.data.header))
		b.WriteString("\n")
	}
	return b.String()
}

// footerView renders the 2-line footer.
func (m *model) footerView(width int) string {
	st := FooterState{
		Mode:   "MENU",
		Legend: "(? help · enter open · q quit)",
		Rows:   m.ui.menuCursor + 1,
	}
	st.TotalRows = len(m.pages)

	if m.data != nil {
		st.Mode = strings.ToUpper(m.ui.focus.String())
		st.FileName = m.data.page.Source
		st.RangeLabel = m.rangeStatusLabel()
		st.Loading = m.data.view.Pending()
		st.Rows = len(m.data.rows)
		st.TotalRows = len(m.data.view.Dataset())
		st.Legend = "(? help · tab handle · ←/→ move · d date · x export · y copy)"
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d", m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height)
	}
	return RenderFooter(width, st, DefaultFooterStyles())
}
