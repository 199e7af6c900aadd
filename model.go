package main

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-rangeview/chartout"
	"github.com/andareed/siftly-rangeview/clipboard"
	"github.com/andareed/siftly-rangeview/config"
	"github.com/andareed/siftly-rangeview/dialogs"
	"github.com/andareed/siftly-rangeview/logging"
)

type model struct {
	ctx     context.Context
	cfg     *config.Config
	pages   []config.Page
	palette chartout.Palette

	data *pageState // nil while the menu is shown
	ui   uiState

	activeDialog dialogs.Dialog
	viewport     viewport.Model
	ready        bool

	terminalWidth  int
	terminalHeight int

	// copyText is swapped in tests.
	copyText func(string) error
}

func newModel(ctx context.Context, cfg *config.Config, pages []config.Page) *model {
	if ctx == nil {
		ctx = context.Background()
	}
	return &model{
		ctx:      ctx,
		cfg:      cfg,
		pages:    pages,
		palette:  chartout.Palette(cfg.Palette),
		copyText: clipboard.Copy,
	}
}

func (m *model) Init() tea.Cmd {
	logging.Infof("sfrange: initialised with %d page(s)", len(m.pages))
	if len(m.pages) == 1 {
		return m.openPage(0)
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		if !m.ready {
			m.viewport = viewport.New(max(0, msg.Width-6), 5)
			m.ready = true
		}
		m.refreshView("resize")
		return m, nil

	case clearNoticeMsg:
		m.clearNotice(msg)
		return m, nil

	case loadedMsg:
		return m, m.handleLoaded(msg)
	case loadFailedMsg:
		return m, m.handleLoadFailed(msg)
	case sourceChangedMsg:
		return m, m.handleSourceChanged(msg)
	case exportDoneMsg:
		return m, m.handleExportDone(msg)

	case dialogs.DateConfirmedMsg:
		m.closeDialog()
		if m.data == nil {
			return m, nil
		}
		if err := m.moveHandleTo(msg.Handle, msg.Value); err != nil {
			return m, m.startNotice(err.Error(), "warn", errorNoticeDuration)
		}
		m.refreshView("date-typed")
		return m, nil
	case dialogs.ExportConfirmedMsg:
		m.closeDialog()
		return m, m.exportCmd(msg.Dir, msg.Format)
	case dialogs.DateCanceledMsg, dialogs.ExportCanceledMsg, dialogs.HelpClosedMsg:
		m.closeDialog()
		return m, nil

	case tea.KeyMsg:
		if m.activeDialog != nil && m.activeDialog.IsVisible() {
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			return m, cmd
		}
		if m.ui.screen == screenMenu {
			return m.handleMenuKey(msg)
		}
		return m.handlePageKey(msg)
	}

	// let the viewport see mouse wheel events
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.MenuUp):
		if m.ui.menuCursor > 0 {
			m.ui.menuCursor--
		}
	case key.Matches(msg, Keys.MenuDown):
		if m.ui.menuCursor < len(m.pages)-1 {
			m.ui.menuCursor++
		}
	case key.Matches(msg, Keys.Open):
		return m, m.openPage(m.ui.menuCursor)
	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog("Menu", Keys.MenuLegend()))
	}
	return m, nil
}

func (m *model) handlePageKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	changed := false
	switch {
	case key.Matches(msg, Keys.Quit):
		m.closePage()
		return m, tea.Quit
	case key.Matches(msg, Keys.Back):
		if len(m.pages) > 1 {
			m.closePage()
		}
		return m, nil
	case key.Matches(msg, Keys.OpenHelp):
		return m, m.openDialog(dialogs.NewHelpDialog(m.data.page.Title, Keys.PageLegend()))
	case key.Matches(msg, Keys.Reload):
		return m, tea.Batch(m.reload(), m.startNotice("Reloading…", "info", noticeDuration))
	case key.Matches(msg, Keys.PageUp):
		m.viewport.PageUp()
		return m, nil
	case key.Matches(msg, Keys.PageDown):
		m.viewport.PageDown()
		return m, nil
	}

	// everything below needs data
	if m.data.view.Empty() {
		return m, nil
	}

	switch {
	case key.Matches(msg, Keys.SwitchFocus):
		m.toggleFocus()
	case key.Matches(msg, Keys.WeekBack):
		changed = m.moveFocused(-stepWeek)
	case key.Matches(msg, Keys.WeekFwd):
		changed = m.moveFocused(stepWeek)
	case key.Matches(msg, Keys.StepBack):
		changed = m.moveFocused(-stepDay)
	case key.Matches(msg, Keys.StepFwd):
		changed = m.moveFocused(stepDay)
	case key.Matches(msg, Keys.JumpFirst):
		changed = m.jumpFocused(false)
	case key.Matches(msg, Keys.JumpLast):
		changed = m.jumpFocused(true)
	case key.Matches(msg, Keys.ResetRange):
		before, _ := m.data.view.Range()
		changed = m.data.view.ResetRange() != before
	case key.Matches(msg, Keys.TypeDate):
		return m, m.openDialog(dialogs.NewDateDialog(m.ui.focus, m.focusedDate()))
	case key.Matches(msg, Keys.Export):
		return m, m.openDialog(dialogs.NewExportDialog(m.cfg.Export.Dir, m.cfg.Export.Format))
	case key.Matches(msg, Keys.CopyView):
		return m, m.copySnapshot()
	}

	if changed {
		m.refreshView("range-moved")
	}
	return m, nil
}

func (m *model) openPage(i int) tea.Cmd {
	if i < 0 || i >= len(m.pages) {
		return nil
	}
	m.closePage()
	m.ui.menuCursor = i
	m.data = newPageState(m.cfg, m.pages[i])
	m.ui.screen = screenPage
	m.ui.focus = dialogs.HandleStart
	m.viewport.GotoTop()
	m.refreshView("page-open")
	logging.Infof("page: opened %q (%s)", m.data.page.Title, m.data.page.Source)
	return tea.Batch(m.reload(), m.startWatch())
}

func (m *model) closePage() {
	if m.data == nil {
		return
	}
	logging.Debugf("page: closing %q", m.data.page.Title)
	m.data.close()
	m.data = nil
	m.ui.screen = screenMenu
}

func (m *model) openDialog(d dialogs.Dialog) tea.Cmd {
	m.activeDialog = d
	d.Show()
	return d.Focus()
}

func (m *model) closeDialog() {
	if m.activeDialog != nil {
		m.activeDialog.Hide()
	}
	m.activeDialog = nil
}

func (m *model) copySnapshot() tea.Cmd {
	snap := m.data.view.Views().Snapshot
	if snap.Empty() {
		return m.startNotice("Nothing to copy", "warn", noticeDuration)
	}
	if err := m.copyText(snapshotText(m.data.page.Title, snap)); err != nil {
		logging.Errorf("copy: %v", err)
		return m.startNotice("Copy failed: "+err.Error(), "error", errorNoticeDuration)
	}
	return m.startNotice("Snapshot copied", "success", noticeDuration)
}

// refreshView republishes the derived views and rebuilds the table.
func (m *model) refreshView(reason string) {
	logging.Debugf("refreshView: %s", reason)
	if m.data == nil {
		return
	}
	views := m.data.view.Views()
	m.data.board.Publish(views)

	header, rows := buildTable(m.data.view)
	m.data.header = layoutColumns(header, max(0, m.terminalWidth-8))
	m.data.rows = rows

	if m.ready {
		m.viewport.Width = max(0, m.terminalWidth-6)
		m.viewport.SetContent(m.renderTable())
	}
}
