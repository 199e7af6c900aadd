package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-rangeview/dialogs"
	"github.com/andareed/siftly-rangeview/logging"
	"github.com/andareed/siftly-rangeview/rangeview"
	"github.com/andareed/siftly-rangeview/source"
)

// Messages carry the view they were issued for so a completion that
// arrives after the page was closed is ignored.
type (
	loadedMsg struct {
		view  *rangeview.View
		token rangeview.LoadToken
		table rangeview.RawTable
	}
	loadFailedMsg struct {
		view   *rangeview.View
		token  rangeview.LoadToken
		source string
		err    error
	}
	sourceChangedMsg struct {
		view *rangeview.View
		path string
	}
)

// reload issues a new load for the open page. Any load still in flight is
// superseded.
func (m *model) reload() tea.Cmd {
	if m.data == nil {
		return nil
	}
	tok := m.data.view.BeginLoad()
	logging.Debugf("load: issuing token %d for %s", tok, m.data.page.Source)
	return fetchCmd(m.ctx, m.data.view, tok, m.data.page.Source, sourceOptions(m))
}

func sourceOptions(m *model) source.FetchOptions {
	return source.FetchOptions{
		Sheet:   m.data.page.Sheet,
		Timeout: m.cfg.FetchTimeout,
	}
}

func fetchCmd(ctx context.Context, view *rangeview.View, tok rangeview.LoadToken, location string, opts source.FetchOptions) tea.Cmd {
	return func() tea.Msg {
		table, err := source.Fetch(ctx, location, opts)
		if err != nil {
			return loadFailedMsg{view: view, token: tok, source: location, err: err}
		}
		return loadedMsg{view: view, token: tok, table: table}
	}
}

func (m *model) handleLoaded(msg loadedMsg) tea.Cmd {
	if m.data == nil || msg.view != m.data.view {
		logging.Debugf("load: dropping result for a closed page")
		return nil
	}
	rows, applied := m.data.view.CompleteLoad(msg.token, msg.table)
	if !applied {
		logging.Debugf("load: dropping stale token %d", msg.token)
		return nil
	}
	m.data.lastErr = nil
	m.data.loadedAt = time.Now()
	m.ui.focus = dialogs.HandleStart
	m.refreshView("loaded")

	if len(rows) == 0 {
		logging.Warnf("load: %s has no dated rows", m.data.page.Source)
		return m.startNotice("No dated rows in source", "warn", errorNoticeDuration)
	}
	logging.Infof("load: %d rows from %s", len(rows), m.data.page.Source)
	return m.startNotice(fmt.Sprintf("Loaded %d rows", len(rows)), "success", noticeDuration)
}

func (m *model) handleLoadFailed(msg loadFailedMsg) tea.Cmd {
	if m.data == nil || msg.view != m.data.view {
		return nil
	}
	err := m.data.view.FailLoad(msg.token, msg.source, msg.err)
	if err == nil {
		logging.Debugf("load: ignoring failure of stale token %d", msg.token)
		return nil
	}
	logging.Errorf("load: %v", err)
	m.data.lastErr = err
	m.refreshView("load-failed")
	return m.startNotice(err.Error(), "error", errorNoticeDuration)
}

// startWatch follows a local source file and reloads on change.
func (m *model) startWatch() tea.Cmd {
	if m.data == nil || !m.cfg.Watch || source.IsRemote(m.data.page.Source) {
		return nil
	}
	w, err := source.NewWatcher(m.data.page.Source, m.cfg.WatchDebounce)
	if err != nil {
		logging.Warnf("watch: %v", err)
		return m.startNotice("Watch disabled: "+err.Error(), "warn", errorNoticeDuration)
	}
	ctx, cancel := context.WithCancel(m.ctx)
	if err := w.Start(ctx); err != nil {
		cancel()
		w.Close()
		logging.Warnf("watch: %v", err)
		return m.startNotice("Watch disabled: "+err.Error(), "warn", errorNoticeDuration)
	}
	m.data.watcher = w
	m.data.stopWatcher = cancel
	return waitForChange(m.data.view, w.Changes())
}

func waitForChange(view *rangeview.View, changes <-chan string) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-changes
		if !ok {
			return nil
		}
		return sourceChangedMsg{view: view, path: path}
	}
}

func (m *model) handleSourceChanged(msg sourceChangedMsg) tea.Cmd {
	if m.data == nil || msg.view != m.data.view || m.data.watcher == nil {
		return nil
	}
	logging.Infof("watch: %s changed, reloading", msg.path)
	return tea.Batch(m.reload(), waitForChange(m.data.view, m.data.watcher.Changes()))
}
