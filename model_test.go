package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-rangeview/config"
	"github.com/andareed/siftly-rangeview/dialogs"
	"github.com/andareed/siftly-rangeview/rangeview"
)

const fixtureCSV = `Date,A,B,Coalitions
2024-01-01,10,20,
2024-01-05,15,18,
2024-01-10,12,25,A-B
`

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixtureCSV), 0o600))
	return path
}

func fixtureTable() rangeview.RawTable {
	return rangeview.RawTable{
		Fields: []string{"Date", "A", "B", "Coalitions"},
		Records: []rangeview.RawRecord{
			{"Date": "2024-01-01", "A": "10", "B": "20"},
			{"Date": "2024-01-05", "A": "15", "B": "18"},
			{"Date": "2024-01-10", "A": "12", "B": "25", "Coalitions": "A-B"},
		},
	}
}

// newPageModel returns a model with one open page and no data yet.
func newPageModel(t *testing.T) *model {
	t.Helper()
	cfg := config.Default()
	pages := []config.Page{{Title: "Electoral", Source: "output.csv"}, {Title: "Other", Source: "other.csv"}}
	m := newModel(context.Background(), cfg, pages)
	m.copyText = func(string) error { return nil }
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

	m.data = newPageState(cfg, pages[0])
	m.ui.screen = screenPage
	return m
}

func loadFixture(t *testing.T, m *model) {
	t.Helper()
	tok := m.data.view.BeginLoad()
	m.Update(loadedMsg{view: m.data.view, token: tok, table: fixtureTable()})
	require.False(t, m.data.view.Empty())
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "shift+left":
		return tea.KeyMsg{Type: tea.KeyShiftLeft}
	case "shift+right":
		return tea.KeyMsg{Type: tea.KeyShiftRight}
	case "home":
		return tea.KeyMsg{Type: tea.KeyHome}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func rangeOf(t *testing.T, m *model) rangeview.Range {
	t.Helper()
	rng, ok := m.data.view.Range()
	require.True(t, ok)
	return rng
}

func TestLoadedMessageAppliesData(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	rng := rangeOf(t, m)
	assert.Equal(t, day("2024-01-01"), rng.Start)
	assert.Equal(t, day("2024-01-10"), rng.End)
	assert.Len(t, m.data.rows, 3)
	assert.Equal(t, "success", m.ui.noticeType)

	pie, line := m.data.board.Live()
	assert.True(t, pie)
	assert.True(t, line)
}

func TestStaleLoadIsDropped(t *testing.T) {
	m := newPageModel(t)
	first := m.data.view.BeginLoad()
	second := m.data.view.BeginLoad()

	newer := rangeview.RawTable{
		Fields:  []string{"Date", "A"},
		Records: []rangeview.RawRecord{{"Date": "2023-06-01", "A": "1"}},
	}
	m.Update(loadedMsg{view: m.data.view, token: second, table: newer})
	m.Update(loadedMsg{view: m.data.view, token: first, table: fixtureTable()})

	require.Len(t, m.data.view.Dataset(), 1)
	assert.Equal(t, day("2023-06-01"), m.data.view.Dataset()[0].Date)
	assert.False(t, m.data.view.Pending())
}

func TestLoadForClosedPageIsIgnored(t *testing.T) {
	m := newPageModel(t)
	old := m.data.view
	tok := old.BeginLoad()

	m.closePage()
	m.data = newPageState(m.cfg, m.pages[1])
	m.ui.screen = screenPage

	m.Update(loadedMsg{view: old, token: tok, table: fixtureTable()})
	assert.True(t, m.data.view.Empty())
}

func TestLoadFailureKeepsPreviousData(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	tok := m.data.view.BeginLoad()
	m.Update(loadFailedMsg{view: m.data.view, token: tok, source: "output.csv", err: errors.New("boom")})

	assert.Len(t, m.data.view.Dataset(), 3)
	var rerr *rangeview.RetrievalError
	require.ErrorAs(t, m.data.lastErr, &rerr)
	assert.Equal(t, "error", m.ui.noticeType)
	assert.Contains(t, m.ui.noticeMsg, "boom")
}

func TestHandleKeysMoveTheRange(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	m.Update(keyMsg("right"))
	assert.Equal(t, day("2024-01-02"), rangeOf(t, m).Start)

	m.Update(keyMsg("tab"))
	assert.Equal(t, dialogs.HandleEnd, m.ui.focus)
	m.Update(keyMsg("shift+left"))
	assert.Equal(t, day("2024-01-03"), rangeOf(t, m).End)
	assert.Len(t, m.data.rows, 0, "no row between 01-02 and 01-03")

	m.Update(keyMsg("end"))
	assert.Equal(t, day("2024-01-10"), rangeOf(t, m).End)
	assert.Len(t, m.data.rows, 2)

	m.Update(keyMsg("home"))
	assert.Equal(t, rangeOf(t, m).Start, rangeOf(t, m).End, "end stops at the start handle")

	m.Update(keyMsg("0"))
	rng := rangeOf(t, m)
	assert.Equal(t, day("2024-01-01"), rng.Start)
	assert.Equal(t, day("2024-01-10"), rng.End)
}

func TestMovesPastBoundsAreIgnored(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	m.Update(keyMsg("left"))
	assert.Equal(t, day("2024-01-01"), rangeOf(t, m).Start)

	m.Update(keyMsg("tab"))
	m.Update(keyMsg("shift+right"))
	assert.Equal(t, day("2024-01-10"), rangeOf(t, m).End)
}

func TestKeysAreInertWithoutData(t *testing.T) {
	m := newPageModel(t)
	for _, k := range []string{"right", "tab", "shift+left", "home", "0", "d", "x", "y"} {
		m.Update(keyMsg(k))
	}
	_, ok := m.data.view.Range()
	assert.False(t, ok)
	assert.Nil(t, m.activeDialog)
	assert.Contains(t, m.View(), "No data")
}

func TestDateDialogMovesHandle(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	m.Update(keyMsg("d"))
	require.NotNil(t, m.activeDialog)
	_, ok := m.activeDialog.(*dialogs.Date)
	require.True(t, ok)

	m.Update(dialogs.DateConfirmedMsg{Handle: dialogs.HandleEnd, Value: "2024-01-05"})
	assert.Nil(t, m.activeDialog)
	assert.Equal(t, day("2024-01-05"), rangeOf(t, m).End)

	m.Update(dialogs.DateConfirmedMsg{Handle: dialogs.HandleStart, Value: "2024-01-07"})
	assert.Equal(t, day("2024-01-01"), rangeOf(t, m).Start, "start may not pass the end")
	assert.Equal(t, "warn", m.ui.noticeType)

	m.Update(dialogs.DateConfirmedMsg{Handle: dialogs.HandleStart, Value: "not a date"})
	assert.Contains(t, m.ui.noticeMsg, "unrecognised date")
}

func TestCopySnapshot(t *testing.T) {
	m := newPageModel(t)
	loadFixture(t, m)

	var copied string
	m.copyText = func(s string) error {
		copied = s
		return nil
	}
	m.Update(keyMsg("y"))
	assert.Contains(t, copied, "Date\t2024-01-10")
	assert.Contains(t, copied, "A\t12\t32.4%\tyes")
	assert.Equal(t, "success", m.ui.noticeType)

	m.copyText = func(string) error { return errors.New("no clipboard") }
	m.Update(keyMsg("y"))
	assert.Equal(t, "error", m.ui.noticeType)
}

func TestNoticeClearsOnlyForLatest(t *testing.T) {
	m := newPageModel(t)
	m.startNotice("first", "info", time.Second)
	m.startNotice("second", "info", time.Second)

	m.Update(clearNoticeMsg{id: 1})
	assert.Equal(t, "second", m.ui.noticeMsg)
	m.Update(clearNoticeMsg{id: 2})
	assert.Empty(t, m.ui.noticeMsg)
}

func TestMenuOpensAndClosesPages(t *testing.T) {
	path := writeFixture(t)
	cfg := config.Default()
	pages := []config.Page{{Title: "One", Source: path}, {Title: "Two", Source: path}}
	m := newModel(context.Background(), cfg, pages)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	assert.Nil(t, m.Init(), "several pages start on the menu")
	assert.Contains(t, m.View(), "One")

	m.Update(keyMsg("j"))
	assert.Equal(t, 1, m.ui.menuCursor)
	_, cmd := m.Update(keyMsg("enter"))
	require.NotNil(t, cmd)
	require.NotNil(t, m.data)
	assert.Equal(t, "Two", m.data.page.Title)
	assert.True(t, m.data.view.Pending())

	m.Update(keyMsg("b"))
	assert.Nil(t, m.data)
	assert.Equal(t, screenMenu, m.ui.screen)
}

func TestFetchCmdReadsSource(t *testing.T) {
	m := newPageModel(t)
	m.data.page.Source = writeFixture(t)

	tok := m.data.view.BeginLoad()
	msg := fetchCmd(context.Background(), m.data.view, tok, m.data.page.Source, sourceOptions(m))()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, tok, loaded.token)
	assert.Len(t, loaded.table.Records, 3)

	msg = fetchCmd(context.Background(), m.data.view, tok, "missing.csv", sourceOptions(m))()
	_, failed := msg.(loadFailedMsg)
	assert.True(t, failed)
}

func TestPageViewRenders(t *testing.T) {
	m := newPageModel(t)
	m.data.page.Descriptions = []string{"RLP (Reform Labour Party) " + strings.Repeat("word ", 40)}
	loadFixture(t, m)

	out := m.View()
	assert.Contains(t, out, "Electoral")
	assert.Contains(t, out, "Snapshot 2024-01-10")
	assert.Contains(t, out, "Trend")
	assert.Contains(t, out, "RLP")
	assert.Contains(t, out, "2024-01-05")
}
