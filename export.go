package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-rangeview/chartout"
	"github.com/andareed/siftly-rangeview/logging"
)

type exportDoneMsg struct {
	paths []string
	err   error
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// exportBase turns a page title into a file name stem.
func exportBase(title string) string {
	s := strings.Trim(slugRe.ReplaceAllString(strings.ToLower(title), "-"), "-")
	if s == "" {
		return "sfrange"
	}
	return s
}

// ExportRows writes the rows in range to a CSV file using the visible
// table layout.
func ExportRows(path string, header []ColumnMeta, rows []tableRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	names := make([]string, 0, len(header))
	for _, col := range header {
		if col.Visible {
			names = append(names, col.Name)
		}
	}
	if err := w.Write(names); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		out := make([]string, 0, len(names))
		for c, col := range header {
			if !col.Visible {
				continue
			}
			if c < len(r.cols) {
				out = append(out, r.cols[c])
			} else {
				out = append(out, "")
			}
		}
		if err := w.Write(out); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return f.Close()
}

// exportAll writes both charts and the rows CSV into dir.
func exportAll(ctx context.Context, board *chartout.Board, dir, base string, format chartout.Format, header []ColumnMeta, rows []tableRow) ([]string, error) {
	paths, err := board.Export(ctx, dir, base, format)
	if err != nil {
		return nil, err
	}
	rowsPath := filepath.Join(dir, base+"-rows.csv")
	if err := ExportRows(rowsPath, header, rows); err != nil {
		return paths, err
	}
	return append(paths, rowsPath), nil
}

func (m *model) exportCmd(dir, rawFormat string) tea.Cmd {
	if m.data == nil {
		return nil
	}
	format, err := chartout.ParseFormat(rawFormat)
	if err != nil {
		return func() tea.Msg { return exportDoneMsg{err: err} }
	}
	m.data.board.Publish(m.data.view.Views())

	ctx := m.ctx
	board := m.data.board
	base := exportBase(m.data.page.Title)
	header := append([]ColumnMeta(nil), m.data.header...)
	rows := append([]tableRow(nil), m.data.rows...)
	return func() tea.Msg {
		paths, err := exportAll(ctx, board, dir, base, format, header, rows)
		return exportDoneMsg{paths: paths, err: err}
	}
}

func (m *model) handleExportDone(msg exportDoneMsg) tea.Cmd {
	if msg.err != nil {
		logging.Errorf("export: %v", msg.err)
		return m.startNotice("Export failed: "+msg.err.Error(), "error", errorNoticeDuration)
	}
	if len(msg.paths) == 0 {
		return nil
	}
	logging.Infof("export: wrote %v", msg.paths)
	return m.startNotice(fmt.Sprintf("Exported %d files to %s", len(msg.paths), filepath.Dir(msg.paths[0])), "success", noticeDuration)
}
