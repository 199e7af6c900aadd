package source

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/andareed/siftly-rangeview/logging"
	"github.com/andareed/siftly-rangeview/rangeview"
)

func parseXLSX(r io.Reader, sheet string) (rangeview.RawTable, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return rangeview.RawTable{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.Warnf("source: close workbook: %v", err)
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return rangeview.RawTable{}, ErrEmptySource
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return rangeview.RawTable{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return tableFromGrid(rows)
}
