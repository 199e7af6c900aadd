package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/andareed/siftly-rangeview/rangeview"
)

func parseCSV(r io.Reader) (rangeview.RawTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return rangeview.RawTable{}, fmt.Errorf("error reading CSV: %w", err)
	}
	return tableFromGrid(records)
}

// tableFromGrid turns a header row plus data rows into records keyed by
// header name. Blank rows are dropped. Cells missing from a short row are
// kept as empty values so every record carries every header field.
func tableFromGrid(grid [][]string) (rangeview.RawTable, error) {
	if len(grid) == 0 {
		return rangeview.RawTable{}, ErrEmptySource
	}

	header := make([]string, len(grid[0]))
	for i, name := range grid[0] {
		name = strings.TrimPrefix(name, "\ufeff")
		header[i] = strings.TrimSpace(name)
	}

	table := rangeview.RawTable{
		Fields:  header,
		Records: make([]rangeview.RawRecord, 0, len(grid)-1),
	}
	for _, row := range grid[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(rangeview.RawRecord, len(header))
		for i, name := range header {
			if name == "" {
				continue
			}
			if i >= len(row) {
				rec[name] = ""
				continue
			}
			rec[name] = row[i]
		}
		table.Records = append(table.Records, rec)
	}
	return table, nil
}

func blankRow(row []string) bool {
	for _, col := range row {
		if strings.TrimSpace(col) != "" {
			return false
		}
	}
	return true
}
