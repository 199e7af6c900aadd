package main

import "github.com/andareed/siftly-rangeview/rangeview"

type ColumnRole int

const (
	RoleSeries ColumnRole = iota
	RoleDate
	RoleCoalitions
)

type ColumnMeta struct {
	Name     string
	Role     ColumnRole
	Series   int // palette index, RoleSeries only
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RoleDate:
		return 12
	case RoleCoalitions:
		return 14
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RoleCoalitions:
		return 2.0
	case RoleDate:
		return 0.5
	default:
		return 1.0
	}
}

func newColumn(name string, role ColumnRole, series int) ColumnMeta {
	return ColumnMeta{
		Name:     name,
		Role:     role,
		Series:   series,
		Visible:  true,
		MinWidth: defaultMinWidthForRole(role),
		Weight:   defaultWeightForRole(role),
	}
}

// buildColumns lays the table out as date, every series key, coalitions.
func buildColumns(opts rangeview.Options, keys []string) []ColumnMeta {
	cols := make([]ColumnMeta, 0, len(keys)+2)
	cols = append(cols, newColumn(opts.DateField, RoleDate, -1))
	for i, k := range keys {
		cols = append(cols, newColumn(k, RoleSeries, i))
	}
	cols = append(cols, newColumn(opts.CoalitionField, RoleCoalitions, -1))
	return cols
}

// markEmptyColumns hides the coalitions column when no row carries one.
func markEmptyColumns(cols []ColumnMeta, rows []tableRow) {
	for i := range cols {
		if cols[i].Role != RoleCoalitions {
			continue
		}
		hasData := false
		for _, row := range rows {
			if i < len(row.cols) && row.cols[i] != "" {
				hasData = true
				break
			}
		}
		if !hasData {
			cols[i].Visible = false
			cols[i].Width = 0
			cols[i].Weight = 0
		}
	}
}

func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// Too tight: every visible column gets its minimum, clamped
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
