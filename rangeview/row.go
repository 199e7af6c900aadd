package rangeview

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// RawRecord is one record as handed over by a source: field name to raw text.
type RawRecord map[string]string

// RawTable is what a source produces. Fields keeps the header order so the
// series order is stable.
type RawTable struct {
	Fields  []string
	Records []RawRecord
}

// Row is one dated observation.
type Row struct {
	Date          time.Time
	Keys          []string // series keys in field order, date/coalitions excluded
	Values        map[string]float64
	Coalitions    []string
	HasCoalitions bool
}

// Value returns the numeric value for key, ok is false when the row does
// not carry a number for it.
func (r Row) Value(key string) (float64, bool) {
	v, ok := r.Values[key]
	return v, ok
}

// Dataset is sorted ascending by date once at load time.
type Dataset []Row

var defaultDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"1/2/2006",
	"01/02/2006",
	"1-2-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"Mon Jan 2 2006",
	"Mon Jan _2 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
}

// Options controls how raw records become rows.
type Options struct {
	DateField      string
	CoalitionField string
	CoalitionSep   string
	DateLayouts    []string
}

func (o Options) withDefaults() Options {
	if o.DateField == "" {
		o.DateField = "Date"
	}
	if o.CoalitionField == "" {
		o.CoalitionField = "Coalitions"
	}
	if o.CoalitionSep == "" {
		o.CoalitionSep = "-"
	}
	if len(o.DateLayouts) == 0 {
		o.DateLayouts = defaultDateLayouts
	}
	return o
}

// ParseDate parses raw into a calendar date (UTC midnight).
func ParseDate(raw string, layouts []string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if len(layouts) == 0 {
		layouts = defaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return Day(t), true
		}
	}
	return time.Time{}, false
}

// Day drops the time of day, keeping the calendar date as written.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SplitCoalitions splits a coalition string, trimming tokens and dropping
// empty ones.
func SplitCoalitions(raw, sep string) []string {
	if sep == "" {
		sep = "-"
	}
	var out []string
	for _, tok := range strings.Split(raw, sep) {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func fieldNamed(fields []string, want string) string {
	for _, f := range fields {
		if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(f, "\ufeff")), want) {
			return f
		}
	}
	return want
}

// buildDataset turns raw records into a sorted dataset. Records with a
// missing or unparseable date are skipped.
func buildDataset(table RawTable, opts Options) Dataset {
	dateField := fieldNamed(table.Fields, opts.DateField)
	coalField := fieldNamed(table.Fields, opts.CoalitionField)

	rows := make(Dataset, 0, len(table.Records))
	for _, rec := range table.Records {
		rawDate, ok := rec[dateField]
		if !ok {
			continue
		}
		date, ok := ParseDate(rawDate, opts.DateLayouts)
		if !ok {
			continue
		}

		row := Row{
			Date:   date,
			Values: make(map[string]float64),
		}
		for _, f := range recordFields(table.Fields, rec) {
			if f == dateField {
				continue
			}
			if f == coalField {
				if raw := strings.TrimSpace(rec[f]); raw != "" {
					row.HasCoalitions = true
					row.Coalitions = SplitCoalitions(raw, opts.CoalitionSep)
				}
				continue
			}
			row.Keys = append(row.Keys, f)
			if v, err := strconv.ParseFloat(strings.TrimSpace(rec[f]), 64); err == nil {
				row.Values[f] = v
			}
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Date.Before(rows[j].Date)
	})
	return rows
}

// recordFields returns the header order, followed by any extra keys the
// record carries (sorted, so the result is deterministic).
func recordFields(fields []string, rec RawRecord) []string {
	if len(fields) == 0 {
		out := make([]string, 0, len(rec))
		for k := range rec {
			out = append(out, k)
		}
		sort.Strings(out)
		return out
	}
	seen := make(map[string]struct{}, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		if _, ok := rec[f]; ok {
			out = append(out, f)
		}
	}
	var extra []string
	for k := range rec {
		if _, ok := seen[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
