package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andareed/siftly-rangeview/rangeview"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestExportCommandWritesFiles(t *testing.T) {
	src := writeFixture(t)
	dir := filepath.Join(t.TempDir(), "out")

	out, err := runCLI(t, "export", src, "--out", dir, "--start", "2024-01-02", "--end", "2024-01-10", "--title", "Electoral Data")
	require.NoError(t, err)

	paths := strings.Fields(out)
	require.Len(t, paths, 3)
	assert.Equal(t, filepath.Join(dir, "electoral-data-pie.png"), paths[0])
	assert.Equal(t, filepath.Join(dir, "electoral-data-line.png"), paths[1])
	assert.Equal(t, filepath.Join(dir, "electoral-data-rows.csv"), paths[2])

	f, err := os.Open(paths[2])
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "A", "B", "Coalitions"},
		{"2024-01-05", "15", "18", ""},
		{"2024-01-10", "12", "25", "A-B"},
	}, records)
}

func TestExportCommandSVG(t *testing.T) {
	src := writeFixture(t)
	dir := t.TempDir()

	out, err := runCLI(t, "export", src, "-o", dir, "-f", "svg")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(dir, "output-pie.svg"))

	data, err := os.ReadFile(filepath.Join(dir, "output-line.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportCommandErrors(t *testing.T) {
	src := writeFixture(t)
	dir := t.TempDir()

	_, err := runCLI(t, "export", src, "-o", dir, "--start", "2023-01-01")
	assert.ErrorContains(t, err, "outside")

	_, err = runCLI(t, "export", src, "-o", dir, "--end", "yesterday-ish")
	assert.ErrorContains(t, err, "unrecognised date")

	_, err = runCLI(t, "export", src, "-o", dir, "-f", "gif")
	assert.Error(t, err)

	_, err = runCLI(t, "export", filepath.Join(dir, "missing.csv"), "-o", dir)
	var rerr *rangeview.RetrievalError
	assert.ErrorAs(t, err, &rerr)
}

func TestApplyRangeFlagsOrder(t *testing.T) {
	v := rangeview.New(rangeview.Options{})
	v.Load(fixtureTable())

	require.NoError(t, applyRangeFlags(v, "2024-01-05", "2024-01-05"))
	rng, _ := v.Range()
	assert.Equal(t, day("2024-01-05"), rng.Start)
	assert.Equal(t, day("2024-01-05"), rng.End)

	v.ResetRange()
	assert.ErrorContains(t, applyRangeFlags(v, "", "2023-12-31"), "--end")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "Version: "+Version+"\n", out)
}

func TestRootRequiresSomethingToShow(t *testing.T) {
	_, err := runCLI(t)
	assert.ErrorContains(t, err, "nothing to show")
}

func TestExportBase(t *testing.T) {
	assert.Equal(t, "richardian-electoral-data", exportBase("Richardian Electoral Data"))
	assert.Equal(t, "sfrange", exportBase("  !! "))
}

func TestSnapshotTextMarksMissing(t *testing.T) {
	snap := rangeview.Snapshot{
		Date: day("2024-01-10"),
		Slices: []rangeview.Slice{
			{Key: "A", Value: 3, OK: true},
			{Key: "B", OK: false},
		},
	}
	text := snapshotText("", snap)
	assert.True(t, strings.HasPrefix(text, "Date\t2024-01-10\n"))
	assert.Contains(t, text, "A\t3\t100.0%\t\n")
	assert.Contains(t, text, "B\t\t\t\n")
}
