package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Date", cfg.DateField)
	assert.Equal(t, "Coalitions", cfg.CoalitionField)
	assert.Equal(t, "-", cfg.CoalitionSep)
	assert.Equal(t, 300*time.Millisecond, cfg.WatchDebounce)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "png", cfg.Export.Format)
	assert.Equal(t, 800, cfg.Export.Width)
	require.NoError(t, cfg.Validate())

	opts := cfg.RangeOptions()
	assert.Equal(t, "Date", opts.DateField)
}

func TestLoadResolvesPageSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sfrange.yaml")
	yml := `
coalition_sep: "|"
watch: true
palette: ["#ff0000", "#00ff00"]
export:
  format: svg
pages:
  - title: Richardian Electoral Data
    source: output.csv
    descriptions:
      - "RLP (Reform Labour Party)"
  - title: Remote
    source: https://example.com/outputPar.csv
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "|", cfg.CoalitionSep)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "svg", cfg.Export.Format)
	assert.Equal(t, 480, cfg.Export.Height, "unset nested fields keep defaults")
	require.Len(t, cfg.Pages, 2)
	assert.Equal(t, filepath.Join(dir, "output.csv"), cfg.Pages[0].Source)
	assert.Equal(t, "https://example.com/outputPar.csv", cfg.Pages[1].Source)
	assert.Len(t, cfg.Pages[0].Descriptions, 1)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad format":   "export:\n  format: gif\n",
		"bad colour":   "palette: [\"red\"]\n",
		"page no src":  "pages:\n  - title: x\n",
		"broken yaml":  "pages: [",
		"empty fields": "date_field: \"\"\n",
	}
	for name, yml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(yml))
			assert.Error(t, err)
		})
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Pages)
	assert.Equal(t, []Page{{Title: "output.csv", Source: "data/output.csv"}}, cfg.PagesOrSingle("data/output.csv"))
}
