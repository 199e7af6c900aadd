// Package chartout turns derived range views into go-chart charts and
// writes them to image files.
package chartout

import (
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DefaultPalette is indexed by series position so a series keeps its colour
// across reloads and range moves.
var DefaultPalette = []string{
	"#36a2eb", "#ff6384", "#ff9f40", "#ffcd56", "#4bc0c0",
	"#9966ff", "#c9cbcf", "#2e7d32", "#8d6e63", "#d81b60",
}

// Palette maps series indexes to colours.
type Palette []string

// Hex returns the colour for index i as "#rrggbb".
func (p Palette) Hex(i int) string {
	if len(p) == 0 {
		p = DefaultPalette
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Color returns the go-chart colour for index i.
func (p Palette) Color(i int) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(p.Hex(i), "#"))
}
