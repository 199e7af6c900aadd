package chartout

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	chart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/sync/errgroup"

	"github.com/andareed/siftly-rangeview/logging"
	"github.com/andareed/siftly-rangeview/rangeview"
)

type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// ParseFormat accepts "png" or "svg" (case-insensitive, empty means png).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("unknown chart format %q (want png or svg)", s)
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatSVG {
		return chart.SVG
	}
	return chart.PNG
}

// Board holds at most one live pie and one live line chart. Each Publish
// drops the previous pair before building the next.
type Board struct {
	mu      sync.Mutex
	opts    Options
	pie     *chart.PieChart
	line    *chart.Chart
	version uint64
	pieErr  error
	lineErr error
}

func NewBoard(opts Options) *Board {
	return &Board{opts: opts}
}

// Publish rebuilds both charts from views. Building errors are kept and
// reported by Export.
func (b *Board) Publish(views rangeview.Views) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pie != nil || b.line != nil {
		if b.version == views.Version {
			return
		}
		b.release()
	}

	b.pie, b.pieErr = PieChart(views.Snapshot, b.opts)
	lineOpts := b.opts
	if views.HasRange {
		lineOpts.Title = fmt.Sprintf("%s %s to %s", titleOr(b.opts.Title, "Trend"),
			views.Range.Start.Format(dateLayout), views.Range.End.Format(dateLayout))
	}
	b.line, b.lineErr = LineChart(views.Trend, lineOpts)
	b.version = views.Version
	logging.Debugf("chartout: published version %d (pie err=%v, line err=%v)", views.Version, b.pieErr, b.lineErr)
}

func (b *Board) release() {
	b.pie = nil
	b.line = nil
	b.pieErr = nil
	b.lineErr = nil
}

// Live reports which charts are currently held.
func (b *Board) Live() (pie, line bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pie != nil, b.line != nil
}

// Export writes <base>-pie.<ext> and <base>-line.<ext> into dir and returns
// the written paths. Both files are rendered concurrently.
func (b *Board) Export(ctx context.Context, dir, base string, format Format) ([]string, error) {
	b.mu.Lock()
	pie, line := b.pie, b.line
	pieErr, lineErr := b.pieErr, b.lineErr
	b.mu.Unlock()

	if pie == nil && line == nil {
		return nil, errors.Join(ErrNothingToRender, pieErr, lineErr)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	ext := string(format)
	piePath := filepath.Join(dir, base+"-pie."+ext)
	linePath := filepath.Join(dir, base+"-line."+ext)

	g, ctx := errgroup.WithContext(ctx)
	var written []string
	if pie != nil {
		written = append(written, piePath)
		g.Go(func() error {
			return writeChart(ctx, piePath, func(f *os.File) error {
				return pie.Render(format.provider(), f)
			})
		})
	}
	if line != nil {
		written = append(written, linePath)
		g.Go(func() error {
			return writeChart(ctx, linePath, func(f *os.File) error {
				return line.Render(format.provider(), f)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	logging.Infof("chartout: exported %v", written)
	return written, nil
}

func writeChart(ctx context.Context, path string, render func(*os.File) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("render %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

func titleOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
