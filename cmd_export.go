package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andareed/siftly-rangeview/chartout"
	"github.com/andareed/siftly-rangeview/logging"
	"github.com/andareed/siftly-rangeview/rangeview"
	"github.com/andareed/siftly-rangeview/source"
)

type exportFlags struct {
	start  string
	end    string
	out    string
	format string
	sheet  string
	title  string
}

func newExportCmd(root *rootFlags) *cobra.Command {
	flags := &exportFlags{}
	cmd := &cobra.Command{
		Use:   "export <file.csv|file.xlsx|url>",
		Short: "Render the snapshot and trend charts without the TUI",
		Long: `Export loads the source, selects the range given by --start and --end
(the full span when omitted) and writes <title>-pie, <title>-line and
<title>-rows.csv into the output directory.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, root, flags, args[0])
		},
	}
	cmd.Flags().StringVar(&flags.start, "start", "", "range start date")
	cmd.Flags().StringVar(&flags.end, "end", "", "range end date")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "output directory (default from config)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "png or svg (default from config)")
	cmd.Flags().StringVar(&flags.sheet, "sheet", "", "worksheet to read from an xlsx source")
	cmd.Flags().StringVar(&flags.title, "title", "", "chart title and file name stem")
	return cmd
}

func runExport(cmd *cobra.Command, root *rootFlags, flags *exportFlags, location string) error {
	if root.debugFile != "" {
		cleanup, err := logging.SetupLogging(root.debugFile, true)
		if err != nil {
			return fmt.Errorf("setup logging: %w", err)
		}
		defer cleanup()
	} else {
		logging.SetOutput(cmd.ErrOrStderr(), false)
	}

	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return err
	}
	if flags.out == "" {
		flags.out = cfg.Export.Dir
	}
	if flags.format == "" {
		flags.format = cfg.Export.Format
	}
	format, err := chartout.ParseFormat(flags.format)
	if err != nil {
		return err
	}
	title := flags.title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(location), filepath.Ext(location))
	}

	table, err := source.Fetch(cmd.Context(), location, source.FetchOptions{
		Sheet:   flags.sheet,
		Timeout: cfg.FetchTimeout,
	})
	if err != nil {
		return &rangeview.RetrievalError{Source: location, Err: err}
	}

	view := rangeview.New(cfg.RangeOptions())
	if rows := view.Load(table); len(rows) == 0 {
		return fmt.Errorf("%s: no dated rows", location)
	}
	if err := applyRangeFlags(view, flags.start, flags.end); err != nil {
		return err
	}

	board := chartout.NewBoard(chartout.Options{
		Title:   title,
		Width:   cfg.Export.Width,
		Height:  cfg.Export.Height,
		Palette: chartout.Palette(cfg.Palette),
	})
	board.Publish(view.Views())

	header, rows := buildTable(view)
	paths, err := exportAll(cmd.Context(), board, flags.out, exportBase(title), format, header, rows)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}

// applyRangeFlags narrows the full span to the requested dates. A date the
// range does not accept is an error rather than a silent no-op.
func applyRangeFlags(view *rangeview.View, start, end string) error {
	layouts := view.Options().DateLayouts
	lo, hi, _ := view.Bounds()

	if start != "" {
		d, ok := rangeview.ParseDate(start, layouts)
		if !ok {
			return fmt.Errorf("--start: unrecognised date %q", start)
		}
		if got := view.MoveRangeStart(d); !got.Start.Equal(rangeview.Day(d)) {
			return fmt.Errorf("--start %s outside %s to %s", start, lo.Format(dateLayout), hi.Format(dateLayout))
		}
	}
	if end != "" {
		d, ok := rangeview.ParseDate(end, layouts)
		if !ok {
			return fmt.Errorf("--end: unrecognised date %q", end)
		}
		rng, _ := view.Range()
		if got := view.MoveRangeEnd(d); !got.End.Equal(rangeview.Day(d)) {
			return fmt.Errorf("--end %s outside %s to %s", end, rng.Start.Format(dateLayout), hi.Format(dateLayout))
		}
	}
	return nil
}
