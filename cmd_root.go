package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/andareed/siftly-rangeview/config"
	"github.com/andareed/siftly-rangeview/logging"
)

type rootFlags struct {
	configPath string
	debugFile  string
	watch      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "sfrange [file.csv|file.xlsx|url]",
		Short: "Explore a dated series through a selectable date range",
		Long: `sfrange loads a table of dated observations and shows, for a selected
date range, the breakdown on the last date (snapshot) and each series over
the range (trend). Rows may name coalitions whose members are highlighted.

Without an argument the pages listed in the config file are offered in a
menu.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, flags, args)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&flags.debugFile, "debug", "", "write debug logs to this file")
	cmd.Flags().BoolVarP(&flags.watch, "watch", "w", false, "reload when a local source file changes")

	cmd.AddCommand(newExportCmd(flags), newVersionCmd())
	return cmd
}

// loadConfig reads the config file and applies the flags that override it.
func loadConfig(cmd *cobra.Command, flags *rootFlags) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("watch"); f != nil && f.Changed {
		cfg.Watch = flags.watch
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, flags *rootFlags, args []string) error {
	cleanup, err := logging.SetupLogging(flags.debugFile, flags.debugFile != "")
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer cleanup()

	cfg, err := loadConfig(cmd, flags)
	if err != nil {
		return err
	}

	location := ""
	if len(args) == 1 {
		location = args[0]
	}
	pages := cfg.PagesOrSingle(location)
	if len(pages) == 0 {
		return errors.New("nothing to show: pass a file or URL, or list pages in --config")
	}

	logging.Infof("sfrange %s: starting with %d page(s)", Version, len(pages))
	m := newModel(cmd.Context(), cfg, pages)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		logging.Errorf("tea program error: %v", err)
		return err
	}
	return nil
}
