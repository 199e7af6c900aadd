package main

import (
	"context"
	"time"

	"github.com/andareed/siftly-rangeview/chartout"
	"github.com/andareed/siftly-rangeview/config"
	"github.com/andareed/siftly-rangeview/rangeview"
	"github.com/andareed/siftly-rangeview/source"
)

// pageState is everything owned by the open page. It is dropped as a whole
// when the user goes back to the menu, so late messages for it can be
// recognised by comparing the view pointer.
type pageState struct {
	page  config.Page
	view  *rangeview.View
	board *chartout.Board

	header []ColumnMeta
	rows   []tableRow

	lastErr  error
	loadedAt time.Time

	watcher     *source.Watcher
	stopWatcher context.CancelFunc
}

func newPageState(cfg *config.Config, page config.Page) *pageState {
	return &pageState{
		page: page,
		view: rangeview.New(cfg.RangeOptions()),
		board: chartout.NewBoard(chartout.Options{
			Title:   page.Title,
			Width:   cfg.Export.Width,
			Height:  cfg.Export.Height,
			Palette: chartout.Palette(cfg.Palette),
		}),
	}
}

func (p *pageState) close() {
	if p.stopWatcher != nil {
		p.stopWatcher()
		p.stopWatcher = nil
	}
	if p.watcher != nil {
		p.watcher.Close()
		p.watcher = nil
	}
}
