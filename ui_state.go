package main

import "github.com/andareed/siftly-rangeview/dialogs"

type screen int

const (
	screenMenu screen = iota
	screenPage
)

type uiState struct {
	screen     screen
	menuCursor int
	focus      dialogs.Handle
	noticeMsg  string
	noticeType string
	noticeSeq  int
}
