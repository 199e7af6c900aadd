package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit        key.Binding
	Back        key.Binding
	Open        key.Binding
	MenuUp      key.Binding
	MenuDown    key.Binding
	SwitchFocus key.Binding
	StepBack    key.Binding
	StepFwd     key.Binding
	WeekBack    key.Binding
	WeekFwd     key.Binding
	JumpFirst   key.Binding
	JumpLast    key.Binding
	TypeDate    key.Binding
	ResetRange  key.Binding
	Reload      key.Binding
	Export      key.Binding
	CopyView    key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	OpenHelp    key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b/esc", "back to menu"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open page"),
	),
	MenuUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "previous page"),
	),
	MenuDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next page"),
	),
	SwitchFocus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "switch start/end handle"),
	),
	StepBack: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "handle one day back"),
	),
	StepFwd: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "handle one day forward"),
	),
	WeekBack: key.NewBinding(
		key.WithKeys("shift+left", "H"),
		key.WithHelp("shift+←", "handle seven days back"),
	),
	WeekFwd: key.NewBinding(
		key.WithKeys("shift+right", "L"),
		key.WithHelp("shift+→", "handle seven days forward"),
	),
	JumpFirst: key.NewBinding(
		key.WithKeys("home", "g"),
		key.WithHelp("home/g", "handle as far back as allowed"),
	),
	JumpLast: key.NewBinding(
		key.WithKeys("end", "G"),
		key.WithHelp("end/G", "handle as far forward as allowed"),
	),
	TypeDate: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "type a date for the handle"),
	),
	ResetRange: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "select the full span"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload the source"),
	),
	Export: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export charts and rows"),
	),
	CopyView: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy snapshot to clipboard"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "u"),
		key.WithHelp("u/pgup", "scroll rows up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", " "),
		key.WithHelp("pgdown", "scroll rows down"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
}

// PageLegend lists the bindings shown by the help dialog on a page.
func (k Keymap) PageLegend() []key.Binding {
	return []key.Binding{
		k.SwitchFocus,
		k.StepBack,
		k.StepFwd,
		k.WeekBack,
		k.WeekFwd,
		k.JumpFirst,
		k.JumpLast,
		k.TypeDate,
		k.ResetRange,
		k.Reload,
		k.Export,
		k.CopyView,
		k.PageUp,
		k.PageDown,
		k.Back,
		k.Quit,
	}
}

// MenuLegend lists the bindings of the start menu.
func (k Keymap) MenuLegend() []key.Binding {
	return []key.Binding{
		k.MenuUp,
		k.MenuDown,
		k.Open,
		k.Quit,
	}
}
