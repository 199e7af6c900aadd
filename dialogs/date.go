package dialogs

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-rangeview/logging"
)

// Handle names the range endpoint a date is typed for.
type Handle int

const (
	HandleStart Handle = iota
	HandleEnd
)

func (h Handle) String() string {
	if h == HandleEnd {
		return "end"
	}
	return "start"
}

// --- Messages ---------------------------------------------------------------

type (
	// DateConfirmedMsg carries the raw text; the page parses it with the
	// dataset's date layouts.
	DateConfirmedMsg struct {
		Handle Handle
		Value  string
	}
	DateCanceledMsg struct{}
)

// Date prompts for a new date for one range handle.
type Date struct {
	input   textinput.Model
	handle  Handle
	visible bool
}

func (d Date) Init() tea.Cmd { return d.input.Focus() }

func NewDateDialog(handle Handle, current time.Time) *Date {
	ti := textinput.New()
	ti.Placeholder = "YYYY-MM-DD"
	ti.Prompt = "Move " + handle.String() + " to: "
	ti.CharLimit = 32
	ti.Width = 20
	if !current.IsZero() {
		ti.SetValue(current.Format("2006-01-02"))
	}
	ti.Focus()
	return &Date{input: ti, handle: handle, visible: true}
}

func (d *Date) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			val := strings.TrimSpace(d.input.Value())
			h := d.handle
			logging.Debugf("DateDialog: confirmed %s=%q", h, val)
			return d, func() tea.Msg { return DateConfirmedMsg{Handle: h, Value: val} }
		case "esc":
			logging.Debugf("DateDialog: cancelled")
			return d, func() tea.Msg { return DateCanceledMsg{} }
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Date) View() string {
	if !d.visible {
		return ""
	}
	return modalBox(d.input.View(), "enter to move • esc to cancel")
}

func (d *Date) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Date) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Date) Focus() tea.Cmd { return d.input.Focus() }
func (d *Date) Blur()          { d.input.Blur() }
func (d Date) IsVisible() bool { return d.visible }
