package dialogs

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andareed/siftly-rangeview/logging"
)

// --- Messages ---------------------------------------------------------------

type (
	ExportConfirmedMsg struct {
		Dir    string
		Format string
	}
	ExportCanceledMsg struct{}
)

// Export asks where to write the two chart images and in which format.
type Export struct {
	input   textinput.Model
	visible bool
	format  string
}

func (d Export) Init() tea.Cmd { return d.input.Focus() }

func NewExportDialog(defaultDir, format string) *Export {
	ti := textinput.New()
	ti.Placeholder = defaultDir
	ti.Prompt = "Export charts to: "
	ti.CharLimit = 256
	// Wide enough for typical paths
	ti.Width = 40
	if defaultDir != "" {
		ti.SetValue(defaultDir)
	}
	if format == "" {
		format = "png"
	}
	ti.Focus()
	return &Export{input: ti, visible: true, format: format}
}

// Format is the currently selected output format.
func (d Export) Format() string { return d.format }

func (d *Export) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}
	if m, ok := msg.(tea.KeyMsg); ok {
		switch m.String() {
		case "enter":
			dir := strings.TrimSpace(d.input.Value())
			if dir == "" {
				// fall back to placeholder if user left it blank
				dir = d.input.Placeholder
			}
			if dir == "" {
				dir = "."
			}
			dir = filepath.Clean(dir)
			format := d.format
			logging.Debugf("ExportDialog: confirmed dir=%s format=%s", dir, format)
			return d, func() tea.Msg { return ExportConfirmedMsg{Dir: dir, Format: format} }
		case "esc":
			logging.Debugf("ExportDialog: cancelled")
			return d, func() tea.Msg { return ExportCanceledMsg{} }
		case "tab":
			if d.format == "png" {
				d.format = "svg"
			} else {
				d.format = "png"
			}
			return d, nil
		}
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d Export) View() string {
	if !d.visible {
		return ""
	}
	body := d.input.View() + "\n\nFormat: " + strings.ToUpper(d.format)
	return modalBox(body, "enter to export • tab png/svg • esc to cancel")
}

func (d *Export) Show() {
	d.visible = true
	d.input.Focus()
}

func (d *Export) Hide() {
	d.visible = false
	d.input.Blur()
}

func (d *Export) Focus() tea.Cmd { return d.input.Focus() }
func (d *Export) Blur()          { d.input.Blur() }
func (d Export) IsVisible() bool { return d.visible }
