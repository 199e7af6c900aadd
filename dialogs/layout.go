package dialogs

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

const boxWidth = 60

// modalBox is the shared frame for every dialog.
func modalBox(body, hint string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")). // keep your light border
		BorderBackground(lipgloss.Color("236")). // match the overlay
		Padding(1, 2).
		Width(boxWidth)

	help := lipgloss.NewStyle().
		Faint(true).
		Render(hint)

	return box.Render(fmt.Sprintf("%s\n\n%s", body, help))
}
