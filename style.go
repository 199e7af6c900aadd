package main

import "github.com/charmbracelet/lipgloss"

const (
	textFGColor       = "#c0c0c0"
	dimFGColor        = "#808080"
	focusFGColor      = "#000000"
	focusBGColor      = "#ff9f1c"
	menuSelectedBG    = "#3a3a3a"
	errorFGColor      = "#ff5f5f"
	scrubberFillColor = "#5f87af"
)

var (
	appstyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0e0e0"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(dimFGColor))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(errorFGColor))

	menuItemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(textFGColor)).Padding(0, 1)
	menuSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(menuSelectedBG)).
				Foreground(lipgloss.Color("#e0e0e0")).
				Bold(true).
				Padding(0, 1)

	headerStyle = lipgloss.NewStyle().Bold(true).BorderStyle(lipgloss.Border{
		Left:  " ",
		Right: " ",
	}).BorderLeft(true).BorderRight(true)
	cellStyle  = lipgloss.NewStyle().Padding(0, 1)
	tableStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))

	// range bar
	handleStyle        = lipgloss.NewStyle().Bold(true)
	handleFocusedStyle = lipgloss.NewStyle().Bold(true).
				Background(lipgloss.Color(focusBGColor)).
				Foreground(lipgloss.Color(focusFGColor))
	scrubberFill = lipgloss.NewStyle().Foreground(lipgloss.Color(scrubberFillColor))

	rangeArea = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("245")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	alliedStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	alliedMarker  = "*"
	swatchMarker  = "■"
	missingMarker = "·"

	descriptionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(textFGColor)).Italic(true)
)
