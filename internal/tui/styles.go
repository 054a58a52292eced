package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62"))

	// calendar cells
	dayStyle      = lipgloss.NewStyle().Width(3).Align(lipgloss.Right)
	cursorStyle   = dayStyle.Reverse(true)
	endpointStyle = dayStyle.Bold(true).Foreground(lipgloss.Color("212"))
	inRangeStyle  = dayStyle.Foreground(lipgloss.Color("212"))
	disabledStyle = dayStyle.Foreground(lipgloss.Color("238")).Strikethrough(true)
	todayStyle    = dayStyle.Underline(true)
)
