package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/internal/workflow"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			MarginBottom(1)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// phaseColors maps workflow colors to terminal colors.
var phaseColors = map[workflow.Color]lipgloss.Color{
	workflow.ColorProgress25:  lipgloss.Color("39"),
	workflow.ColorProgress50:  lipgloss.Color("63"),
	workflow.ColorProgress75:  lipgloss.Color("135"),
	workflow.ColorProgress100: lipgloss.Color("42"),
	workflow.ColorFallback:    lipgloss.Color("255"),
}

// PhaseColor resolves a workflow color, falling back to white.
func PhaseColor(c workflow.Color) lipgloss.Color {
	if col, ok := phaseColors[c]; ok {
		return col
	}
	return phaseColors[workflow.ColorFallback]
}
