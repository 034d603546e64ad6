package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/pathway/internal/report"
)

var (
	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("42")).
			Padding(0, 2)

	toastTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

// ToastMsg asks the wizard to show a notification until the next key press.
type ToastMsg report.Toast

// RenderToast draws a toast box.
func RenderToast(t report.Toast) string {
	body := toastTitleStyle.Render(t.Title)
	if t.Description != "" {
		body += "\n" + MutedStyle.Render(t.Description)
	}
	return toastStyle.Render(body)
}
