package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ------- minimal styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	plainStyle    = lipgloss.NewStyle()

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

// applyTheme maps the shared theme names onto Lip Gloss. mono drops color
// and uses ASCII boxes, matching the non-interactive output. Each call starts
// from the classic styles, so switching themes never compounds.
func applyTheme(name string) {
	titleStyle = lipgloss.NewStyle().Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	boxChecked, boxUnchecked = "☑", "☐"

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mono":
		lipgloss.SetColorProfile(termenv.Ascii)
		boxChecked, boxUnchecked = "[x]", "[ ]"
	case "neon":
		titleStyle = titleStyle.Foreground(lipgloss.Color("13"))
		accentStyle = accentStyle.Foreground(lipgloss.Color("14"))
		boxChecked, boxUnchecked = "◼", "◻"
	}
}

func panelStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
}
