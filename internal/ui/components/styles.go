package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorAccent  = lipgloss.Color("#7D56F4")
	ColorMuted   = lipgloss.Color("#888888")
	ColorError   = lipgloss.Color("#FF5F87")
	ColorWarning = lipgloss.Color("#FFB86C")
	ColorSuccess = lipgloss.Color("#50FA7B")
)

var (
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Width(22)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	NotSetStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginLeft(2).
			MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)
)

// RenderAlert draws a bordered warning box with a title and body lines
func RenderAlert(title string, lines ...string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(1, 2).
		MarginLeft(2).
		MarginTop(1)

	titleStyle := lipgloss.NewStyle().
		Foreground(ColorWarning).
		Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	for _, line := range lines {
		b.WriteString("\n\n")
		b.WriteString(line)
	}
	return box.Render(b.String())
}

// RenderField renders a "label value" row, with an error message underneath when set
func RenderField(label, value, errMsg string) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render(label))
	if value == "" {
		b.WriteString(NotSetStyle.Render("Not set"))
	} else {
		b.WriteString(ValueStyle.Render(value))
	}
	if errMsg != "" {
		b.WriteString("\n  ")
		b.WriteString(ErrorStyle.Render("  ↳ " + errMsg))
	}
	return b.String()
}
