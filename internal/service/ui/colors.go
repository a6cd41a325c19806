package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// TitleStyle ANSI 6 (cyan) reads well on light and dark terminals
	TitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).MarginBottom(1)

	UsageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

	// DescStyle ANSI 8 (gray) keeps secondary text quiet
	DescStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	FlagStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	OKStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// Section renders a titled block. Empty bodies are omitted.
func Section(title, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return ""
	}
	return TitleStyle.Render(strings.ToUpper(title)) + "\n" + body + "\n\n"
}

// Bullets renders one "- item" line per entry.
func Bullets(items []string) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString("- " + it + "\n")
	}
	return b.String()
}

// Check renders a doctor-style status line.
func Check(ok bool, label, detail string) string {
	mark := OKStyle.Render("[ok]")
	if !ok {
		mark = ErrorStyle.Render("[!!]")
	}
	line := mark + " " + label
	if detail != "" {
		line += " " + DescStyle.Render(detail)
	}
	return line + "\n"
}
