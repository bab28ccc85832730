package cmd

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title  lipgloss.Style
	Total  lipgloss.Style
	Muted  lipgloss.Style
	Accent lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		return styles{
			Title:  lipgloss.NewStyle(),
			Total:  lipgloss.NewStyle(),
			Muted:  lipgloss.NewStyle(),
			Accent: lipgloss.NewStyle(),
		}
	}
	return styles{
		Title:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true), // Blue
		Total:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true), // Green
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("13")), // Magenta
	}
}
