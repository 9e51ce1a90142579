package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle       = lipgloss.NewStyle().Padding(1, 2)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	helpStyle      = lipgloss.NewStyle().Faint(true)
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	selectedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	importantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	staleStyle     = lipgloss.NewStyle().Faint(true).Italic(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)
