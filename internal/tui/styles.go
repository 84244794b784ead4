package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff00ff"))

	label = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899"))
	value = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	hint  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
	warn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00"))

	headerCell = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Padding(0, 1)
	cell       = lipgloss.NewStyle().Padding(0, 1)
)
