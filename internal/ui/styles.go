package ui

import "github.com/charmbracelet/lipgloss"

const (
	gold       = lipgloss.Color("#d4af37")
	brightGold = lipgloss.Color("#f9d71c")
	emerald    = lipgloss.Color("#065f46")
	midnight   = lipgloss.Color("#021a12")
)

var (
	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(gold)

	taglineStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(emerald).
			Background(gold).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gold).
			Padding(0, 2)

	panelTitleStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(brightGold)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#8a6d1d", Dark: "#a8913f"})

	buttonStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(midnight).
			Background(gold).
			Padding(0, 2)

	blessingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#222222", Dark: "#FFFFFF"})

	sentimentStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(brightGold)

	poemStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#8a6d1d", Dark: "#8c7a3c"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	infoStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(gold).
			Padding(0, 1)

	spinnerStyle = lipgloss.NewStyle().Foreground(brightGold)
)
