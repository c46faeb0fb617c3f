package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Primary   = lipgloss.Color("#7C6FF0") // Violet
	Secondary = lipgloss.Color("#A89BF5") // Light violet
	Accent    = lipgloss.Color("#F0A36F") // Amber
	Success   = lipgloss.Color("#6FF0A3") // Mint
	Warning   = lipgloss.Color("#F0D86F") // Yellow
	Error     = lipgloss.Color("#F06F7C") // Coral
	Muted     = lipgloss.Color("#7B8294") // Gray
	Text      = lipgloss.Color("#ECEFF8") // Off-white
	BgDark    = lipgloss.Color("#14121F") // Near-black violet
	BgLight   = lipgloss.Color("#262238") // Dark violet

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	DoneStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Strikethrough(true)

	PriorityHighStyle = lipgloss.NewStyle().
				Foreground(Error).
				Bold(true)

	PriorityMediumStyle = lipgloss.NewStyle().
				Foreground(Warning)

	PriorityLowStyle = lipgloss.NewStyle().
				Foreground(Muted)
)

func priorityStyle(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return PriorityHighStyle
	case "low":
		return PriorityLowStyle
	}
	return PriorityMediumStyle
}
