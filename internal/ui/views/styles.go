package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title       lipgloss.Style
	Hero        lipgloss.Style
	Accent      lipgloss.Style
	Section     lipgloss.Style
	Dim         lipgloss.Style
	Status      lipgloss.Style
	Input       lipgloss.Style
	Help        lipgloss.Style
	Main        lipgloss.Style
	Scroll      lipgloss.Style
	Rank        lipgloss.Style
	Rating      lipgloss.Style
	Error       lipgloss.Style
	Loading     lipgloss.Style
	SelectionBg lipgloss.Style
	HelpBox     lipgloss.Style
	InfoBox     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Hero:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		Accent:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		Section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Dim:     lipgloss.NewStyle().Faint(true),
		Status:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Rank:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141")),
		Rating:      lipgloss.NewStyle().Foreground(lipgloss.Color("220")), // yellow
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Loading:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		SelectionBg: lipgloss.NewStyle().Background(lipgloss.Color("238")),
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			BorderForeground(lipgloss.Color("241")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(76).
			BorderForeground(lipgloss.Color("241")),
	}
}
