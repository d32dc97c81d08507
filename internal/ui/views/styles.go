package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title    lipgloss.Style
	Dim      lipgloss.Style
	Status   lipgloss.Style
	Selected lipgloss.Style
	Tag      lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Main     lipgloss.Style
	Thumb    lipgloss.Style
	Track    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Bold(true),
		Tag:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:  lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(0, 1),
		Thumb: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).SetString("█"),
		Track: lipgloss.NewStyle().Faint(true).SetString("░"),
	}
}
