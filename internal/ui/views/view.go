package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	Loading       bool
	LoadSource    string
	ItemCount     int
	SelectedIndex int
	SelectedRow   float64 // content row of the selection, -1 when unknown
	StatusMessage string
	ListView      string // pre-rendered list window
	ThumbView     string // pre-rendered indicator column
	HelpView      string // pre-rendered help line
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Styles exposes the style table for components rendered outside the
// renderer (the thumb column).
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n")

	// List and indicator column side by side, thumb anchored to the
	// right edge
	if state.ThumbView != "" {
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, state.ListView, state.ThumbView))
	} else {
		content.WriteString(state.ListView)
	}
	content.WriteString("\n")

	content.WriteString(r.renderStatusLine(state))

	// Push the help line to the bottom
	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height
		if availableLines <= 0 {
			availableLines = 24
		}
		paddingNeeded := availableLines - currentLines - 1
		if paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(state.HelpView)
	}

	return r.styles.Main.MaxHeight(state.Height).Render(content.String())
}

// renderTitleLine builds the title with a right-aligned loading indicator
func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("thumbline")

	if !state.Loading {
		return logo
	}

	spinner := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	frame := int(time.Now().UnixMilli()/80) % len(spinner)
	right := r.styles.Dim.Render(fmt.Sprintf("%s Loading %s", spinner[frame], state.LoadSource))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding <= 0 {
		return fmt.Sprintf("%s  %s", logo, right)
	}
	return fmt.Sprintf("%s%s%s", logo, strings.Repeat(" ", padding), right)
}

// renderStatusLine shows the selection position and any status message
func (r *Renderer) renderStatusLine(state ViewState) string {
	var parts []string

	if state.ItemCount > 0 {
		pos := fmt.Sprintf("item %d/%d", state.SelectedIndex+1, state.ItemCount)
		if state.SelectedRow >= 0 {
			pos += fmt.Sprintf(" · row %.0f", state.SelectedRow)
		}
		parts = append(parts, pos)
	} else {
		parts = append(parts, "no items")
	}

	if state.StatusMessage != "" {
		parts = append(parts, state.StatusMessage)
	}

	return r.styles.Status.Render(strings.Join(parts, "  "))
}
