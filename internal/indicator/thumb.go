package indicator

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// DefaultThumbWidth is the thumb column width in cells.
const DefaultThumbWidth = 1

// Thumb renders the indicator overlay column anchored to the list's right
// edge. Geometry is computed in float cells and rounded only here.
type Thumb struct {
	Width      int
	ThumbStyle lipgloss.Style
	TrackStyle lipgloss.Style
}

// NewThumb creates a thumb renderer with the default look: a solid bar on
// a faint track.
func NewThumb(width int) Thumb {
	if width <= 0 {
		width = DefaultThumbWidth
	}
	return Thumb{
		Width:      width,
		ThumbStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).SetString("█"),
		TrackStyle: lipgloss.NewStyle().Faint(true).SetString("░"),
	}
}

// Render draws the track column of trackHeight rows with the thumb at the
// controller's current animated geometry. A hidden controller renders a
// blank column of the same width so the layout does not shift.
func (t Thumb) Render(c *Controller, trackHeight int, now time.Time) string {
	if trackHeight <= 0 {
		return ""
	}

	if c.Hidden() {
		blank := strings.Repeat(" ", t.Width)
		lines := make([]string, trackHeight)
		for i := range lines {
			lines[i] = blank
		}
		return strings.Join(lines, "\n")
	}

	height, offset := c.Geometry(now)

	thumbRows := int(math.Round(height))
	if thumbRows < 1 {
		thumbRows = 1
	}
	if thumbRows > trackHeight {
		thumbRows = trackHeight
	}

	top := int(math.Round(offset))
	if top < 0 {
		top = 0
	}
	if top+thumbRows > trackHeight {
		top = trackHeight - thumbRows
	}

	thumbLine := strings.Repeat(t.ThumbStyle.String(), t.Width)
	trackLine := strings.Repeat(t.TrackStyle.String(), t.Width)

	lines := make([]string, trackHeight)
	for i := range lines {
		if i >= top && i < top+thumbRows {
			lines[i] = thumbLine
		} else {
			lines[i] = trackLine
		}
	}
	return strings.Join(lines, "\n")
}
