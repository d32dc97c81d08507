package listview

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"thumbline/internal/indicator"
)

// pageJumpDivisor is used to calculate half the viewport height for centering.
const pageJumpDivisor = 2

// RenderFunc is a function that renders an item at a given index.
// The selected parameter indicates whether this item is currently selected.
type RenderFunc[T any] func(item T, selected bool) string

// Callbacks are the event hooks a wrapper can register. Each fires
// synchronously on the UI goroutine when the corresponding value changes.
// The three streams are independent; none is guaranteed to fire before
// another.
type Callbacks struct {
	// OnLayout fires when the viewport height changes.
	OnLayout func(containerHeight float64)

	// OnContentSize fires when the rendered width or the total content
	// height (in rows) changes.
	OnContentSize func(width, height float64)

	// OnVisibleRangeChanged fires when the set of visible indices
	// changes. all holds every currently visible index in order;
	// nowVisible and noLongerVisible are the diffs against the previous
	// report.
	OnVisibleRangeChanged func(all, nowVisible, noLongerVisible []int)
}

// Model implements virtual scrolling for large lists. It renders only the
// visible portion of the list, allowing smooth navigation through 10,000+
// items without performance degradation.
type Model[T any] struct {
	// items contains all list items
	items []T

	// renderFunc renders a single item
	renderFunc RenderFunc[T]

	// selected is the currently selected item index (0-based)
	selected int

	// visibleFrom is the first visible item index
	visibleFrom int

	// visibleTo is the last visible item index (exclusive)
	visibleTo int

	// height is the viewport height in rows
	height int

	// width is the viewport width in columns
	width int

	// showPositionIndicator enables the built-in "more above/below"
	// lines. This is the list's own scroll indicator, independent of any
	// custom one layered on top.
	showPositionIndicator bool

	callbacks Callbacks

	scrollStyle lipgloss.Style
}

// New creates a new virtual list model.
func New[T any](items []T, height, width int, renderFunc RenderFunc[T]) *Model[T] {
	m := &Model[T]{
		items:                 items,
		renderFunc:            renderFunc,
		height:                height,
		width:                 width,
		showPositionIndicator: true,
		scrollStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
	m.updateVisibleRange()
	return m
}

// SetCallbacks registers the event hooks and immediately reports the
// current layout, content size and visible range, so a late-attaching
// wrapper starts from a consistent picture.
func (m *Model[T]) SetCallbacks(cb Callbacks) {
	m.callbacks = cb
	m.emitLayout()
	m.emitContentSize()
	m.emitVisibleRange(nil)
}

// SetPositionIndicator toggles the built-in "more above/below" lines.
func (m *Model[T]) SetPositionIndicator(enabled bool) {
	m.showPositionIndicator = enabled
}

// PositionIndicatorEnabled reports whether the built-in indicator is on.
func (m *Model[T]) PositionIndicatorEnabled() bool {
	return m.showPositionIndicator
}

// Init initializes the model (required for tea.Model interface).
func (m *Model[T]) Init() tea.Cmd {
	return nil
}

// Update handles keyboard and resize messages.
func (m *Model[T]) Update(msg tea.Msg) (*Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		m.SetSize(msg.Height, msg.Width)
	}
	return m, nil
}

// SetSize resizes the viewport and reports the new layout.
func (m *Model[T]) SetSize(height, width int) {
	heightChanged := height != m.height
	widthChanged := width != m.width
	m.height = height
	m.width = width

	prev := m.captureVisible()
	m.updateVisibleRange()

	if heightChanged {
		m.emitLayout()
	}
	if widthChanged {
		m.emitContentSize()
	}
	m.emitVisibleRange(prev)
}

// SetItems replaces the backing collection and reports the new content
// size. Selection is clamped into the new bounds.
func (m *Model[T]) SetItems(items []T) {
	m.items = items
	if m.selected >= len(items) {
		m.selected = len(items) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}

	prev := m.captureVisible()
	m.updateVisibleRange()
	m.emitContentSize()
	m.emitVisibleRange(prev)
}

// AppendItems adds a batch to the end of the collection.
func (m *Model[T]) AppendItems(items []T) {
	m.items = append(m.items, items...)

	prev := m.captureVisible()
	m.updateVisibleRange()
	m.emitContentSize()
	m.emitVisibleRange(prev)
}

// InsertItemsAt places a batch starting at index, growing the collection
// with zero values if needed. Batches delivered through the bus carry no
// ordering guarantee, so callers position them explicitly.
func (m *Model[T]) InsertItemsAt(index int, items []T) {
	if index < 0 {
		return
	}
	for len(m.items) < index+len(items) {
		var zero T
		m.items = append(m.items, zero)
	}
	copy(m.items[index:], items)

	prev := m.captureVisible()
	m.updateVisibleRange()
	m.emitContentSize()
	m.emitVisibleRange(prev)
}

// Items returns the backing collection. Callers must not mutate it.
func (m *Model[T]) Items() []T {
	return m.items
}

// handleKeyMsg processes keyboard input for navigation.
func (m *Model[T]) handleKeyMsg(msg tea.KeyMsg) {
	if len(m.items) == 0 {
		return
	}

	prev := m.captureVisible()

	switch msg.Type {
	case tea.KeyUp:
		if m.selected > 0 {
			m.selected--
		}

	case tea.KeyDown:
		if m.selected < len(m.items)-1 {
			m.selected++
		}

	case tea.KeyPgUp:
		m.selected -= m.height
		if m.selected < 0 {
			m.selected = 0
		}

	case tea.KeyPgDown:
		m.selected += m.height
		if m.selected >= len(m.items) {
			m.selected = len(m.items) - 1
		}

	case tea.KeyHome:
		m.selected = 0

	case tea.KeyEnd:
		m.selected = len(m.items) - 1

	case tea.KeyRunes:
		// Vim-style navigation
		if len(msg.Runes) > 0 {
			switch msg.Runes[0] {
			case 'j':
				if m.selected < len(m.items)-1 {
					m.selected++
				}
			case 'k':
				if m.selected > 0 {
					m.selected--
				}
			case 'g':
				m.selected = 0
			case 'G':
				m.selected = len(m.items) - 1
			}
		}

	default:
		// Ignore other key types
	}

	m.updateVisibleRange()
	m.emitVisibleRange(prev)
}

// updateVisibleRange calculates the visible range of items based on
// selection and viewport, keeping the selected item on screen.
func (m *Model[T]) updateVisibleRange() {
	if len(m.items) == 0 || m.height <= 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	// Center the selected item where possible
	halfViewport := m.height / pageJumpDivisor
	idealFrom := m.selected - halfViewport
	idealTo := idealFrom + m.height

	if idealFrom < 0 {
		idealFrom = 0
		idealTo = m.height
	}

	if idealTo > len(m.items) {
		idealTo = len(m.items)
		idealFrom = idealTo - m.height
		if idealFrom < 0 {
			idealFrom = 0
		}
	}

	m.visibleFrom = idealFrom
	m.visibleTo = idealTo
}

// View renders the visible portion of the list. When the built-in
// position indicator is on and content extends past the viewport, the
// first and last rendered lines are replaced with "more above/below"
// markers.
func (m *Model[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	lines := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		lines = append(lines, m.renderFunc(m.items[i], i == m.selected))
	}

	if m.showPositionIndicator && len(lines) > 0 {
		if m.visibleFrom > 0 {
			lines[0] = m.scrollStyle.Render(fmt.Sprintf("↑ %d more above ↑", m.visibleFrom))
		}
		if m.visibleTo < len(m.items) {
			lines[len(lines)-1] = m.scrollStyle.Render(fmt.Sprintf("↓ %d more below ↓", len(m.items)-m.visibleTo))
		}
	}

	return strings.Join(lines, "\n")
}

// ScrollToIndex moves the selection to index and adjusts the viewport so
// it is visible. Part of the imperative handle exposed to wrappers.
func (m *Model[T]) ScrollToIndex(index int) {
	m.SetSelected(index)
}

// SetSelected sets the selected item index, capping to valid bounds.
func (m *Model[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		return
	}

	prev := m.captureVisible()

	switch {
	case index < 0:
		m.selected = 0
	case index >= len(m.items):
		m.selected = len(m.items) - 1
	default:
		m.selected = index
	}

	m.updateVisibleRange()
	m.emitVisibleRange(prev)
}

// ItemCount returns the total number of items in the list.
func (m *Model[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *Model[T]) Selected() int {
	return m.selected
}

// SelectedItem returns the currently selected item, nil if the list is
// empty.
func (m *Model[T]) SelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *Model[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible item index (exclusive).
func (m *Model[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height.
func (m *Model[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *Model[T]) Width() int {
	return m.width
}

// ItemLayout reports the vertical placement of the item at index, in
// content rows. This is internal layout data with no stability guarantee;
// out-of-range indices report ok=false.
func (m *Model[T]) ItemLayout(index int) (indicator.ItemLayout, bool) {
	if index < 0 || index >= len(m.items) {
		return indicator.ItemLayout{}, false
	}
	// Items render one row each, so offset is the index itself.
	return indicator.ItemLayout{Offset: float64(index), Height: 1}, true
}

// captureVisible snapshots the current visible indices for diffing.
func (m *Model[T]) captureVisible() []int {
	return visibleIndices(m.visibleFrom, m.visibleTo)
}

// emitLayout reports the viewport height.
func (m *Model[T]) emitLayout() {
	if m.callbacks.OnLayout != nil {
		m.callbacks.OnLayout(float64(m.height))
	}
}

// emitContentSize reports the width and total content height in rows.
func (m *Model[T]) emitContentSize() {
	if m.callbacks.OnContentSize != nil {
		m.callbacks.OnContentSize(float64(m.width), float64(len(m.items)))
	}
}

// emitVisibleRange diffs the current visible indices against prev and
// reports the change. No event fires when the range is unchanged and prev
// is non-nil.
func (m *Model[T]) emitVisibleRange(prev []int) {
	if m.callbacks.OnVisibleRangeChanged == nil {
		return
	}

	all := visibleIndices(m.visibleFrom, m.visibleTo)
	if prev != nil && equalIndices(prev, all) {
		return
	}

	nowVisible := diffIndices(all, prev)
	noLongerVisible := diffIndices(prev, all)
	m.callbacks.OnVisibleRangeChanged(all, nowVisible, noLongerVisible)
}

// visibleIndices expands a [from, to) window into explicit indices.
func visibleIndices(from, to int) []int {
	if to <= from {
		return []int{}
	}
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}

// equalIndices reports whether two index slices hold the same values.
func equalIndices(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// diffIndices returns the indices present in a but not in b. Both slices
// are contiguous ascending windows, so bounds checks suffice.
func diffIndices(a, b []int) []int {
	out := []int{}
	for _, v := range a {
		if len(b) == 0 || v < b[0] || v > b[len(b)-1] {
			out = append(out, v)
		}
	}
	return out
}
