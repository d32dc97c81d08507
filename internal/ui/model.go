package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"thumbline/internal/config"
	"thumbline/internal/domain"
	"thumbline/internal/eventbus"
	"thumbline/internal/indicator"
	"thumbline/internal/listview"
	"thumbline/internal/logging"
	"thumbline/internal/ui/views"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// frameMsg drives indicator animation frames
type frameMsg time.Time

// frameInterval is how often animation frames redraw while a geometry
// transition is in flight.
const frameInterval = time.Second / 60

// chromeRows is the number of rows used around the list: title, status
// and help lines.
const chromeRows = 3

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config

	width  int
	height int

	keys     KeyMap
	help     help.Model
	renderer *views.Renderer

	list  *listview.Model[domain.Item]
	ctrl  *indicator.Controller
	thumb indicator.Thumb

	// listHandle is the externally supplied ref slot, filled through the
	// controller's handle fan-out. It is deliberately distinct from the
	// controller's own reference: both point at the same list.
	listHandle *listview.Model[domain.Item]

	loading       bool
	loadSource    string
	statusMessage string
	ticking       bool

	pager  *PagerOps
	logger zerolog.Logger

	// Program reference for terminal management around the pager
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config) *Model {
	m := &Model{
		bus:      bus,
		config:   cfg,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		renderer: views.NewRenderer(),
		logger:   logging.Component("ui"),
	}

	styles := m.renderer.Styles()

	m.list = listview.New(nil, 0, 0, func(item domain.Item, selected bool) string {
		line := item.Text
		if item.Tag != "" {
			line = styles.Tag.Render("["+item.Tag+"] ") + line
		}
		if selected {
			return styles.Selected.Render("> " + line)
		}
		return "  " + line
	})
	m.list.SetPositionIndicator(cfg.List.ShowPositionIndicator)

	m.ctrl = indicator.NewController(
		indicator.WithMinThumbHeight(cfg.Indicator.MinThumbHeight),
		indicator.WithTransitionDuration(time.Duration(cfg.Indicator.TransitionMs)*time.Millisecond),
		indicator.WithIndicatorEnabled(cfg.Indicator.Enabled),
		indicator.WithNativeIndicatorEnabled(cfg.List.ShowPositionIndicator),
		indicator.WithHandleRef(func(h any) {
			if lm, ok := h.(*listview.Model[domain.Item]); ok {
				m.listHandle = lm
			}
		}),
		indicator.WithVisibleRangeObserver(func(all, nowVisible, noLongerVisible []int) {
			m.logger.Debug().
				Ints("now_visible", nowVisible).
				Ints("no_longer_visible", noLongerVisible).
				Int("visible_count", len(all)).
				Msg("visible range changed")
		}),
	)

	m.list.SetCallbacks(listview.Callbacks{
		OnLayout: m.ctrl.Layout,
		OnContentSize: func(width, height float64) {
			m.ctrl.SetItemCount(m.list.ItemCount())
			m.ctrl.ContentSize(width, height)
		},
		OnVisibleRangeChanged: m.ctrl.VisibleRangeChanged,
	})
	m.ctrl.Attach(m.list)

	m.thumb = indicator.NewThumb(cfg.Indicator.Width)
	m.thumb.ThumbStyle = styles.Thumb
	m.thumb.TrackStyle = styles.Track

	return m
}

// SetProgram stores the program reference needed for pager terminal
// handover.
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// List returns the imperative handle of the wrapped list, as delivered
// through the controller's ref fan-out.
func (m *Model) List() *listview.Model[domain.Item] {
	return m.listHandle
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.list.SetSize(m.listHeight(), m.listWidth())
		return m, m.maybeAnimate()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case frameMsg:
		if m.ctrl.Animating(time.Time(msg)) {
			return m, animationFrame()
		}
		m.ticking = false
		return m, nil

	case pagerClosedMsg:
		if msg.err != nil {
			m.statusMessage = fmt.Sprintf("pager error: %v", msg.err)
			m.logger.Error().Err(msg.err).Msg("pager failed")
		}
		return m, nil
	}

	return m, nil
}

// handleKeyMsg processes keyboard input
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m, m.openSelectedItem()

	case key.Matches(msg, m.keys.ToggleIndicator):
		m.config.Indicator.Enabled = !m.config.Indicator.Enabled
		m.ctrl.SetIndicatorEnabled(m.config.Indicator.Enabled)
		m.publishConfigChanged()
		return m, nil

	case key.Matches(msg, m.keys.ToggleNative):
		m.config.List.ShowPositionIndicator = !m.config.List.ShowPositionIndicator
		m.list.SetPositionIndicator(m.config.List.ShowPositionIndicator)
		m.ctrl.SetNativeIndicatorEnabled(m.config.List.ShowPositionIndicator)
		m.publishConfigChanged()
		return m, nil
	}

	// Everything else is list navigation
	m.list, _ = m.list.Update(msg)
	return m, m.maybeAnimate()
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.LoadStartedEvent:
		m.loading = true
		m.loadSource = e.Source
		m.statusMessage = ""

	case eventbus.ItemBatchLoadedEvent:
		// Batches can arrive out of order; Item.Index is authoritative.
		if len(e.Items) > 0 {
			m.list.InsertItemsAt(e.Items[0].Index, e.Items)
		}
		return m, m.maybeAnimate()

	case eventbus.LoadCompletedEvent:
		m.loading = false
		m.statusMessage = fmt.Sprintf("loaded %d items", e.ItemsFound)
		return m, m.maybeAnimate()

	case eventbus.ErrorEvent:
		m.loading = false
		m.statusMessage = e.Message
		m.logger.Error().Err(e.Err).Msg(e.Message)
	}

	return m, nil
}

// publishConfigChanged asks for the toggled settings to be persisted.
func (m *Model) publishConfigChanged() {
	m.bus.Publish(eventbus.ConfigChangedEvent{
		IndicatorEnabled:      m.config.Indicator.Enabled,
		ShowPositionIndicator: m.config.List.ShowPositionIndicator,
	})
}

// openSelectedItem shows the selected item in the pager
func (m *Model) openSelectedItem() tea.Cmd {
	item := m.list.SelectedItem()
	if item == nil || m.pager == nil {
		return nil
	}

	detail := &strings.Builder{}
	fmt.Fprintf(detail, "Item %d of %d\n", item.Index+1, m.list.ItemCount())
	if layout, ok := m.ctrl.ItemLayout(item.Index); ok {
		fmt.Fprintf(detail, "Content row %.0f, height %.0f\n", layout.Offset, layout.Height)
	}
	if item.Tag != "" {
		fmt.Fprintf(detail, "Tag: %s\n", item.Tag)
	}
	detail.WriteString("\n")
	detail.WriteString(item.Text)
	detail.WriteString("\n")

	return func() tea.Msg {
		return pagerClosedMsg{err: m.pager.ShowInPager(detail.String())}
	}
}

// maybeAnimate starts frame ticking when a geometry transition is in
// flight and no ticker is already running.
func (m *Model) maybeAnimate() tea.Cmd {
	if m.ticking || !m.ctrl.Animating(time.Now()) {
		return nil
	}
	m.ticking = true
	return animationFrame()
}

// animationFrame schedules the next animation frame
func animationFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// listHeight is the viewport height available to the list
func (m *Model) listHeight() int {
	h := m.height - chromeRows
	if h < 0 {
		h = 0
	}
	return h
}

// listWidth is the width available to the list next to the thumb column
func (m *Model) listWidth() int {
	w := m.width - 2 - m.thumb.Width
	if w < 0 {
		w = 0
	}
	return w
}

// View renders the UI
func (m *Model) View() string {
	listBlock := lipgloss.NewStyle().Width(m.listWidth()).Render(m.list.View())
	thumbView := m.thumb.Render(m.ctrl, m.listHeight(), time.Now())

	selectedRow := -1.0
	if layout, ok := m.ctrl.ItemLayout(m.list.Selected()); ok {
		selectedRow = layout.Offset
	}

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Loading:       m.loading,
		LoadSource:    m.loadSource,
		ItemCount:     m.list.ItemCount(),
		SelectedIndex: m.list.Selected(),
		SelectedRow:   selectedRow,
		StatusMessage: m.statusMessage,
		ListView:      listBlock,
		ThumbView:     thumbView,
		HelpView:      m.help.View(m.keys),
	})
}
