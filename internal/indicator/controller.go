package indicator

import "time"

// VisibleRange is the inclusive index span of items currently shown by the
// host list. Only the latest reported value is kept.
type VisibleRange struct {
	Start int
	End   int
}

// AreaMetrics holds the viewport height and full content height as last
// reported by the host. The two arrive from independent events and may be
// transiently inconsistent; the geometry computation tolerates that.
type AreaMetrics struct {
	ContainerHeight    float64
	ContentHeight      float64
	ContentHeightKnown bool
}

// ItemLayout describes one item's vertical placement inside the content.
type ItemLayout struct {
	Offset float64
	Height float64
}

// ItemLayouter is the optional host capability for querying per-item
// placement by index. Hosts that cannot provide it simply don't implement
// it; the controller degrades gracefully.
type ItemLayouter interface {
	ItemLayout(index int) (ItemLayout, bool)
}

// Controller synchronizes thumb geometry with a host list's layout,
// content-size and visible-range events. It owns the latest VisibleRange
// and AreaMetrics, recomputes geometry on every intake, and drives the two
// animated properties (height, offset) the rendered thumb consumes.
//
// All state lives on the UI goroutine; events are expected to arrive in
// any order and the recompute is idempotent with respect to ordering.
type Controller struct {
	visible   VisibleRange
	area      AreaMetrics
	itemCount int

	shouldShow bool
	height     Transition
	offset     Transition

	minHeight  float64
	duration   time.Duration
	showCustom bool
	showNative bool

	// caller-supplied observers, forwarded to unchanged
	layoutObserver       func(containerHeight float64)
	contentSizeObserver  func(width, height float64)
	visibleRangeObserver func(all, nowVisible, noLongerVisible []int)

	handle     any
	handleRefs []func(any)
	layouter   ItemLayouter

	clock func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithMinThumbHeight overrides the thumb height floor.
func WithMinThumbHeight(h float64) Option {
	return func(c *Controller) { c.minHeight = h }
}

// WithTransitionDuration overrides how long geometry changes animate.
func WithTransitionDuration(d time.Duration) Option {
	return func(c *Controller) { c.duration = d }
}

// WithIndicatorEnabled toggles the custom thumb.
func WithIndicatorEnabled(enabled bool) Option {
	return func(c *Controller) { c.showCustom = enabled }
}

// WithNativeIndicatorEnabled records whether the host's own position
// indicator is enabled. The controller does not render it; the flag only
// feeds the visibility rule.
func WithNativeIndicatorEnabled(enabled bool) Option {
	return func(c *Controller) { c.showNative = enabled }
}

// WithLayoutObserver forwards layout events to fn after intake.
func WithLayoutObserver(fn func(containerHeight float64)) Option {
	return func(c *Controller) { c.layoutObserver = fn }
}

// WithContentSizeObserver forwards content-size events to fn after intake.
func WithContentSizeObserver(fn func(width, height float64)) Option {
	return func(c *Controller) { c.contentSizeObserver = fn }
}

// WithVisibleRangeObserver forwards visible-range events to fn after
// intake. The slices are passed through untouched.
func WithVisibleRangeObserver(fn func(all, nowVisible, noLongerVisible []int)) Option {
	return func(c *Controller) { c.visibleRangeObserver = fn }
}

// WithHandleRef registers an external slot for the host list handle. When
// the controller attaches to a host, the same handle is written to every
// registered slot, so callers keep direct imperative access to the host.
func WithHandleRef(ref func(any)) Option {
	return func(c *Controller) {
		if ref != nil {
			c.handleRefs = append(c.handleRefs, ref)
		}
	}
}

// WithClock replaces the time source, for tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) { c.clock = clock }
}

// NewController creates a controller with no host attached yet.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		minHeight:  DefaultMinThumbHeight,
		duration:   DefaultTransitionDuration,
		showCustom: true,
		showNative: true,
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.height = NewTransition(0, c.duration)
	c.offset = NewTransition(0, c.duration)
	return c
}

// Attach captures the host list handle. The controller keeps its own
// reference (it needs the host's item-layout capability) and fans the same
// handle out to every externally registered slot. Single ownership point,
// fan-out assignment.
func (c *Controller) Attach(handle any) {
	c.handle = handle
	if l, ok := handle.(ItemLayouter); ok {
		c.layouter = l
	} else {
		c.layouter = nil
	}
	for _, ref := range c.handleRefs {
		ref(handle)
	}
}

// Handle returns the attached host list handle, nil before Attach.
func (c *Controller) Handle() any {
	return c.handle
}

// Layout records a new container height and recomputes.
func (c *Controller) Layout(containerHeight float64) {
	c.area.ContainerHeight = containerHeight
	c.recompute()
	if c.layoutObserver != nil {
		c.layoutObserver(containerHeight)
	}
}

// ContentSize records a new content height and recomputes. The width is
// not used for geometry but is forwarded to observers.
func (c *Controller) ContentSize(width, height float64) {
	c.area.ContentHeight = height
	c.area.ContentHeightKnown = true
	c.recompute()
	if c.contentSizeObserver != nil {
		c.contentSizeObserver(width, height)
	}
}

// VisibleRangeChanged records the new visible index span and recomputes.
// The raw event reaches observers unchanged; the controller never filters
// or mutates what the caller sees. An empty index list is ignored.
func (c *Controller) VisibleRangeChanged(all, nowVisible, noLongerVisible []int) {
	if len(all) > 0 {
		c.visible.Start = all[0]
		c.visible.End = all[len(all)-1]
		c.recompute()
	}
	if c.visibleRangeObserver != nil {
		c.visibleRangeObserver(all, nowVisible, noLongerVisible)
	}
}

// SetItemCount records the total number of items backing the list.
func (c *Controller) SetItemCount(n int) {
	if n == c.itemCount {
		return
	}
	c.itemCount = n
	c.recompute()
}

// recompute feeds the latest inputs to the geometry computation, updates
// the visibility flag, and retargets the animated properties. Running it
// again with unchanged inputs retargets toward identical values, which the
// transitions treat as a no-op.
func (c *Controller) recompute() {
	g := Compute(Inputs{
		ContainerHeight:    c.area.ContainerHeight,
		ContentHeight:      c.area.ContentHeight,
		ContentHeightKnown: c.area.ContentHeightKnown,
		ItemCount:          c.itemCount,
		StartIndex:         c.visible.Start,
		EndIndex:           c.visible.End,
	}, c.minHeight)

	c.shouldShow = !g.CoversWholeArea

	now := c.clock()
	c.height.Retarget(now, g.Height)
	c.offset.Retarget(now, g.Offset)
}

// SetIndicatorEnabled toggles the custom thumb at runtime.
func (c *Controller) SetIndicatorEnabled(enabled bool) {
	c.showCustom = enabled
}

// SetNativeIndicatorEnabled records the host indicator flag at runtime.
func (c *Controller) SetNativeIndicatorEnabled(enabled bool) {
	c.showNative = enabled
}

// ShouldShow reports whether the content extends beyond the viewport.
func (c *Controller) ShouldShow() bool {
	return c.shouldShow
}

// Hidden applies the visibility rule: the thumb disappears when the caller
// disabled both the host's own indicator and this one, or when the content
// covers the whole area.
func (c *Controller) Hidden() bool {
	if !c.showNative && !c.showCustom {
		return true
	}
	return !c.shouldShow
}

// Geometry returns the animated thumb height and offset at now.
func (c *Controller) Geometry(now time.Time) (height, offset float64) {
	return c.height.At(now), c.offset.At(now)
}

// TargetGeometry returns the values the animation is heading toward.
func (c *Controller) TargetGeometry() (height, offset float64) {
	return c.height.Target(), c.offset.Target()
}

// Animating reports whether either property is still in flight at now.
func (c *Controller) Animating(now time.Time) bool {
	return !c.height.Done(now) || !c.offset.Done(now)
}

// VisibleRange returns the latest visible index span.
func (c *Controller) VisibleRange() VisibleRange {
	return c.visible
}

// Area returns the latest viewport and content metrics.
func (c *Controller) Area() AreaMetrics {
	return c.area
}

// ItemLayout queries the host's per-item placement capability. Hosts are
// free not to provide it; absence reports ok=false and nothing else.
func (c *Controller) ItemLayout(index int) (ItemLayout, bool) {
	if c.layouter == nil {
		return ItemLayout{}, false
	}
	return c.layouter.ItemLayout(index)
}
