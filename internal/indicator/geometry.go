package indicator

// DefaultMinThumbHeight is the floor for the computed thumb height, in cells.
// It keeps the thumb visible even for very long collections.
const DefaultMinThumbHeight = 10.0

// Inputs are the values the geometry computation derives the thumb from.
// All of them are owned by the controller; the computation itself is pure.
type Inputs struct {
	ContainerHeight    float64 // viewport height, 0 until the first layout event
	ContentHeight      float64 // full scrollable content height
	ContentHeightKnown bool    // false until a content-size event arrives
	ItemCount          int     // total items backing the list; <= 0 means unknown
	StartIndex         int     // first visible item index, inclusive
	EndIndex           int     // last visible item index, inclusive, >= StartIndex
}

// Geometry is the computed thumb size and position. It is derived state,
// recomputed whenever any input changes, and never stored beyond the
// current animation targets.
type Geometry struct {
	Height          float64
	Offset          float64
	CoversWholeArea bool
}

// Compute maps a visible index range plus container/content dimensions to
// thumb geometry. Position tracks index progress, not pixel progress: the
// fraction of item indices scrolled past determines where the thumb sits,
// which works even when item heights are non-uniform or unknown.
//
// There are no failure modes. Degenerate numeric states (zero heights,
// unknown item count) fall back to defaults instead of erroring. When the
// minHeight floor forces Height above ContainerHeight the Offset can go
// negative; callers clamp at render time.
func Compute(in Inputs, minHeight float64) Geometry {
	itemCount := in.ItemCount
	if itemCount <= 0 {
		itemCount = 1
	}

	visibleCount := in.EndIndex - in.StartIndex + 1
	heightRatio := float64(visibleCount) / float64(itemCount)

	height := in.ContainerHeight * heightRatio
	if height < minHeight {
		height = minHeight
	}

	// When the viewport shows the entire list there is no index progress
	// to express, so the thumb pins to the top.
	positionRatio := 0.0
	if itemCount-visibleCount != 0 {
		positionRatio = float64(in.StartIndex) / float64(itemCount-visibleCount)
	}

	offset := positionRatio * (in.ContainerHeight - height)

	// Covering the whole area means everything fits without scrolling,
	// which only makes sense once both dimensions have been reported.
	covers := in.ContentHeightKnown &&
		in.ContainerHeight > 0 &&
		in.ContentHeight <= in.ContainerHeight

	return Geometry{
		Height:          height,
		Offset:          offset,
		CoversWholeArea: covers,
	}
}
