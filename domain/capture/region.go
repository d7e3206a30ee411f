package capture

import (
	"fmt"
	"image"
)

// Region is a rectangle in screen coordinates. Right and Bottom are
// exclusive, so the captured frame is exactly Width x Height pixels.
type Region struct {
	Left, Top, Right, Bottom int
}

// RegionFromPoints builds a normalized region from two corner points in any
// order, as produced by a drag on the selection overlay.
func RegionFromPoints(x1, y1, x2, y2 int) Region {
	return Region{Left: min(x1, x2), Top: min(y1, y2), Right: max(x1, x2), Bottom: max(y1, y2)}
}

// RegionFromRect converts an image.Rectangle.
func RegionFromRect(r image.Rectangle) Region {
	r = r.Canon()
	return Region{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

func (r Region) Width() int  { return r.Right - r.Left }
func (r Region) Height() int { return r.Bottom - r.Top }

// Min is the top-left corner.
func (r Region) Min() image.Point { return image.Pt(r.Left, r.Top) }

func (r Region) Rect() image.Rectangle { return image.Rect(r.Left, r.Top, r.Right, r.Bottom) }

// Empty reports whether the region has no area.
func (r Region) Empty() bool { return r.Right <= r.Left || r.Bottom <= r.Top }

// Validate checks right > left and bottom > top.
func (r Region) Validate() error {
	if r.Empty() {
		return fmt.Errorf("capture: invalid region %s", r)
	}
	return nil
}

// String renders the region the way the UI labels it.
func (r Region) String() string {
	return fmt.Sprintf("(%d, %d) -> (%d, %d)", r.Left, r.Top, r.Right, r.Bottom)
}
