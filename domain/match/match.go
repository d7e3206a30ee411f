// Package match scores how well a reference image appears inside a frame.
//
// Scores follow normalized correlation-coefficient semantics: the mean of
// each channel is removed from both the window and the reference before
// correlating, so scores fall in [-1, 1] and 1 means a perfect match up to
// brightness and contrast.
package match

import (
	"errors"
	"fmt"
	"image"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// Result is the best alignment of a reference in a frame. Loc is the
// reference's top-left offset relative to the frame origin.
type Result struct {
	Score float64
	Loc   image.Point
}

// Matcher finds the best alignment of ref inside frame.
type Matcher interface {
	Score(frame, ref *pixel.Buffer) (Result, error)
}

// ErrSizeMismatch is matched by *SizeMismatchError.
var ErrSizeMismatch = errors.New("reference larger than frame")

// ErrEmptyInput is returned for nil or zero-sized buffers.
var ErrEmptyInput = errors.New("match: empty input")

// SizeMismatchError reports a reference that cannot fit inside the frame
// on at least one axis. It is per target and never fatal.
type SizeMismatchError struct {
	Frame image.Point
	Ref   image.Point
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("match: reference %dx%d larger than frame %dx%d", e.Ref.X, e.Ref.Y, e.Frame.X, e.Frame.Y)
}

func (e *SizeMismatchError) Is(target error) bool { return target == ErrSizeMismatch }

// CheckSize returns a *SizeMismatchError when ref exceeds frame on either
// axis.
func CheckSize(frame, ref *pixel.Buffer) error {
	if frame.Empty() || ref.Empty() {
		return ErrEmptyInput
	}
	if ref.W > frame.W || ref.H > frame.H {
		return &SizeMismatchError{Frame: image.Pt(frame.W, frame.H), Ref: image.Pt(ref.W, ref.H)}
	}
	return nil
}

// Normalize brings frame and ref to the same channel depth. When the
// channel counts differ both are reduced to luminance; otherwise they are
// returned untouched.
func Normalize(frame, ref *pixel.Buffer) (*pixel.Buffer, *pixel.Buffer) {
	if frame == nil || ref == nil || frame.C == ref.C {
		return frame, ref
	}
	return frame.Gray(), ref.Gray()
}

// ClickPoint converts a match location into absolute screen coordinates:
// the region origin plus the location plus half the reference size.
func ClickPoint(loc image.Point, ref *pixel.Buffer, regionMin image.Point) image.Point {
	return regionMin.Add(loc).Add(image.Pt(ref.W/2, ref.H/2))
}
