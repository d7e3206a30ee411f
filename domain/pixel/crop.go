package pixel

import (
	"errors"
	"image"
)

// Crop copies the part of b inside r into a new buffer. r is clamped to the
// buffer bounds; an empty intersection is an error.
func (b *Buffer) Crop(r image.Rectangle) (*Buffer, error) {
	if b == nil {
		return nil, errors.New("pixel: nil buffer")
	}
	r = r.Intersect(b.Bounds())
	if r.Empty() {
		return nil, errors.New("pixel: crop outside buffer")
	}
	out := New(r.Dx(), r.Dy(), b.C)
	rowLen := r.Dx() * b.C
	for y := 0; y < r.Dy(); y++ {
		src := ((r.Min.Y+y)*b.W + r.Min.X) * b.C
		copy(out.Pix[y*rowLen:(y+1)*rowLen], b.Pix[src:src+rowLen])
	}
	return out, nil
}

// Around extracts a square patch of side size centered at (cx, cy).
// The rectangle is clamped to the buffer and is always at least 1x1.
// It returns the patch and its rectangle relative to b.
func (b *Buffer) Around(cx, cy, size int) (*Buffer, image.Rectangle, error) {
	if b.Empty() {
		return nil, image.Rectangle{}, errors.New("pixel: empty buffer")
	}
	if size < 1 {
		size = 1
	}
	half := size / 2
	x0 := max(cx-half, 0)
	y0 := max(cy-half, 0)
	x0 = min(x0, b.W-1)
	y0 = min(y0, b.H-1)
	w := min(size, b.W-x0)
	h := min(size, b.H-y0)
	w = max(w, 1)
	h = max(h, 1)
	rect := image.Rect(x0, y0, x0+w, y0+h)
	patch, err := b.Crop(rect)
	if err != nil {
		return nil, image.Rectangle{}, err
	}
	return patch, rect, nil
}
