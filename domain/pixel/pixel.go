// Package pixel holds the raw frame representation shared by capture and
// matching: a row-major byte buffer in BGR order (3 channels) or luminance
// (1 channel).
package pixel

import (
	"errors"
	"image"
	"image/color"
)

// Buffer is an H x W x C image. Pix is laid out row by row with no padding,
// so the stride is always W*C.
type Buffer struct {
	W, H int
	C    int
	Pix  []byte
}

// New allocates a zeroed buffer.
func New(w, h, c int) *Buffer {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Buffer{W: w, H: h, C: c, Pix: make([]byte, w*h*c)}
}

// Bounds returns the buffer rectangle anchored at the origin.
func (b *Buffer) Bounds() image.Rectangle {
	if b == nil {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, b.W, b.H)
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool { return b == nil || b.W <= 0 || b.H <= 0 || len(b.Pix) == 0 }

// Stride is the number of bytes per row.
func (b *Buffer) Stride() int { return b.W * b.C }

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	out := &Buffer{W: b.W, H: b.H, C: b.C, Pix: make([]byte, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

// Fixed-point BT.601 luma weights (14-bit), the same coefficients OpenCV
// uses for BGR2GRAY on 8-bit data.
const (
	lumaB     = 1868
	lumaG     = 9617
	lumaR     = 4899
	lumaShift = 14
	lumaRound = 1 << (lumaShift - 1)
)

func luma(r, g, b uint8) uint8 {
	return uint8((lumaR*uint32(r) + lumaG*uint32(g) + lumaB*uint32(b) + lumaRound) >> lumaShift)
}

// Gray returns a single-channel luminance version of b. A buffer that is
// already single-channel is returned as is.
func (b *Buffer) Gray() *Buffer {
	if b == nil || b.C == 1 {
		return b
	}
	out := New(b.W, b.H, 1)
	n := b.W * b.H
	for i, j := 0, 0; i < n; i, j = i+1, j+b.C {
		out.Pix[i] = luma(b.Pix[j+2], b.Pix[j+1], b.Pix[j])
	}
	return out
}

// FromImage converts img into a buffer. *image.Gray and *image.Gray16
// sources become single-channel; everything else becomes BGR with alpha
// dropped. Color values are taken unpremultiplied, so a transparent pixel
// keeps its stored color.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	switch src := img.(type) {
	case *image.Gray:
		out := New(w, h, 1)
		for y := 0; y < h; y++ {
			off := (b.Min.Y+y-src.Rect.Min.Y)*src.Stride + (b.Min.X - src.Rect.Min.X)
			copy(out.Pix[y*w:(y+1)*w], src.Pix[off:off+w])
		}
		return out
	case *image.Gray16:
		out := New(w, h, 1)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				out.Pix[y*w+x] = uint8(src.Gray16At(b.Min.X+x, b.Min.Y+y).Y >> 8)
			}
		}
		return out
	case *image.RGBA:
		out := New(w, h, 3)
		FillFromRGBA(out, src)
		return out
	case *image.NRGBA:
		out := New(w, h, 3)
		for y := 0; y < h; y++ {
			row := src.Pix[(b.Min.Y-src.Rect.Min.Y+y)*src.Stride+(b.Min.X-src.Rect.Min.X)*4:]
			dst := out.Pix[y*w*3 : (y+1)*w*3]
			for x := 0; x < w; x++ {
				dst[x*3] = row[x*4+2]
				dst[x*3+1] = row[x*4+1]
				dst[x*3+2] = row[x*4]
			}
		}
		return out
	}
	out := New(w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA64Model.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA64)
			off := (y*w + x) * 3
			out.Pix[off] = uint8(c.B >> 8)
			out.Pix[off+1] = uint8(c.G >> 8)
			out.Pix[off+2] = uint8(c.R >> 8)
		}
	}
	return out
}

// FromImageColor converts img into a 3-channel BGR buffer regardless of the
// source model. Grayscale sources are replicated into all three channels.
func FromImageColor(img image.Image) *Buffer {
	return FromImage(img).BGR()
}

// BGR returns a 3-channel version of b. A single-channel buffer has its
// value copied into each channel; anything else is returned as is.
func (b *Buffer) BGR() *Buffer {
	if b == nil || b.C != 1 {
		return b
	}
	out := New(b.W, b.H, 3)
	for i, v := range b.Pix {
		out.Pix[i*3] = v
		out.Pix[i*3+1] = v
		out.Pix[i*3+2] = v
	}
	return out
}

// FillFromRGBA copies src into dst as BGR. dst must be 3-channel and match
// src dimensions.
func FillFromRGBA(dst *Buffer, src *image.RGBA) error {
	if dst == nil || src == nil {
		return errors.New("pixel: nil buffer")
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if dst.C != 3 || dst.W != w || dst.H != h {
		return errors.New("pixel: dimension mismatch")
	}
	for y := 0; y < h; y++ {
		row := src.Pix[(b.Min.Y-src.Rect.Min.Y+y)*src.Stride+(b.Min.X-src.Rect.Min.X)*4:]
		out := dst.Pix[y*w*3 : (y+1)*w*3]
		for x := 0; x < w; x++ {
			i, j := x*4, x*3
			out[j] = row[i+2]
			out[j+1] = row[i+1]
			out[j+2] = row[i]
		}
	}
	return nil
}

// RGBA renders the buffer as an opaque *image.RGBA, mainly for previews and
// PNG encoding.
func (b *Buffer) RGBA() *image.RGBA {
	if b == nil {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	n := b.W * b.H
	for i := 0; i < n; i++ {
		j := i * 4
		if b.C == 1 {
			v := b.Pix[i]
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = v, v, v
		} else {
			k := i * b.C
			out.Pix[j], out.Pix[j+1], out.Pix[j+2] = b.Pix[k+2], b.Pix[k+1], b.Pix[k]
		}
		out.Pix[j+3] = 0xFF
	}
	return out
}

// At returns the colour at (x, y) for debugging and tests.
func (b *Buffer) At(x, y int) color.RGBA {
	if b == nil || x < 0 || y < 0 || x >= b.W || y >= b.H {
		return color.RGBA{}
	}
	if b.C == 1 {
		v := b.Pix[y*b.W+x]
		return color.RGBA{v, v, v, 0xFF}
	}
	off := (y*b.W + x) * b.C
	return color.RGBA{b.Pix[off+2], b.Pix[off+1], b.Pix[off], 0xFF}
}

// Paste copies src into b with its top-left corner at p, clipping to b.
// Both buffers must have the same channel count.
func (b *Buffer) Paste(src *Buffer, p image.Point) {
	if b == nil || src == nil || b.C != src.C {
		return
	}
	r := image.Rectangle{Min: p, Max: p.Add(image.Pt(src.W, src.H))}.Intersect(b.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		sy := y - p.Y
		sx := r.Min.X - p.X
		copy(b.Pix[(y*b.W+r.Min.X)*b.C:(y*b.W+r.Max.X)*b.C], src.Pix[(sy*src.W+sx)*src.C:])
	}
}

// Image wraps the buffer with the standard library image interfaces by
// converting it. Kept separate from RGBA for callers expecting image.Image.
func (b *Buffer) Image() image.Image {
	if b == nil {
		return nil
	}
	if b.C == 1 {
		g := image.NewGray(image.Rect(0, 0, b.W, b.H))
		copy(g.Pix, b.Pix)
		return g
	}
	return b.RGBA()
}
