package images

import (
	"bytes"
	"image"
	"image/png"

	"golang.org/x/image/draw"
)

// ThumbnailSize is the edge of the square box reference previews fit into.
const ThumbnailSize = 150

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so that the result fits within maxW x maxH preserving
// aspect ratio. Downscaling uses approximate bilinear filtering; if the source
// already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	newW, newH := fitSize(w, h, maxW, maxH)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Thumbnail fits src into a ThumbnailSize square. Small images are scaled up
// with nearest-neighbour so single pixels stay crisp.
func Thumbnail(src image.Image) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil
	}
	newW, newH := fitSize(b.Dx(), b.Dy(), ThumbnailSize, ThumbnailSize)
	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	var s draw.Scaler = draw.ApproxBiLinear
	if newW > b.Dx() {
		s = draw.NearestNeighbor
	}
	s.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func fitSize(w, h, maxW, maxH int) (int, int) {
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	ratio := float64(maxW) / float64(w)
	if r := float64(maxH) / float64(h); r < ratio {
		ratio = r
	}
	newW := int(float64(w)*ratio + 0.5)
	newH := int(float64(h)*ratio + 0.5)
	if newW < 1 {
		newW = 1
	}
	if newH < 1 {
		newH = 1
	}
	return newW, newH
}
