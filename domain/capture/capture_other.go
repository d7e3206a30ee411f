//go:build !windows

package capture

import (
	"fmt"

	"github.com/vova616/screenshot"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// grabRegion captures r with the X11 backend and converts it into a pooled
// BGR buffer.
func grabRegion(r Region) (*pixel.Buffer, error) {
	img, err := screenshot.CaptureRect(r.Rect())
	if err != nil {
		return nil, fmt.Errorf("capture: %w", err)
	}
	if img == nil {
		return nil, fmt.Errorf("capture: backend returned no image")
	}
	b := img.Bounds()
	dst := acquireFrame(b.Dx(), b.Dy())
	if err := pixel.FillFromRGBA(dst, img); err != nil {
		RecycleFrame(dst)
		return nil, fmt.Errorf("capture: %w", err)
	}
	return dst, nil
}
