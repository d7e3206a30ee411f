package capture

import "github.com/soocke/pixel-clicker-go/domain/pixel"

// Capturer grabs the pixels of a screen region on demand. The returned
// buffer is BGR with exactly region.Width() x region.Height() pixels.
type Capturer interface {
	Capture(r Region) (*pixel.Buffer, error)
}

// Releaser is implemented by capturers that pool their frames. Callers
// that are done with a frame may hand it back.
type Releaser interface {
	Release(buf *pixel.Buffer)
}
