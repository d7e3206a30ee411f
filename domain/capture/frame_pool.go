package capture

import (
	"sync"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// Frames for a fixed region all have the same size, so a pool keeps the
// polling loop from allocating a new backing slice every cycle. Consumers
// hand frames back through RecycleFrame once matching is done; frames that
// are never recycled are simply collected.

var framePool sync.Pool // stores *pixel.Buffer

// acquireFrame returns a reusable BGR buffer sized w x h. Pix length is
// exactly w*h*3.
func acquireFrame(w, h int) *pixel.Buffer {
	if w <= 0 || h <= 0 {
		return &pixel.Buffer{C: 3}
	}
	needed := w * h * 3
	var buf *pixel.Buffer
	if v := framePool.Get(); v != nil {
		buf = v.(*pixel.Buffer)
	}
	if buf == nil || cap(buf.Pix) < needed {
		return &pixel.Buffer{W: w, H: h, C: 3, Pix: make([]byte, needed)}
	}
	buf.W, buf.H, buf.C = w, h, 3
	buf.Pix = buf.Pix[:needed]
	return buf
}

// RecycleFrame returns the frame to the pool. The frame must no longer be
// accessed by the caller afterwards.
func RecycleFrame(buf *pixel.Buffer) {
	if buf == nil || buf.Pix == nil {
		return
	}
	framePool.Put(buf)
}
