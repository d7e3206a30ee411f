package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	kscreen "github.com/kbinani/screenshot"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

const captureStatsLogInterval = 5 * time.Second

// ScreenCapturer captures regions of the desktop using the platform backend.
// It keeps lightweight counters and logs them periodically at debug level.
type ScreenCapturer struct {
	logger *slog.Logger

	grab     func(Region) (*pixel.Buffer, error)
	displays func() []image.Rectangle

	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	lastCapture  atomic.Int64
	lastLog      atomic.Int64
}

// NewScreenCapturer returns a capturer backed by the platform grabber.
func NewScreenCapturer(logger *slog.Logger) *ScreenCapturer {
	return &ScreenCapturer{logger: logger, grab: grabRegion, displays: activeDisplays}
}

// Capture grabs r. It fails with *Error when r lies outside every active
// display, when the backend fails, or when the backend returns a frame of
// the wrong size.
func (s *ScreenCapturer) Capture(r Region) (*pixel.Buffer, error) {
	if err := r.Validate(); err != nil {
		return nil, &Error{Region: r, Reason: "invalid region", Err: err}
	}
	if !s.onScreen(r) {
		s.failures.Add(1)
		return nil, &Error{Region: r, Reason: "region is off-screen"}
	}
	start := time.Now()
	buf, err := s.grab(r)
	if err != nil {
		s.failures.Add(1)
		return nil, &Error{Region: r, Reason: "grab failed", Err: err}
	}
	if buf.Empty() {
		s.failures.Add(1)
		return nil, &Error{Region: r, Reason: "no data"}
	}
	if buf.W != r.Width() || buf.H != r.Height() {
		s.failures.Add(1)
		RecycleFrame(buf)
		return nil, &Error{Region: r, Reason: "unexpected frame size"}
	}
	now := time.Now()
	s.captureNanos.Add(uint64(now.Sub(start).Nanoseconds()))
	s.captures.Add(1)
	s.lastCapture.Store(now.UnixNano())
	s.maybeLogStats(now)
	return buf, nil
}

// Release hands a frame back to the pool.
func (s *ScreenCapturer) Release(buf *pixel.Buffer) { RecycleFrame(buf) }

// Stats returns a snapshot of the counters.
func (s *ScreenCapturer) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(total / captures)
	}
	var last time.Time
	if ns := s.lastCapture.Load(); ns != 0 {
		last = time.Unix(0, ns)
	}
	return Stats{Captures: captures, Failures: s.failures.Load(), AvgCapture: avg, LastCapture: last}
}

func (s *ScreenCapturer) onScreen(r Region) bool {
	if s.displays == nil {
		return true
	}
	screens := s.displays()
	if len(screens) == 0 {
		// display enumeration unavailable; let the backend decide
		return true
	}
	rect := r.Rect()
	for _, d := range screens {
		if rect.Overlaps(d) {
			return true
		}
	}
	return false
}

func (s *ScreenCapturer) maybeLogStats(now time.Time) {
	if s.logger == nil {
		return
	}
	last := s.lastLog.Load()
	if last != 0 && now.Sub(time.Unix(0, last)) < captureStatsLogInterval {
		return
	}
	if !s.lastLog.CompareAndSwap(last, now.UnixNano()) {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"failures", stats.Failures,
		"avg_capture", stats.AvgCapture,
	)
}

// activeDisplays lists the bounds of every active monitor in virtual
// screen coordinates.
func activeDisplays() []image.Rectangle {
	n := kscreen.NumActiveDisplays()
	out := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, kscreen.GetDisplayBounds(i))
	}
	return out
}
