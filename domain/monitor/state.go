// Package monitor runs the polling loop that captures a screen region,
// scores every enabled target against it and clicks qualifying matches,
// plus the controller that owns the loop's lifecycle.
package monitor

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

// State of the monitor.
type State int32

const (
	Idle State = iota
	Polling
	Stopping
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Polling:
		return "polling"
	case Stopping:
		return "stopping"
	default:
		return "unknown"
	}
}

// EventKind classifies an Event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventFired
	EventSizeMismatch
	EventRejected
	EventStopped
)

// Event is reported to listeners. Target is the zero-based slot index for
// per-target events.
type Event struct {
	Kind   EventKind
	Target int
	Point  image.Point
	Score  float64
	Err    error
	At     time.Time
	// Patch is the matched area of the frame for EventFired.
	Patch *pixel.Buffer
}

// String renders the event as a user-facing status line.
func (e Event) String() string {
	switch e.Kind {
	case EventStarted:
		return "monitoring..."
	case EventFired:
		return fmt.Sprintf("target %d clicked at (%d, %d)", e.Target+1, e.Point.X, e.Point.Y)
	case EventSizeMismatch:
		return fmt.Sprintf("target %d is larger than the selected region", e.Target+1)
	case EventRejected:
		return "error: " + errString(e.Err)
	case EventStopped:
		if e.Err != nil {
			return "error: " + errString(e.Err)
		}
		return "stopped"
	}
	return ""
}

func errString(err error) string {
	if err == nil {
		return "unknown"
	}
	return err.Error()
}

// Listener receives events. It may be called from the polling goroutine
// and must not block or call back into the controller synchronously.
type Listener func(Event)

var (
	// ErrNoValidTargets ends a session when no enabled target with a
	// reference remains.
	ErrNoValidTargets = errors.New("no enabled target with a reference image")
	ErrNoRegion       = errors.New("no region selected")
	ErrNoUsableTarget = errors.New("select at least one enabled target image")
	// ErrRunning is returned by operations that require the monitor to be
	// stopped.
	ErrRunning = errors.New("monitor is running")
	// ErrStopping rejects a start while the previous loop is still exiting.
	ErrStopping = errors.New("monitor is still stopping")
	ErrClosed  = errors.New("monitor closed")

	ErrInvalidCooldown  = target.ErrInvalidCooldown
	ErrInvalidThreshold = target.ErrInvalidThreshold
)

// ValidationError reports why monitoring could not start. Target is the
// one-based slot the problem belongs to, or 0.
type ValidationError struct {
	Target int
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Target > 0 {
		return fmt.Sprintf("target %d: %v", e.Target, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }
