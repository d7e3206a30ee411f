package monitor

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/action"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/match"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

// requestQueueSize bounds pending hotkey toggles.
const requestQueueSize = 8

// similarFingerprintDistance is the pHash distance under which two targets
// are reported as near-duplicates at start.
const similarFingerprintDistance = 6

// Deps are the collaborators of the controller and its loops.
type Deps struct {
	Logger   *slog.Logger
	Capturer capture.Capturer
	Matcher  match.Matcher
	Click    action.ClickFunc
	Targets  Targets
	Interval time.Duration
	Now      func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Interval <= 0 {
		d.Interval = DefaultInterval
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Matcher == nil {
		d.Matcher = match.New()
	}
	return d
}

// Controller owns the monitoring session. Start and stop transitions go
// through Toggle under a single mutex; at most one loop goroutine is alive
// at any time.
type Controller struct {
	deps   Deps
	logger *slog.Logger

	mu     sync.Mutex
	region capture.Region
	hasReg bool
	state  State
	cancel context.CancelFunc
	done   chan struct{}
	gen    uint64
	closed bool

	active   atomic.Int32
	requests chan struct{}

	lmu       sync.RWMutex
	listeners []Listener
}

// NewController returns an idle controller.
func NewController(d Deps) *Controller {
	d = d.withDefaults()
	return &Controller{deps: d, logger: d.Logger, requests: make(chan struct{}, requestQueueSize)}
}

// Subscribe registers a listener for lifecycle and match events.
func (c *Controller) Subscribe(l Listener) {
	if l == nil {
		return
	}
	c.lmu.Lock()
	c.listeners = append(c.listeners, l)
	c.lmu.Unlock()
}

func (c *Controller) emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = c.deps.Now()
	}
	c.lmu.RLock()
	ls := append([]Listener(nil), c.listeners...)
	c.lmu.RUnlock()
	for _, l := range ls {
		func() {
			defer func() {
				if r := recover(); r != nil && c.logger != nil {
					c.logger.Error("monitor listener panic", "error", r, "stack", string(debug.Stack()))
				}
			}()
			l(ev)
		}()
	}
}

// SetRegion replaces the watched region. Rejected with ErrRunning while a
// session is polling.
func (c *Controller) SetRegion(r capture.Region) error {
	if err := r.Validate(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Polling {
		return ErrRunning
	}
	c.region, c.hasReg = r, true
	return nil
}

// Region returns the current region and whether one is set.
func (c *Controller) Region() (capture.Region, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.region, c.hasReg
}

// Targets returns the live target parameters.
func (c *Controller) Targets() Targets { return c.deps.Targets }

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Running reports whether a session is polling.
func (c *Controller) Running() bool { return c.State() == Polling }

// ActiveLoops is the number of loop goroutines currently alive.
func (c *Controller) ActiveLoops() int { return int(c.active.Load()) }

// Toggle starts monitoring when idle and stops it when polling. Starting
// validates the preconditions first; on failure it returns a
// *ValidationError and the state stays idle. While the previous loop is
// still exiting Toggle returns ErrStopping without blocking.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	var (
		ev  Event
		err error
	)
	switch {
	case c.closed:
		c.mu.Unlock()
		return ErrClosed
	case c.state == Polling:
		ev = c.stopLocked()
	case c.state == Stopping:
		err = ErrStopping
		ev = Event{Kind: EventRejected, Err: err}
	default:
		ev, err = c.startLocked()
	}
	c.mu.Unlock()
	c.emit(ev)
	return err
}

// Start begins monitoring if idle.
func (c *Controller) Start() error {
	if c.Running() {
		return nil
	}
	return c.Toggle()
}

// Stop ends monitoring if polling. It does not wait for the loop to exit;
// use Wait for that.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != Polling {
		c.mu.Unlock()
		return
	}
	ev := c.stopLocked()
	c.mu.Unlock()
	c.emit(ev)
}

func (c *Controller) startLocked() (Event, error) {
	if err := c.validateLocked(); err != nil {
		if c.logger != nil {
			c.logger.Warn("monitor start rejected", "error", err)
		}
		return Event{Kind: EventRejected, Err: err}, err
	}
	c.warnSimilarTargets()

	ctx, cancel := context.WithCancel(context.Background())
	c.gen++
	gen := c.gen
	done := make(chan struct{})
	c.cancel, c.done, c.state = cancel, done, Polling

	loop := NewLoop(c.deps, c.region, c.emit)
	c.active.Add(1)
	go func() {
		err := loop.Run(ctx)
		c.active.Add(-1)
		close(done)
		c.loopExited(gen, err)
	}()
	if c.logger != nil {
		c.logger.Info("monitor started", "region", c.region.String(), "interval", c.deps.Interval)
	}
	return Event{Kind: EventStarted}, nil
}

func (c *Controller) stopLocked() Event {
	if c.cancel != nil {
		c.cancel()
	}
	c.state = Stopping
	if c.logger != nil {
		c.logger.Info("monitor stopped")
	}
	return Event{Kind: EventStopped}
}

func (c *Controller) loopExited(gen uint64, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	userStopped := c.state == Stopping
	c.state = Idle
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	if userStopped {
		return
	}
	if c.logger != nil {
		c.logger.Error("monitor stopped on error", "error", err)
	}
	c.emit(Event{Kind: EventStopped, Err: err})
}

func (c *Controller) validateLocked() error {
	if !c.hasReg {
		return &ValidationError{Err: ErrNoRegion}
	}
	if c.deps.Targets == nil {
		return &ValidationError{Err: ErrNoUsableTarget}
	}
	all := c.deps.Targets.All()
	usable := false
	for _, t := range all {
		if t.Usable() {
			usable = true
			break
		}
	}
	if !usable {
		return &ValidationError{Err: ErrNoUsableTarget}
	}
	if _, err := c.deps.Targets.Cooldown(); err != nil {
		return &ValidationError{Err: err}
	}
	for i, t := range all {
		if !t.Enabled() {
			continue
		}
		if _, err := t.Threshold(); err != nil {
			return &ValidationError{Target: i + 1, Err: err}
		}
		if _, ok, err := t.CooldownOverride(); ok && err != nil {
			return &ValidationError{Target: i + 1, Err: err}
		}
	}
	return nil
}

func (c *Controller) warnSimilarTargets() {
	set, ok := c.deps.Targets.(interface{ SimilarPairs(int) []target.Pair })
	if !ok || c.logger == nil {
		return
	}
	for _, p := range set.SimilarPairs(similarFingerprintDistance) {
		c.logger.Warn("targets look alike", "target_a", p.A+1, "target_b", p.B+1)
	}
}

// RequestToggle queues a toggle from any goroutine, typically a hotkey
// callback. The foreground context applies it with Pump or by reading
// Requests. A full queue drops the request.
func (c *Controller) RequestToggle() {
	select {
	case c.requests <- struct{}{}:
	default:
		if c.logger != nil {
			c.logger.Warn("toggle request dropped")
		}
	}
}

// Requests exposes queued toggle requests for select loops. Each received
// value should be followed by a call to Toggle.
func (c *Controller) Requests() <-chan struct{} { return c.requests }

// Pump applies every queued toggle request and returns how many were
// handled. Validation failures are reported through listeners.
func (c *Controller) Pump() int {
	n := 0
	for {
		select {
		case <-c.requests:
			n++
			if err := c.Toggle(); err != nil && !isValidation(err) && c.logger != nil {
				c.logger.Error("toggle", "error", err)
			}
		default:
			return n
		}
	}
}

func isValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Wait blocks until the current loop, if any, has exited.
func (c *Controller) Wait() {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Close stops monitoring, waits for the loop and rejects further toggles.
func (c *Controller) Close() {
	c.Stop()
	c.Wait()
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
}
