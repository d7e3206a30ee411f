package monitor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/action"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/match"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

// DefaultInterval is the pause between polling cycles.
const DefaultInterval = 100 * time.Millisecond

// Targets exposes the live parameters the loop re-reads every cycle.
type Targets interface {
	All() []*target.Target
	Cooldown() (time.Duration, error)
}

// Loop is one monitoring session over a fixed region.
type Loop struct {
	logger   *slog.Logger
	capturer capture.Capturer
	matcher  match.Matcher
	click    action.ClickFunc
	targets  Targets
	region   capture.Region
	interval time.Duration
	now      func() time.Time
	emit     func(Event)

	state atomic.Int32
}

// NewLoop builds a loop over region. Zero interval and nil clock fall back
// to DefaultInterval and time.Now.
func NewLoop(d Deps, region capture.Region, emit func(Event)) *Loop {
	d = d.withDefaults()
	if emit == nil {
		emit = func(Event) {}
	}
	return &Loop{
		logger:   d.Logger,
		capturer: d.Capturer,
		matcher:  d.Matcher,
		click:    d.Click,
		targets:  d.Targets,
		region:   region,
		interval: d.Interval,
		now:      d.Now,
		emit:     emit,
	}
}

func (l *Loop) State() State { return State(l.state.Load()) }

// Run polls until ctx is cancelled or an unrecoverable error occurs. It
// returns nil on cancellation. Cancellation is observed at the top of every
// cycle and right after each sleep.
func (l *Loop) Run(ctx context.Context) (err error) {
	l.state.Store(int32(Polling))
	defer l.state.Store(int32(Idle))
	defer func() {
		if r := recover(); r != nil {
			if l.logger != nil {
				l.logger.Error("monitor loop panic", "error", r, "stack", string(debug.Stack()))
			}
			err = fmt.Errorf("monitor: panic: %v", r)
		}
	}()

	timer := time.NewTimer(l.interval)
	timer.Stop()
	defer timer.Stop()
	for {
		if ctx.Err() != nil {
			l.state.Store(int32(Stopping))
			return nil
		}
		if err := l.cycle(ctx); err != nil {
			return err
		}
		timer.Reset(l.interval)
		select {
		case <-ctx.Done():
			l.state.Store(int32(Stopping))
			return nil
		case <-timer.C:
		}
		if ctx.Err() != nil {
			l.state.Store(int32(Stopping))
			return nil
		}
	}
}

// cycle captures the region once and evaluates every target in index order.
func (l *Loop) cycle(ctx context.Context) error {
	all := l.targets.All()
	usable := 0
	for _, t := range all {
		if t.Usable() {
			usable++
		}
	}
	if usable == 0 {
		return ErrNoValidTargets
	}
	cooldown, err := l.targets.Cooldown()
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}

	frame, err := l.capturer.Capture(l.region)
	if err != nil {
		if !errors.Is(err, capture.ErrCapture) {
			err = &capture.Error{Region: l.region, Reason: "capture", Err: err}
		}
		return err
	}
	if rel, ok := l.capturer.(capture.Releaser); ok {
		defer rel.Release(frame)
	}

	now := l.now()
	for i, t := range all {
		if ctx.Err() != nil {
			return nil
		}
		if !t.Enabled() {
			continue
		}
		ref := t.Reference()
		if ref == nil {
			continue
		}
		if t.CoolingDown(now, l.cooldownFor(i, t, cooldown)) {
			continue
		}
		if err := match.CheckSize(frame, ref); err != nil {
			if errors.Is(err, match.ErrSizeMismatch) {
				l.emit(Event{Kind: EventSizeMismatch, Target: i, Err: err, At: now})
				continue
			}
			return fmt.Errorf("monitor: target %d: %w", i+1, err)
		}
		threshold := t.ThresholdOrDefault()
		res, err := l.matcher.Score(frame, ref)
		if err != nil {
			if errors.Is(err, match.ErrSizeMismatch) {
				l.emit(Event{Kind: EventSizeMismatch, Target: i, Err: err, At: now})
				continue
			}
			return fmt.Errorf("monitor: target %d: %w", i+1, err)
		}
		if res.Score < threshold {
			continue
		}
		pt := match.ClickPoint(res.Loc, ref, l.region.Min())
		if err := l.click(pt.X, pt.Y); err != nil {
			return fmt.Errorf("monitor: click target %d: %w", i+1, err)
		}
		t.MarkFired(now)
		if l.logger != nil {
			l.logger.Info("target clicked", "target", i+1, "x", pt.X, "y", pt.Y, "score", res.Score)
		}
		patch, _ := frame.Crop(image.Rectangle{Min: res.Loc, Max: res.Loc.Add(image.Pt(ref.W, ref.H))})
		l.emit(Event{Kind: EventFired, Target: i, Point: pt, Score: res.Score, At: now, Patch: patch})
	}
	return nil
}

// cooldownFor applies a per-target override when one is set. A malformed
// override falls back to the global cooldown.
func (l *Loop) cooldownFor(i int, t *target.Target, global time.Duration) time.Duration {
	d, ok, err := t.CooldownOverride()
	if !ok {
		return global
	}
	if err != nil {
		if l.logger != nil {
			l.logger.Warn("ignoring target cooldown", "target", i+1, "error", err)
		}
		return global
	}
	return d
}
