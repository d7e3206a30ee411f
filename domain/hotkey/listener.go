package hotkey

import (
	"log/slog"
	"runtime/debug"
	"sync"
)

// Listener calls onPress every time the combo is pressed anywhere on the
// desktop. onPress runs on the listener's own goroutine and must not block.
type Listener struct {
	combo   Combo
	logger  *slog.Logger
	onPress func()

	mu      sync.Mutex
	running bool
	stop    func()
}

// New returns an idle listener.
func New(combo Combo, logger *slog.Logger, onPress func()) *Listener {
	return &Listener{combo: combo, logger: logger, onPress: onPress}
}

func (l *Listener) Combo() Combo { return l.combo }

// Start registers the combo with the system. Returns ErrUnsupported where
// no backend exists. Starting a running listener is a no-op.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return nil
	}
	stop, err := register(l.combo, l.fire)
	if err != nil {
		return err
	}
	l.stop = stop
	l.running = true
	if l.logger != nil {
		l.logger.Info("hotkey registered", "combo", l.combo.String())
	}
	return nil
}

// Stop unregisters the combo. Idempotent.
func (l *Listener) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	if l.stop != nil {
		l.stop()
		l.stop = nil
	}
}

func (l *Listener) fire() {
	defer func() {
		if r := recover(); r != nil && l.logger != nil {
			l.logger.Error("hotkey callback panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	if l.onPress != nil {
		l.onPress()
	}
}
