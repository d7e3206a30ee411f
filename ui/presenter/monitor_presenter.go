package presenter

import (
	"errors"
	"log/slog"

	"github.com/soocke/pixel-clicker-go/domain/monitor"
)

// Toggler narrows what the presenter needs from the monitor controller.
type Toggler interface {
	Toggle() error
	Running() bool
}

// MonitorView updates UI elements affected by starting and stopping.
// Status text is owned by StatusPresenter.
type MonitorView interface {
	SetToggleLabel(running bool)
	SetEditable(bool)
}

// MonitorPresenter owns presentation logic for the start/stop control.
type MonitorPresenter struct {
	ctl    Toggler
	view   MonitorView
	logger *slog.Logger

	synced  bool
	running bool // last state reflected in the view
}

func NewMonitorPresenter(ctl Toggler, view MonitorView, logger *slog.Logger) *MonitorPresenter {
	return &MonitorPresenter{ctl: ctl, view: view, logger: logger}
}

// Enable starts monitoring. Idempotent.
func (p *MonitorPresenter) Enable() {
	if p == nil || p.ctl == nil || p.view == nil {
		return
	}
	if p.ctl.Running() { // already running
		return
	}
	p.toggle()
}

// Disable stops monitoring. Idempotent.
func (p *MonitorPresenter) Disable() {
	if p == nil || p.ctl == nil || p.view == nil {
		return
	}
	if !p.ctl.Running() { // already stopped
		return
	}
	p.toggle()
}

// Toggle flips the monitoring state.
func (p *MonitorPresenter) Toggle() {
	if p == nil || p.ctl == nil || p.view == nil {
		return
	}
	p.toggle()
}

func (p *MonitorPresenter) toggle() {
	if err := p.ctl.Toggle(); err != nil {
		// Rejections reach the status line through the controller events.
		var ve *monitor.ValidationError
		if !errors.As(err, &ve) && p.logger != nil {
			p.logger.Error("toggle", "error", err)
		}
	}
	p.Sync()
}

// Sync reflects the controller state in the view. A session that ends on
// its own (error, no targets left) is picked up on the next tick.
func (p *MonitorPresenter) Sync() {
	if p == nil || p.ctl == nil || p.view == nil {
		return
	}
	running := p.ctl.Running()
	if p.synced && running == p.running {
		return
	}
	p.synced, p.running = true, running
	p.view.SetToggleLabel(running)
	p.view.SetEditable(!running)
}
