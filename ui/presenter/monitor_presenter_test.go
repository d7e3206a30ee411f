package presenter

import (
	"errors"
	"testing"

	"github.com/soocke/pixel-clicker-go/domain/monitor"
)

type mockToggler struct {
	running bool
	toggles int
	err     error
}

func (m *mockToggler) Toggle() error {
	m.toggles++
	if m.err != nil {
		return m.err
	}
	m.running = !m.running
	return nil
}

func (m *mockToggler) Running() bool { return m.running }

type mockMonitorView struct {
	labelCalls, editableCalls int
	lastRunning, lastEditable bool
}

func (v *mockMonitorView) SetToggleLabel(running bool) { v.labelCalls++; v.lastRunning = running }
func (v *mockMonitorView) SetEditable(b bool)          { v.editableCalls++; v.lastEditable = b }

func TestMonitorPresenter_EnableDisable_Idempotent(t *testing.T) {
	ctl := &mockToggler{}
	view := &mockMonitorView{}
	p := NewMonitorPresenter(ctl, view, nil)

	p.Enable()
	if !ctl.running || ctl.toggles != 1 || !view.lastRunning || view.lastEditable || view.editableCalls != 1 {
		t.Fatalf("enable failed: running=%v toggles=%d lastRunning=%v editableCalls=%d lastEditable=%v", ctl.running, ctl.toggles, view.lastRunning, view.editableCalls, view.lastEditable)
	}
	p.Enable()
	if ctl.toggles != 1 {
		t.Fatalf("enable not idempotent: toggles=%d", ctl.toggles)
	}

	p.Disable()
	if ctl.running || ctl.toggles != 2 || view.lastRunning || !view.lastEditable || view.editableCalls != 2 {
		t.Fatalf("disable failed: running=%v toggles=%d lastRunning=%v editableCalls=%d lastEditable=%v", ctl.running, ctl.toggles, view.lastRunning, view.editableCalls, view.lastEditable)
	}
	p.Disable()
	if ctl.toggles != 2 {
		t.Fatalf("disable not idempotent: toggles=%d", ctl.toggles)
	}
}

func TestMonitorPresenter_RejectedStartKeepsStoppedLabel(t *testing.T) {
	ctl := &mockToggler{err: &monitor.ValidationError{Err: monitor.ErrNoRegion}}
	view := &mockMonitorView{}
	p := NewMonitorPresenter(ctl, view, nil)
	p.Toggle()
	if ctl.toggles != 1 || view.lastRunning || !view.lastEditable {
		t.Fatalf("rejected start: toggles=%d lastRunning=%v lastEditable=%v", ctl.toggles, view.lastRunning, view.lastEditable)
	}
}

func TestMonitorPresenter_SyncPicksUpExternalStop(t *testing.T) {
	ctl := &mockToggler{}
	view := &mockMonitorView{}
	p := NewMonitorPresenter(ctl, view, nil)
	p.Toggle()
	calls := view.labelCalls

	p.Sync() // unchanged state does not touch the view
	if view.labelCalls != calls {
		t.Fatalf("sync without change updated the view")
	}

	ctl.running = false // session ended on its own
	p.Sync()
	if view.lastRunning || !view.lastEditable || view.labelCalls != calls+1 {
		t.Fatalf("external stop not reflected: lastRunning=%v lastEditable=%v", view.lastRunning, view.lastEditable)
	}
}

func TestMonitorPresenter_NonValidationErrorStillSyncs(t *testing.T) {
	ctl := &mockToggler{err: errors.New("closed")}
	view := &mockMonitorView{}
	p := NewMonitorPresenter(ctl, view, nil)
	p.Toggle()
	if view.labelCalls != 1 || view.lastRunning {
		t.Fatalf("expected one stopped label update, got calls=%d running=%v", view.labelCalls, view.lastRunning)
	}
}
