package presenter

import (
	"errors"
	"testing"

	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/monitor"
)

type mockRegionSetter struct {
	r   capture.Region
	ok  bool
	err error
}

func (m *mockRegionSetter) SetRegion(r capture.Region) error {
	if m.err != nil {
		return m.err
	}
	m.r, m.ok = r, true
	return nil
}

func (m *mockRegionSetter) Region() (capture.Region, bool) { return m.r, m.ok }

type mockRegionView struct {
	label   string
	lastErr bool
}

func (v *mockRegionView) SetRegionLabel(s string)    { v.label = s }
func (v *mockRegionView) SetStatus(_ string, e bool) { v.lastErr = e }

func TestRegionPresenter_Select(t *testing.T) {
	ctl := &mockRegionSetter{}
	view := &mockRegionView{}
	per := &mockPersister{}
	p := NewRegionPresenter(ctl, per, view, nil)

	p.Refresh()
	if view.label != "no region selected" {
		t.Fatalf("label = %q", view.label)
	}
	if err := p.Select(capture.RegionFromPoints(10, 20, 110, 220)); err != nil {
		t.Fatalf("select: %v", err)
	}
	if view.label != "(10, 20) -> (110, 220)" || per.calls != 1 {
		t.Fatalf("label=%q persist=%d", view.label, per.calls)
	}
}

func TestRegionPresenter_SelectWhileRunning(t *testing.T) {
	ctl := &mockRegionSetter{err: monitor.ErrRunning}
	view := &mockRegionView{}
	per := &mockPersister{}
	p := NewRegionPresenter(ctl, per, view, nil)
	if err := p.Select(capture.RegionFromPoints(0, 0, 5, 5)); !errors.Is(err, monitor.ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}
	if !view.lastErr || per.calls != 0 {
		t.Fatalf("rejected region should not persist")
	}
}
