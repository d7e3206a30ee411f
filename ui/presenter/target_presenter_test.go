package presenter

import (
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/pixel"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

type mockTargetView struct {
	thumbs   map[int]image.Image
	enabled  map[int]bool
	statuses []string
	lastErr  bool
}

func newMockTargetView() *mockTargetView {
	return &mockTargetView{thumbs: map[int]image.Image{}, enabled: map[int]bool{}}
}

func (v *mockTargetView) SetThumbnail(slot int, img image.Image) { v.thumbs[slot] = img }
func (v *mockTargetView) SetSlotEnabled(slot int, b bool)        { v.enabled[slot] = b }
func (v *mockTargetView) SetStatus(text string, isError bool) {
	v.statuses = append(v.statuses, text)
	v.lastErr = isError
}

type mockPersister struct{ calls int }

func (m *mockPersister) Persist() error { m.calls++; return nil }

type mockCapturer struct {
	frame   *pixel.Buffer
	err     error
	regions []capture.Region
}

func (m *mockCapturer) Capture(r capture.Region) (*pixel.Buffer, error) {
	m.regions = append(m.regions, r)
	if m.err != nil {
		return nil, m.err
	}
	return m.frame.Clone(), nil
}

func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestTargetPresenter_SelectImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.png")
	writeTestPNG(t, path)

	set := target.NewSet(2)
	view := newMockTargetView()
	per := &mockPersister{}
	p := NewTargetPresenter(set, nil, per, view, dir, nil)

	if err := p.SelectImage(1, path); err != nil {
		t.Fatalf("select: %v", err)
	}
	if set.At(1).Reference() == nil || set.At(1).Path() != path {
		t.Fatalf("slot 2 not loaded")
	}
	if view.thumbs[1] == nil || per.calls != 1 {
		t.Fatalf("thumbnail=%v persist calls=%d", view.thumbs[1] != nil, per.calls)
	}

	// Cancelled dialog is a no-op.
	if err := p.SelectImage(0, ""); err != nil || per.calls != 1 {
		t.Fatalf("cancel should do nothing: err=%v calls=%d", err, per.calls)
	}
}

func TestTargetPresenter_SelectImageRejectsUnsupported(t *testing.T) {
	set := target.NewSet(2)
	view := newMockTargetView()
	p := NewTargetPresenter(set, nil, nil, view, "", nil)
	err := p.SelectImage(0, "notes.txt")
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
	if !view.lastErr || set.At(0).Reference() != nil {
		t.Fatalf("unsupported file should report an error and leave the slot empty")
	}
}

func TestTargetPresenter_CaptureArea(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "target_images")
	frame := pixel.New(10, 5, 3)
	for i := range frame.Pix {
		frame.Pix[i] = uint8(i * 3)
	}
	capr := &mockCapturer{frame: frame}
	set := target.NewSet(2)
	view := newMockTargetView()
	per := &mockPersister{}
	p := NewTargetPresenter(set, capr, per, view, dir, nil)
	p.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC) }

	r := capture.RegionFromPoints(100, 100, 110, 105)
	if err := p.CaptureArea(0, r); err != nil {
		t.Fatalf("capture: %v", err)
	}
	want := filepath.Join(dir, "target_20240309_140507.png")
	if set.At(0).Path() != want {
		t.Fatalf("path = %q, want %q", set.At(0).Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("png not written: %v", err)
	}
	ref := set.At(0).Reference()
	if ref == nil || ref.W != 10 || ref.H != 5 {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if got := ref.At(1, 0); got != frame.At(1, 0) {
		t.Fatalf("reference pixel %v != frame pixel %v", got, frame.At(1, 0))
	}
	if len(capr.regions) != 1 || capr.regions[0] != r || per.calls != 1 {
		t.Fatalf("capture regions=%v persist=%d", capr.regions, per.calls)
	}
}

func TestTargetPresenter_CaptureAreaError(t *testing.T) {
	capr := &mockCapturer{err: &capture.Error{Reason: "off screen"}}
	view := newMockTargetView()
	p := NewTargetPresenter(target.NewSet(2), capr, nil, view, t.TempDir(), nil)
	if err := p.CaptureArea(0, capture.RegionFromPoints(0, 0, 5, 5)); !errors.Is(err, capture.ErrCapture) {
		t.Fatalf("expected capture error, got %v", err)
	}
	if !view.lastErr {
		t.Fatalf("error not shown")
	}
}

func TestTargetPresenter_ToggleAndApply(t *testing.T) {
	set := target.NewSet(2)
	view := newMockTargetView()
	per := &mockPersister{}
	p := NewTargetPresenter(set, nil, per, view, "", nil)

	if p.ToggleEnabled(0) {
		t.Fatalf("slot 1 should start enabled and toggle off")
	}
	if set.At(0).Enabled() || view.enabled[0] {
		t.Fatalf("toggle not applied")
	}

	if err := p.Apply([]string{"0.9", "0.75"}, "2.5"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if v, _ := set.At(1).Threshold(); v != 0.75 {
		t.Fatalf("threshold = %v", v)
	}
	if d, _ := set.Cooldown(); d != 2500*time.Millisecond {
		t.Fatalf("cooldown = %v", d)
	}

	err := p.Apply([]string{"1.5", "0.75"}, "1")
	if !errors.Is(err, target.ErrInvalidThreshold) || !view.lastErr {
		t.Fatalf("expected invalid threshold error, got %v", err)
	}
	if set.At(0).ConfidenceText() != "1.5" {
		t.Fatalf("malformed text should still be stored")
	}
	if per.calls != 3 {
		t.Fatalf("expected 3 persists, got %d", per.calls)
	}
}

