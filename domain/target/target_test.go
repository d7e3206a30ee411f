package target

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func checker(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{A: 255}
			if (x/cell+y/cell)%2 == 0 {
				c = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNew_Defaults(t *testing.T) {
	tg := New()
	if !tg.Enabled() {
		t.Fatalf("new target should be enabled")
	}
	if tg.ConfidenceText() != DefaultConfidenceText {
		t.Fatalf("unexpected confidence %q", tg.ConfidenceText())
	}
	if tg.Usable() {
		t.Fatalf("target without reference must not be usable")
	}
	if !tg.LastFire().IsZero() {
		t.Fatalf("last fire must start at zero")
	}
}

func TestThreshold_Parsing(t *testing.T) {
	tg := New()
	for _, tc := range []struct {
		text string
		ok   bool
	}{
		{"0.8", true}, {" 1 ", true}, {"0", true}, {"1.1", false}, {"-0.1", false}, {"abc", false}, {"", false},
	} {
		tg.SetConfidenceText(tc.text)
		_, err := tg.Threshold()
		if (err == nil) != tc.ok {
			t.Fatalf("text %q: err=%v want ok=%v", tc.text, err, tc.ok)
		}
		if err != nil && !errors.Is(err, ErrInvalidThreshold) {
			t.Fatalf("text %q: expected ErrInvalidThreshold, got %v", tc.text, err)
		}
	}
	tg.SetConfidenceText("nope")
	if got := tg.ThresholdOrDefault(); got != DefaultThreshold {
		t.Fatalf("expected fallback %v got %v", DefaultThreshold, got)
	}
}

func TestThresholdOrDefault_KeepsOutOfRangeValues(t *testing.T) {
	tg := New()
	for text, want := range map[string]float64{"1.5": 1.5, " -0.2 ": -0.2, "0.9": 0.9, "abc": DefaultThreshold, "": DefaultThreshold} {
		tg.SetConfidenceText(text)
		if got := tg.ThresholdOrDefault(); got != want {
			t.Fatalf("text %q: got %v want %v", text, got, want)
		}
	}
}

func TestParseCooldown(t *testing.T) {
	d, err := ParseCooldown("1.5")
	if err != nil || d != 1500*time.Millisecond {
		t.Fatalf("got %v, %v", d, err)
	}
	for _, bad := range []string{"0", "-1", "x", "NaN"} {
		if _, err := ParseCooldown(bad); !errors.Is(err, ErrInvalidCooldown) {
			t.Fatalf("%q: expected ErrInvalidCooldown, got %v", bad, err)
		}
	}
}

func TestCoolingDown(t *testing.T) {
	tg := New()
	now := time.Now()
	if tg.CoolingDown(now, time.Second) {
		t.Fatalf("zero last fire must never block")
	}
	tg.MarkFired(now)
	if !tg.CoolingDown(now.Add(999*time.Millisecond), time.Second) {
		t.Fatalf("expected cooldown active")
	}
	if tg.CoolingDown(now.Add(time.Second), time.Second) {
		t.Fatalf("cooldown must end after exactly the cooldown")
	}
}

func TestCooldownOverride(t *testing.T) {
	tg := New()
	if _, ok, err := tg.CooldownOverride(); ok || err != nil {
		t.Fatalf("no override expected, ok=%v err=%v", ok, err)
	}
	tg.SetCooldownText("2")
	if d, ok, err := tg.CooldownOverride(); !ok || err != nil || d != 2*time.Second {
		t.Fatalf("unexpected override %v %v %v", d, ok, err)
	}
	tg.SetCooldownText("bad")
	if _, ok, err := tg.CooldownOverride(); !ok || err == nil {
		t.Fatalf("malformed override should report error")
	}
}

func TestSetReference_ResetsFireAndBuildsBuffer(t *testing.T) {
	tg := New()
	tg.MarkFired(time.Now())
	tg.SetReference("a.png", checker(16, 8, 4))
	ref := tg.Reference()
	if ref == nil || ref.W != 16 || ref.H != 8 || ref.C != 3 {
		t.Fatalf("unexpected reference %+v", ref)
	}
	if !tg.LastFire().IsZero() {
		t.Fatalf("new reference should reset last fire")
	}
	if tg.Fingerprint() == nil {
		t.Fatalf("expected fingerprint")
	}
	tg.Clear()
	if tg.Reference() != nil || tg.Path() != "" {
		t.Fatalf("clear should drop the reference")
	}
}

func TestLoad_DecodesPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, checker(10, 10, 2)); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	tg := New()
	if err := tg.Load(path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if tg.Path() != path || tg.Reference() == nil {
		t.Fatalf("reference not installed")
	}
	if err := tg.Load(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSupported(t *testing.T) {
	for _, p := range []string{"a.png", "b.JPG", "c.jpeg", "d.bmp"} {
		if !Supported(p) {
			t.Fatalf("%s should be supported", p)
		}
	}
	if Supported("e.gif") {
		t.Fatalf("gif should not be offered")
	}
}

func TestSet_DefaultsAndSimilarPairs(t *testing.T) {
	s := NewSet(0)
	if s.Len() != DefaultSlots {
		t.Fatalf("expected %d slots, got %d", DefaultSlots, s.Len())
	}
	if d, err := s.Cooldown(); err != nil || d != time.Second {
		t.Fatalf("unexpected default cooldown %v %v", d, err)
	}
	if s.At(5) != nil {
		t.Fatalf("out of range slot should be nil")
	}
	s.At(0).SetReference("a", checker(32, 32, 4))
	s.At(1).SetReference("b", checker(32, 32, 4))
	pairs := s.SimilarPairs(4)
	if len(pairs) != 1 || pairs[0] != (Pair{A: 0, B: 1}) {
		t.Fatalf("expected identical references to pair up, got %v", pairs)
	}
	s.At(1).SetEnabled(false)
	if len(s.SimilarPairs(4)) != 0 {
		t.Fatalf("disabled targets must not pair")
	}
}

func TestSetReference_LoadsAsBGR(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	gray.SetGray(1, 1, color.Gray{Y: 90})
	tg := New()
	tg.SetReference("g.png", gray)
	ref := tg.Reference()
	if ref.C != 3 {
		t.Fatalf("gray reference should load with 3 channels, got %d", ref.C)
	}
	if off := (1*4 + 1) * 3; ref.Pix[off] != 90 || ref.Pix[off+2] != 90 {
		t.Fatalf("unexpected pixel %v", ref.Pix[off:off+3])
	}

	clear := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	clear.SetNRGBA(0, 0, color.NRGBA{R: 200, G: 100, B: 50})
	tg.SetReference("a.png", clear)
	if p := tg.Reference().Pix[:3]; p[0] != 50 || p[1] != 100 || p[2] != 200 {
		t.Fatalf("transparent pixel lost its color: %v", p)
	}
}
