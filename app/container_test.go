package app

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/soocke/pixel-clicker-go/config"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

// pattern returns a w x h image with enough texture for correlation.
func pattern(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := img.PixOffset(x, y)
			img.Pix[off] = uint8((x*37 + y*11) % 251)
			img.Pix[off+1] = uint8((x*5 + y*53) % 241)
			img.Pix[off+2] = uint8((x*x + y*7) % 239)
			img.Pix[off+3] = 0xFF
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

type fakeCapturer struct {
	frame *pixel.Buffer
}

func (f *fakeCapturer) Capture(r capture.Region) (*pixel.Buffer, error) { return f.frame.Clone(), nil }

type clickRecorder struct {
	mu     sync.Mutex
	points []image.Point
}

func (c *clickRecorder) Click(x, y int) error {
	c.mu.Lock()
	c.points = append(c.points, image.Pt(x, y))
	c.mu.Unlock()
	return nil
}

func (c *clickRecorder) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

func testConfig(dir string) *config.Config {
	yes, no := true, false
	cfg := config.DefaultConfig()
	cfg.Region = []int{100, 200, 300, 400}
	cfg.Cooldown = "30"
	cfg.Targets = []config.TargetConfig{
		{Path: filepath.Join(dir, "ref.png"), Confidence: "0.9", Enabled: &yes},
		{Path: filepath.Join(dir, "missing.png"), Confidence: "0.7", Enabled: &no},
	}
	return cfg
}

func TestBuildContainer_AppliesConfig(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "ref.png"), pattern(20, 16))

	c := BuildContainer(testConfig(dir), filepath.Join(dir, "cfg.json"), discardLogger(), Options{Capturer: &fakeCapturer{}})
	defer c.Close()

	r, ok := c.Controller.Region()
	if !ok || r != (capture.Region{Left: 100, Top: 200, Right: 300, Bottom: 400}) {
		t.Fatalf("region not applied: %v ok=%v", r, ok)
	}
	if c.Targets.Len() != 2 {
		t.Fatalf("expected 2 slots, got %d", c.Targets.Len())
	}
	t0, t1 := c.Targets.At(0), c.Targets.At(1)
	if t0.Reference() == nil || t0.ConfidenceText() != "0.9" || !t0.Enabled() {
		t.Fatalf("slot 1 not loaded")
	}
	if t1.Reference() != nil || t1.Enabled() || t1.ConfidenceText() != "0.7" {
		t.Fatalf("slot 2 should keep settings but skip the missing image")
	}
	if d, err := c.Targets.Cooldown(); err != nil || d != 30*time.Second {
		t.Fatalf("cooldown = %v, %v", d, err)
	}
}

func TestPersist_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "cfg.json")
	writePNG(t, filepath.Join(dir, "ref.png"), pattern(20, 16))

	c := BuildContainer(testConfig(dir), cfgPath, discardLogger(), Options{Capturer: &fakeCapturer{}})
	defer c.Close()
	c.Targets.At(0).SetConfidenceText("0.85")
	c.Targets.SetCooldownText("2.5")
	if err := c.Controller.SetRegion(capture.RegionFromPoints(0, 0, 50, 60)); err != nil {
		t.Fatal(err)
	}
	if err := c.Persist(); err != nil {
		t.Fatalf("persist: %v", err)
	}

	got, err := config.Load(cfgPath)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Cooldown != "2.5" || len(got.Targets) != 2 || got.Targets[0].Confidence != "0.85" {
		t.Fatalf("unexpected persisted config %+v", got)
	}
	if got.Targets[1].IsEnabled() {
		t.Fatalf("disabled flag lost")
	}
	if r, ok := got.RegionRect(); !ok || r.Right != 50 || r.Bottom != 60 {
		t.Fatalf("region not persisted: %v", got.Region)
	}
}

func TestContainer_MonitorsAndClicks(t *testing.T) {
	dir := t.TempDir()
	ref := pattern(20, 16)
	writePNG(t, filepath.Join(dir, "ref.png"), ref)

	// Scene of the region size with the reference pasted at (40, 30).
	scene := pixel.New(200, 200, 3)
	for i := range scene.Pix {
		scene.Pix[i] = uint8((i * 7919) % 256)
	}
	scene.Paste(pixel.FromImage(ref), image.Pt(40, 30))

	rec := &clickRecorder{}
	cfg := testConfig(dir)
	cfg.PollIntervalMs = 10
	c := BuildContainer(cfg, filepath.Join(dir, "cfg.json"), discardLogger(), Options{
		Capturer: &fakeCapturer{frame: scene},
		Click:    rec.Click,
	})
	defer c.Close()

	if err := c.Controller.Toggle(); err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	c.Controller.Stop()
	c.Controller.Wait()

	if rec.count() != 1 {
		t.Fatalf("expected exactly one click within the cooldown, got %d", rec.count())
	}
	want := image.Pt(100+40+10, 200+30+8)
	if rec.points[0] != want {
		t.Fatalf("clicked %v, want %v", rec.points[0], want)
	}
}

func TestBuildContainer_WarnsOnAdjustedConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := config.DefaultConfig()
	cfg.MaxTargets = 20
	c := BuildContainer(cfg, filepath.Join(t.TempDir(), "cfg.json"), logger, Options{
		Capturer: &fakeCapturer{frame: pixel.New(10, 10, 3)},
		Click:    (&clickRecorder{}).Click,
	})
	defer c.Close()
	if c.Targets.Len() != 8 {
		t.Fatalf("expected 8 slots after clamping, got %d", c.Targets.Len())
	}
	out := buf.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "config adjusted") || !strings.Contains(out, "max_targets 20 -> 8") {
		t.Fatalf("expected adjustment warning, got %q", out)
	}
}
