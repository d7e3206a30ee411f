package presenter

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

// ErrUnsupportedImage rejects files with an extension the loader does not offer.
var ErrUnsupportedImage = errors.New("unsupported image type")

// Persister writes the current settings back to disk.
type Persister interface{ Persist() error }

// TargetView is the per-slot part of the UI.
type TargetView interface {
	SetThumbnail(slot int, img image.Image)
	SetSlotEnabled(slot int, enabled bool)
	SetStatus(text string, isError bool)
}

// TargetPresenter handles slot actions: image selection, screen captures
// saved as references, the enable toggle and threshold/cooldown edits.
type TargetPresenter struct {
	set      *target.Set
	capturer capture.Capturer
	persist  Persister
	view     TargetView
	logger   *slog.Logger
	dir      string
	now      func() time.Time
}

func NewTargetPresenter(set *target.Set, capturer capture.Capturer, persist Persister, view TargetView, dir string, logger *slog.Logger) *TargetPresenter {
	return &TargetPresenter{set: set, capturer: capturer, persist: persist, view: view, dir: dir, logger: logger, now: time.Now}
}

// Refresh pushes every slot's thumbnail and enable state to the view.
func (p *TargetPresenter) Refresh() {
	if p == nil || p.set == nil || p.view == nil {
		return
	}
	for i, t := range p.set.All() {
		p.view.SetThumbnail(i, t.Preview())
		p.view.SetSlotEnabled(i, t.Enabled())
	}
}

// SelectImage loads path into slot.
func (p *TargetPresenter) SelectImage(slot int, path string) error {
	t := p.slot(slot)
	if t == nil {
		return fmt.Errorf("target %d: no such slot", slot+1)
	}
	if path == "" {
		return nil // dialog cancelled
	}
	if !target.Supported(path) {
		err := fmt.Errorf("target %d: %w: %s", slot+1, ErrUnsupportedImage, filepath.Ext(path))
		p.fail(err)
		return err
	}
	if err := t.Load(path); err != nil {
		p.fail(err)
		return err
	}
	if p.logger != nil {
		p.logger.Info("target image loaded", "target", slot+1, "path", path)
	}
	p.view.SetThumbnail(slot, t.Preview())
	p.save()
	return nil
}

// CaptureArea grabs r from the screen, stores it as a PNG under the target
// directory and installs it as the reference for slot.
func (p *TargetPresenter) CaptureArea(slot int, r capture.Region) error {
	t := p.slot(slot)
	if t == nil {
		return fmt.Errorf("target %d: no such slot", slot+1)
	}
	if p.capturer == nil {
		return errors.New("no capturer")
	}
	frame, err := p.capturer.Capture(r)
	if err != nil {
		p.fail(err)
		return err
	}
	img := frame.Image()
	if rel, ok := p.capturer.(capture.Releaser); ok {
		rel.Release(frame)
	}
	path, err := p.writePNG(img)
	if err != nil {
		p.fail(err)
		return err
	}
	t.SetReference(path, img)
	if p.logger != nil {
		p.logger.Info("target captured", "target", slot+1, "region", r.String(), "path", path)
	}
	p.view.SetThumbnail(slot, img)
	p.view.SetStatus(fmt.Sprintf("target %d captured to %s", slot+1, filepath.Base(path)), false)
	p.save()
	return nil
}

func (p *TargetPresenter) writePNG(img image.Image) (string, error) {
	dir := p.dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("target dir: %w", err)
	}
	path := filepath.Join(dir, "target_"+p.now().Format("20060102_150405")+".png")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save target: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("save target: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save target: %w", err)
	}
	return path, nil
}

// ToggleEnabled flips the enable flag of slot and returns the new value.
func (p *TargetPresenter) ToggleEnabled(slot int) bool {
	t := p.slot(slot)
	if t == nil {
		return false
	}
	v := !t.Enabled()
	t.SetEnabled(v)
	p.view.SetSlotEnabled(slot, v)
	p.save()
	return v
}

// Apply stores the edited confidence texts and global cooldown. Values are
// stored as typed even when malformed; the first problem is reported and
// returned so the user sees it before starting.
func (p *TargetPresenter) Apply(confidences []string, cooldown string) error {
	if p == nil || p.set == nil {
		return nil
	}
	var first error
	for i, txt := range confidences {
		t := p.set.At(i)
		if t == nil {
			break
		}
		t.SetConfidenceText(txt)
		if _, err := t.Threshold(); err != nil && first == nil {
			first = fmt.Errorf("target %d: %w", i+1, err)
		}
	}
	p.set.SetCooldownText(cooldown)
	if _, err := p.set.Cooldown(); err != nil && first == nil {
		first = err
	}
	p.save()
	if first != nil {
		p.fail(first)
		return first
	}
	p.view.SetStatus("settings applied", false)
	return nil
}

func (p *TargetPresenter) slot(i int) *target.Target {
	if p == nil || p.set == nil || p.view == nil {
		return nil
	}
	return p.set.At(i)
}

func (p *TargetPresenter) fail(err error) {
	if p.logger != nil {
		p.logger.Warn("target action failed", "error", err)
	}
	p.view.SetStatus("error: "+err.Error(), true)
}

func (p *TargetPresenter) save() {
	if p.persist == nil {
		return
	}
	if err := p.persist.Persist(); err != nil && p.logger != nil {
		p.logger.Error("persist config", "error", err)
	}
}
