// Package target holds the reference images the monitor looks for and the
// live-editable settings attached to each of them.
package target

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/corona10/goimagehash"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

// DefaultThreshold is used when a target's confidence text cannot be used.
const DefaultThreshold = 0.8

// DefaultConfidenceText is what a fresh slot shows.
const DefaultConfidenceText = "0.8"

var (
	// ErrInvalidThreshold is returned for confidence text that does not parse
	// or falls outside [0, 1].
	ErrInvalidThreshold = errors.New("confidence must be a number between 0 and 1")
	// ErrInvalidCooldown is returned for cooldown text that does not parse or
	// is not positive.
	ErrInvalidCooldown = errors.New("cooldown must be a number greater than 0")
)

// Target is one watched reference image. All accessors are safe for
// concurrent use; the reference buffer is swapped wholesale and never
// mutated in place.
type Target struct {
	mu sync.RWMutex

	path        string
	ref         *pixel.Buffer
	preview     image.Image
	fingerprint *goimagehash.ImageHash

	confidence string
	cooldown   string
	enabled    bool
	lastFire   time.Time
}

// New returns an enabled target with no reference and the default
// confidence.
func New() *Target {
	return &Target{confidence: DefaultConfidenceText, enabled: true}
}

// Reference returns the current reference buffer, or nil.
func (t *Target) Reference() *pixel.Buffer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.ref
}

// Path returns the file the reference was loaded from.
func (t *Target) Path() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.path
}

// Preview returns the decoded image the reference was built from, for
// thumbnails.
func (t *Target) Preview() image.Image {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.preview
}

// Fingerprint is the perceptual hash of the reference, or nil.
func (t *Target) Fingerprint() *goimagehash.ImageHash {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.fingerprint
}

// SetReference replaces the reference. A nil img clears it. The fire time
// is reset so a new image may fire immediately.
func (t *Target) SetReference(path string, img image.Image) {
	var (
		ref *pixel.Buffer
		fp  *goimagehash.ImageHash
	)
	if img != nil {
		ref = pixel.FromImageColor(img)
		if h, err := goimagehash.PerceptionHash(img); err == nil {
			fp = h
		}
	}
	t.mu.Lock()
	t.path = path
	t.ref = ref
	t.preview = img
	t.fingerprint = fp
	t.lastFire = time.Time{}
	t.mu.Unlock()
}

// Clear drops the reference.
func (t *Target) Clear() { t.SetReference("", nil) }

func (t *Target) Enabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func (t *Target) SetEnabled(v bool) {
	t.mu.Lock()
	t.enabled = v
	t.mu.Unlock()
}

// Usable reports whether the target is enabled and has a reference.
func (t *Target) Usable() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled && t.ref != nil
}

func (t *Target) ConfidenceText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.confidence
}

func (t *Target) SetConfidenceText(s string) {
	t.mu.Lock()
	t.confidence = s
	t.mu.Unlock()
}

// Threshold parses the confidence text. It fails with ErrInvalidThreshold
// for non-numeric text or values outside [0, 1].
func (t *Target) Threshold() (float64, error) {
	return ParseThreshold(t.ConfidenceText())
}

// ThresholdOrDefault returns the confidence text as typed, without the
// range check. Only text that does not parse falls back to DefaultThreshold,
// so 1.5 never fires and a negative value fires on every score.
func (t *Target) ThresholdOrDefault() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(t.ConfidenceText()), 64)
	if err != nil {
		return DefaultThreshold
	}
	return v
}

// CooldownText is the per-target cooldown override; empty means the global
// cooldown applies.
func (t *Target) CooldownText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cooldown
}

func (t *Target) SetCooldownText(s string) {
	t.mu.Lock()
	t.cooldown = strings.TrimSpace(s)
	t.mu.Unlock()
}

// CooldownOverride returns the per-target cooldown. ok is false when no
// override is set; err is set when one is set but malformed.
func (t *Target) CooldownOverride() (d time.Duration, ok bool, err error) {
	s := t.CooldownText()
	if s == "" {
		return 0, false, nil
	}
	d, err = ParseCooldown(s)
	if err != nil {
		return 0, true, err
	}
	return d, true, nil
}

func (t *Target) LastFire() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastFire
}

// MarkFired records a click at now.
func (t *Target) MarkFired(now time.Time) {
	t.mu.Lock()
	t.lastFire = now
	t.mu.Unlock()
}

// CoolingDown reports whether a click at now would fall inside the
// cooldown window after the last fire.
func (t *Target) CoolingDown(now time.Time, cooldown time.Duration) bool {
	last := t.LastFire()
	return !last.IsZero() && now.Sub(last) < cooldown
}

// ParseThreshold parses confidence text into [0, 1].
func ParseThreshold(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidThreshold, s)
	}
	if v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: %v", ErrInvalidThreshold, v)
	}
	return v, nil
}

// ParseCooldown parses seconds as text into a positive duration.
func ParseCooldown(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCooldown, s)
	}
	if !(v > 0) || v > maxCooldownSeconds {
		return 0, fmt.Errorf("%w: %v", ErrInvalidCooldown, v)
	}
	return time.Duration(v * float64(time.Second)), nil
}

// maxCooldownSeconds keeps the duration conversion from overflowing.
const maxCooldownSeconds = 1e6
