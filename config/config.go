package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/capture"
)

// DefaultPath is where the configuration lives when no flag overrides it.
const DefaultPath = "auto_click_config.json"

// ErrAdjusted reports that Validate changed out-of-range values. The config
// is still usable.
var ErrAdjusted = errors.New("config: values adjusted")

// Number is a decimal value kept as text so a half-typed entry survives a
// save. It unmarshals from either a JSON number or a JSON string.
type Number string

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Number(strings.TrimSpace(s))
		return nil
	}
	var f json.Number
	if err := json.Unmarshal(b, &f); err != nil {
		return fmt.Errorf("config: number expected, got %s", b)
	}
	*n = Number(f.String())
	return nil
}

// Float parses the value.
func (n Number) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
}

// TargetConfig is one persisted target slot.
type TargetConfig struct {
	Path       string `json:"path"`
	Confidence Number `json:"confidence"`
	Enabled    *bool  `json:"enabled,omitempty"`
	// Cooldown overrides the global cooldown for this slot when set.
	Cooldown Number `json:"cooldown,omitempty"`
}

// IsEnabled treats a missing flag as enabled.
func (t TargetConfig) IsEnabled() bool { return t.Enabled == nil || *t.Enabled }

// Config holds the persisted region, target slots and runtime settings.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level,omitempty"`

	// Region is [left, top, right, bottom]; empty when nothing is selected.
	Region     []int          `json:"region"`
	MaxTargets int            `json:"max_targets"`
	Targets    []TargetConfig `json:"targets"`
	Cooldown   Number         `json:"cooldown"`

	Hotkey         string `json:"hotkey"`
	PollIntervalMs int    `json:"poll_interval_ms"`
	// TargetDir receives screen areas captured as targets.
	TargetDir string `json:"target_dir"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		LogLevel:       "info",
		Region:         nil,
		MaxTargets:     2,
		Targets:        nil,
		Cooldown:       "1.0",
		Hotkey:         "ctrl+r",
		PollIntervalMs: 100,
		TargetDir:      "target_images",
	}
}

// Validate clamps/normalizes values to safe ranges. Target text fields are
// left untouched; they are validated when monitoring starts. When anything
// was changed the returned error wraps ErrAdjusted and names each field.
func (c *Config) Validate() error {
	var notes []string
	adjust := func(format string, args ...any) { notes = append(notes, fmt.Sprintf(format, args...)) }
	if c.MaxTargets <= 0 {
		adjust("max_targets %d -> 2", c.MaxTargets)
		c.MaxTargets = 2
	}
	if c.MaxTargets > 8 {
		adjust("max_targets %d -> 8", c.MaxTargets)
		c.MaxTargets = 8
	}
	if len(c.Targets) > c.MaxTargets {
		adjust("targets truncated %d -> %d", len(c.Targets), c.MaxTargets)
		c.Targets = c.Targets[:c.MaxTargets]
	}
	if c.PollIntervalMs < 10 {
		adjust("poll_interval_ms %d -> 100", c.PollIntervalMs)
		c.PollIntervalMs = 100
	}
	if strings.TrimSpace(c.Hotkey) == "" {
		adjust("hotkey empty -> ctrl+r")
		c.Hotkey = "ctrl+r"
	}
	if c.TargetDir == "" {
		adjust("target_dir empty -> target_images")
		c.TargetDir = "target_images"
	}
	if c.Cooldown == "" {
		adjust("cooldown empty -> 1.0")
		c.Cooldown = "1.0"
	}
	if len(c.Region) != 0 {
		if _, ok := c.RegionRect(); !ok {
			adjust("region %v dropped", c.Region)
			c.Region = nil
		}
	}
	if len(notes) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAdjusted, strings.Join(notes, "; "))
}

// RegionRect returns the persisted region when it is well formed.
func (c *Config) RegionRect() (capture.Region, bool) {
	if len(c.Region) != 4 {
		return capture.Region{}, false
	}
	r := capture.Region{Left: c.Region[0], Top: c.Region[1], Right: c.Region[2], Bottom: c.Region[3]}
	if r.Validate() != nil {
		return capture.Region{}, false
	}
	return r, true
}

// SetRegion stores r.
func (c *Config) SetRegion(r capture.Region) {
	c.Region = []int{r.Left, r.Top, r.Right, r.Bottom}
}

// PollInterval converts PollIntervalMs.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
// Clamped values are reported with an error wrapping ErrAdjusted next to the usable config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("config: decode %s: %w", path, err)
	}
	// An ErrAdjusted result still returns the clamped config.
	return cfg, cfg.Validate()
}

// Save writes the configuration to the given path in JSON format. The
// file is replaced atomically so a concurrent watcher never reads half of it.
func (c *Config) Save(path string) error {
	// Adjustments are reported on load; here they only keep the file sane.
	_ = c.Validate()
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return err
	}
	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Region = append([]int(nil), c.Region...)
	out.Targets = make([]TargetConfig, len(c.Targets))
	for i, t := range c.Targets {
		out.Targets[i] = t
		if t.Enabled != nil {
			v := *t.Enabled
			out.Targets[i].Enabled = &v
		}
	}
	return &out
}
