package app

import (
	"fmt"

	"github.com/soocke/pixel-clicker-go/config"
)

// Snapshot returns the config with the live region, slots and cooldown
// folded in.
func (c *Container) Snapshot() *config.Config {
	c.mu.Lock()
	cfg := c.cfg.Clone()
	c.mu.Unlock()

	if r, ok := c.Controller.Region(); ok {
		cfg.SetRegion(r)
	}
	cfg.MaxTargets = c.Targets.Len()
	cfg.Cooldown = config.Number(c.Targets.CooldownText())
	cfg.Targets = make([]config.TargetConfig, 0, c.Targets.Len())
	for _, t := range c.Targets.All() {
		enabled := t.Enabled()
		cfg.Targets = append(cfg.Targets, config.TargetConfig{
			Path:       t.Path(),
			Confidence: config.Number(t.ConfidenceText()),
			Enabled:    &enabled,
			Cooldown:   config.Number(t.CooldownText()),
		})
	}
	return cfg
}

// Persist saves the snapshot to the config path.
func (c *Container) Persist() error {
	cfg := c.Snapshot()
	if err := cfg.Save(c.path); err != nil {
		return fmt.Errorf("persist %s: %w", c.path, err)
	}
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
	if c.Logger != nil {
		c.Logger.Debug("config saved", "path", c.path)
	}
	return nil
}
