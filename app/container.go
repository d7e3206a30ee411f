package app

import (
	"log/slog"
	"sync"

	"github.com/soocke/pixel-clicker-go/config"
	"github.com/soocke/pixel-clicker-go/domain/action"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/match"
	"github.com/soocke/pixel-clicker-go/domain/monitor"
	"github.com/soocke/pixel-clicker-go/domain/target"
)

// Container assembles the target slots, platform services and the monitor
// controller from a config, and writes the live settings back.
type Container struct {
	Logger     *slog.Logger
	Targets    *target.Set
	Capturer   capture.Capturer
	Clicker    *action.Clicker
	Controller *monitor.Controller

	path string
	mu   sync.Mutex
	cfg  *config.Config
}

// Options override platform collaborators, mainly for tests.
type Options struct {
	Capturer capture.Capturer
	Click    action.ClickFunc
	Matcher  match.Matcher
}

// BuildContainer constructs all components and applies cfg. Missing target
// images are skipped with a warning.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger, opts Options) *Container {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil && logger != nil {
		logger.Warn("config adjusted", "error", err)
	}
	c := &Container{Logger: logger, path: cfgPath, cfg: cfg.Clone()}
	c.Targets = target.NewSet(cfg.MaxTargets)
	c.Clicker = action.NewClicker(logger)

	c.Capturer = opts.Capturer
	if c.Capturer == nil {
		c.Capturer = capture.NewScreenCapturer(logger)
	}
	click := opts.Click
	if click == nil {
		click = c.Clicker.Click
	}
	matcher := opts.Matcher
	if matcher == nil {
		matcher = match.New()
	}
	c.Controller = monitor.NewController(monitor.Deps{
		Logger:   logger,
		Capturer: c.Capturer,
		Matcher:  matcher,
		Click:    click,
		Targets:  c.Targets,
		Interval: cfg.PollInterval(),
	})
	c.Apply(cfg)
	return c
}

// Config returns a copy of the last applied or persisted config.
func (c *Container) Config() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg.Clone()
}

// Apply copies cfg into the live target slots and region. Slots beyond
// cfg.Targets keep their state. The region is left alone while monitoring.
func (c *Container) Apply(cfg *config.Config) {
	if cfg == nil {
		return
	}
	c.mu.Lock()
	c.cfg = cfg.Clone()
	c.mu.Unlock()

	c.Targets.SetCooldownText(string(cfg.Cooldown))
	for i, t := range c.Targets.All() {
		if i >= len(cfg.Targets) {
			break
		}
		tc := cfg.Targets[i]
		conf := string(tc.Confidence)
		if conf == "" {
			conf = target.DefaultConfidenceText
		}
		t.SetConfidenceText(conf)
		t.SetEnabled(tc.IsEnabled())
		t.SetCooldownText(string(tc.Cooldown))
		switch {
		case tc.Path == t.Path():
		case tc.Path == "":
			t.Clear()
		default:
			if err := t.Load(tc.Path); err != nil {
				if c.Logger != nil {
					c.Logger.Warn("skipping target image", "target", i+1, "path", tc.Path, "error", err)
				}
				t.Clear()
			}
		}
	}
	if r, ok := cfg.RegionRect(); ok {
		if err := c.Controller.SetRegion(r); err != nil && c.Logger != nil {
			c.Logger.Warn("region not applied", "region", r.String(), "error", err)
		}
	}
}

// Close stops monitoring and waits for the loop to exit.
func (c *Container) Close() {
	if c != nil && c.Controller != nil {
		c.Controller.Close()
	}
}
