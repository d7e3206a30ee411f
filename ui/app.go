// Package ui runs the Tk front end over an app.Container.
package ui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/pixel-clicker-go/app"
	"github.com/soocke/pixel-clicker-go/debug"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/hotkey"
	"github.com/soocke/pixel-clicker-go/ui/model"
	"github.com/soocke/pixel-clicker-go/ui/presenter"
	"github.com/soocke/pixel-clicker-go/ui/theme"
	"github.com/soocke/pixel-clicker-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	tick = 100 * time.Millisecond
	// captureDelay lets the overlay disappear before the area is grabbed.
	captureDelay = 150 * time.Millisecond
)

// Options configure the window.
type Options struct {
	Title  string
	Hotkey string
	Debug  bool
}

type window struct {
	c       *app.Container
	logger  *slog.Logger
	cancel  context.CancelFunc
	afterID string
	hotkey  *hotkey.Listener

	root    *view.RootView
	loop    *presenter.Loop
	monitor *presenter.MonitorPresenter
	targets *presenter.TargetPresenter
	region  *presenter.RegionPresenter
}

// Run builds the UI and blocks in the Tk event loop until the window is
// closed or ctx is done. It must be called from the main goroutine.
func Run(ctx context.Context, c *app.Container, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	w := &window{c: c, logger: c.Logger, cancel: cancel}
	if opts.Title == "" {
		opts.Title = "Auto Clicker"
	}

	theme.InitStyles()
	App.WmTitle(opts.Title)
	WmProtocol(App, "WM_DELETE_WINDOW", w.exit)

	w.root = view.NewRootView(c.Targets, w.logger)
	w.root.Build(view.RootHandlers{
		OnToggle:       func() { w.monitor.Toggle() },
		OnSelectRegion: w.selectRegion,
		OnExit:         w.exit,
		Targets: view.TargetHandlers{
			OnSelect:  func(slot int) { _ = w.targets.SelectImage(slot, w.root.AskImagePath(slot)) },
			OnCapture: w.captureTarget,
			OnToggle:  func(slot int) { w.targets.ToggleEnabled(slot) },
			OnApply: func() {
				conf, cd := w.root.TargetValues()
				_ = w.targets.Apply(conf, cd)
			},
		},
	})

	sess := model.NewSessionModel()
	status := presenter.NewStatusPresenter(w.root, sess, model.NewHitModel())
	c.Controller.Subscribe(status.OnEvent)
	w.monitor = presenter.NewMonitorPresenter(c.Controller, w.root, w.logger)
	w.targets = presenter.NewTargetPresenter(c.Targets, c.Capturer, c, w.root, c.Config().TargetDir, w.logger)
	w.region = presenter.NewRegionPresenter(c.Controller, c, w.root, w.logger)
	w.loop = presenter.NewLoop(c.Controller.Pump, w.monitor, status,
		presenter.NewSessionPresenter(sess, c.Controller, w.root), w.scheduleUpdate)

	w.targets.Refresh()
	w.region.Refresh()
	w.monitor.Sync()
	w.bindHotkey(opts.Hotkey)

	if opts.Debug {
		debug.Start(ctx, w.logger)
	}
	go func() {
		<-ctx.Done()
		// Tk calls must stay on the main goroutine; the next tick exits.
		c.Controller.Stop()
	}()
	w.stopOnDone(ctx)

	w.scheduleUpdate()
	App.Wait()
	return nil
}

func (w *window) stopOnDone(ctx context.Context) {
	prev := w.loop.Schedule
	w.loop.Schedule = func() {
		if ctx.Err() != nil {
			w.exit()
			return
		}
		prev()
	}
}

// bindHotkey registers the global hotkey. Where no global backend exists the
// same combination is bound on the window.
func (w *window) bindHotkey(spec string) {
	combo, err := hotkey.Parse(spec)
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("invalid hotkey", "hotkey", spec, "error", err)
		}
		return
	}
	l := hotkey.New(combo, w.logger, w.c.Controller.RequestToggle)
	if err := l.Start(); err != nil {
		if w.logger != nil {
			w.logger.Warn("global hotkey unavailable, binding to window", "hotkey", combo.String(), "error", err)
		}
		Bind(App, combo.TkSequence(), Command(func() { w.monitor.Toggle() }))
		return
	}
	w.hotkey = l
}

func (w *window) selectRegion() {
	w.root.Overlay.Open("Select Region", func(r capture.Region) {
		_ = w.region.Select(r)
	})
}

func (w *window) captureTarget(slot int) {
	w.root.Overlay.Open(fmt.Sprintf("Capture Target %d", slot+1), func(r capture.Region) {
		TclAfter(captureDelay, func() { _ = w.targets.CaptureArea(slot, r) })
	})
}

func (w *window) scheduleUpdate() {
	// TclAfter keeps the update on Tk's event loop thread.
	w.afterID = TclAfter(tick, w.loop.Tick)
}

func (w *window) exit() {
	if w.afterID != "" {
		TclAfterCancel(w.afterID)
		w.afterID = ""
	}
	if w.hotkey != nil {
		w.hotkey.Stop()
	}
	w.c.Close()
	if err := w.c.Persist(); err != nil && w.logger != nil {
		w.logger.Error("persist config on exit", "error", err)
	}
	w.cancel()
	Destroy(App)
}
