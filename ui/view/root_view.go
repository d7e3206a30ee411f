package view

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/pixel-clicker-go/domain/target"
	"github.com/soocke/pixel-clicker-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootHandlers are invoked on top-level user actions.
type RootHandlers struct {
	OnToggle       func()
	OnSelectRegion func()
	OnExit         func()
	Targets        TargetHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and implements the view contracts of the presenters.
type RootView struct {
	set    *target.Set
	logger *slog.Logger

	// Subviews
	Session SessionStats
	Targets TargetPanel
	Hit     HitPreview
	Overlay SelectionOverlay

	// Widgets
	StatusLabel *TLabelWidget
	RegionLabel *LabelWidget
	toggleBtn   *TButtonWidget
	regionBtn   *ButtonWidget
}

func NewRootView(set *target.Set, logger *slog.Logger) *RootView {
	return &RootView{set: set, logger: logger}
}

// Build constructs the layout.
func (rv *RootView) Build(h RootHandlers) {
	if rv == nil {
		return
	}
	// Row 0: status, region and controls
	top := Frame()
	Grid(top, Row(0), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.StatusLabel = TLabel(Txt("stopped"), Style(theme.StyleStatusLabel), Width(40))
	Grid(rv.StatusLabel, In(top), Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	rv.RegionLabel = Label(Txt("no region selected"), Anchor("w"))
	Grid(rv.RegionLabel, In(top), Row(1), Column(0), Columnspan(2), Sticky("w"), Padx("0.3m"))

	btnFrame := Frame()
	Grid(btnFrame, In(top), Row(0), Column(2), Rowspan(2), Sticky("ne"), Padx("0.3m"))
	rv.toggleBtn = TButton(Txt("Start"), Style(theme.ToggleStyle(false)), Command(h.OnToggle))
	Grid(rv.toggleBtn, In(btnFrame), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	rv.regionBtn = Button(Txt("Select Region"), Command(h.OnSelectRegion))
	Grid(rv.regionBtn, In(btnFrame), Row(1), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	exitBtn := Button(Txt("Exit"), Command(h.OnExit))
	Grid(exitBtn, In(btnFrame), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

	// Row 1: session stats and last hit
	stats := Frame()
	Grid(stats, Row(1), Column(0), Sticky("we"), Padx("0.4m"))
	rv.Session = NewSessionStats(stats, 0, 0)
	rv.Hit = NewHitPreview(stats, 1, 0)

	// Row 2: target slots and settings
	slots := Frame()
	Grid(slots, Row(2), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	rv.Targets = NewTargetPanel(rv.set, h.Targets)
	rv.Targets.Build(slots, 0)

	rv.Overlay = NewSelectionOverlay(rv.logger)
}

// SetStatus shows a status line; errors use the error style.
func (rv *RootView) SetStatus(text string, isError bool) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text), Style(theme.StatusStyle(isError)))
	}
}

// SetRegionLabel shows the selected region.
func (rv *RootView) SetRegionLabel(text string) {
	if rv != nil && rv.RegionLabel != nil {
		rv.RegionLabel.Configure(Txt("Region: " + text))
	}
}

// SetToggleLabel switches the start/stop control.
func (rv *RootView) SetToggleLabel(running bool) {
	if rv == nil || rv.toggleBtn == nil {
		return
	}
	label := "Start"
	if running {
		label = "Stop"
	}
	rv.toggleBtn.Configure(Txt(label), Style(theme.ToggleStyle(running)))
}

// SetEditable locks region and capture controls while monitoring.
func (rv *RootView) SetEditable(enabled bool) {
	if rv == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	if rv.regionBtn != nil {
		rv.regionBtn.Configure(State(state))
	}
	if rv.Targets != nil {
		rv.Targets.SetEditable(enabled)
	}
}

// UpdateHit proxies to the hit preview.
func (rv *RootView) UpdateHit(img image.Image) {
	if rv != nil && rv.Hit != nil {
		rv.Hit.UpdateHit(img)
	}
}

// SetSession updates both session and total durations.
func (rv *RootView) SetSession(session, total time.Duration) {
	if rv == nil || rv.Session == nil {
		return
	}
	rv.Session.SetSession(session)
	rv.Session.SetTotal(total)
}

func (rv *RootView) SetClicks(session, total int) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetClicks(session, total)
	}
}

func (rv *RootView) SetThumbnail(slot int, img image.Image) {
	if rv != nil && rv.Targets != nil {
		rv.Targets.SetThumbnail(slot, img)
	}
}

func (rv *RootView) SetSlotEnabled(slot int, enabled bool) {
	if rv != nil && rv.Targets != nil {
		rv.Targets.SetSlotEnabled(slot, enabled)
	}
}

// TargetValues returns the edited confidence texts and cooldown.
func (rv *RootView) TargetValues() ([]string, string) {
	if rv == nil || rv.Targets == nil {
		return nil, ""
	}
	return rv.Targets.Values()
}

// AskImagePath opens a file dialog for slot and returns the chosen path,
// or "" when cancelled.
func (rv *RootView) AskImagePath(slot int) string {
	files := GetOpenFile(
		Title(fmt.Sprintf("Select image for target %d", slot+1)),
		Filetypes([]FileType{
			{TypeName: "Images", Extensions: target.SupportedExtensions},
			{TypeName: "All files", Extensions: []string{"*"}},
		}),
	)
	if len(files) == 0 {
		return ""
	}
	return files[0]
}
