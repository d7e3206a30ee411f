package view

import (
	"fmt"
	"image"
	"strings"

	"github.com/soocke/pixel-clicker-go/domain/target"
	"github.com/soocke/pixel-clicker-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// TargetHandlers are invoked on slot actions. slot is zero-based.
type TargetHandlers struct {
	OnSelect  func(slot int)
	OnCapture func(slot int)
	OnToggle  func(slot int)
	OnApply   func()
}

// TargetPanel owns the per-slot widgets and the global cooldown field.
type TargetPanel interface {
	Build(parent *FrameWidget, startRow int) (endRow int)
	SetThumbnail(slot int, img image.Image)
	SetSlotEnabled(slot int, enabled bool)
	SetEditable(enabled bool)
	Values() (confidences []string, cooldown string)
}

type slotWidgets struct {
	thumb      *LabelWidget
	photo      *Img
	toggleBtn  *ButtonWidget
	captureBtn *ButtonWidget
	confidence *TextWidget
}

type targetPanel struct {
	set      *target.Set
	handlers TargetHandlers
	slots    []slotWidgets
	cooldown *TextWidget
	applyBtn *ButtonWidget
}

// NewTargetPanel creates the view bound to the slots of set.
func NewTargetPanel(set *target.Set, h TargetHandlers) TargetPanel {
	return &targetPanel{set: set, handlers: h}
}

func (v *targetPanel) Build(parent *FrameWidget, startRow int) (row int) {
	row = startRow
	n := v.set.Len()
	v.slots = make([]slotWidgets, n)
	for i := 0; i < n; i++ {
		slot := i
		t := v.set.At(i)
		box := Frame(Borderwidth(1), Relief("groove"))
		Grid(box, In(parent), Row(row), Column(i), Sticky("nwe"), Padx("0.4m"), Pady("0.4m"))

		Grid(Label(Txt(fmt.Sprintf("Target %d", i+1)), Anchor("w")), In(box), Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.3m"))

		sw := &v.slots[i]
		sw.photo = placeholderPhoto(images.ThumbnailSize, images.ThumbnailSize)
		sw.thumb = Label(Image(sw.photo), Borderwidth(1), Relief("sunken"))
		Grid(sw.thumb, In(box), Row(1), Column(0), Columnspan(2), Padx("0.3m"), Pady("0.3m"))

		selectBtn := Button(Txt("Select Image"), Command(func() { call(v.handlers.OnSelect, slot) }))
		Grid(selectBtn, In(box), Row(2), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		sw.captureBtn = Button(Txt("Capture Area"), Command(func() { call(v.handlers.OnCapture, slot) }))
		Grid(sw.captureBtn, In(box), Row(2), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
		sw.toggleBtn = Button(Txt(enabledText(t.Enabled())), Command(func() { call(v.handlers.OnToggle, slot) }))
		Grid(sw.toggleBtn, In(box), Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))

		Grid(Label(Txt("Confidence"), Anchor("w")), In(box), Row(4), Column(0), Sticky("w"), Padx("0.3m"))
		sw.confidence = Text(Height(1), Width(8))
		Grid(sw.confidence, In(box), Row(4), Column(1), Sticky("we"), Padx("0.3m"), Pady("0.15m"))
		sw.confidence.Delete("1.0", END)
		sw.confidence.Insert("1.0", t.ConfidenceText())
	}
	row++

	settings := Frame()
	Grid(settings, In(parent), Row(row), Column(0), Columnspan(max(n, 1)), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	Grid(Label(Txt("Cooldown (s)"), Anchor("w")), In(settings), Row(0), Column(0), Sticky("w"), Padx("0.3m"))
	v.cooldown = Text(Height(1), Width(8))
	Grid(v.cooldown, In(settings), Row(0), Column(1), Sticky("w"), Padx("0.3m"))
	v.cooldown.Delete("1.0", END)
	v.cooldown.Insert("1.0", v.set.CooldownText())
	v.applyBtn = Button(Txt("Apply Settings"), Command(func() {
		if v.handlers.OnApply != nil {
			v.handlers.OnApply()
		}
	}))
	Grid(v.applyBtn, In(settings), Row(0), Column(2), Sticky("we"), Padx("0.3m"))
	row++
	return row
}

func call(f func(int), slot int) {
	if f != nil {
		f(slot)
	}
}

func enabledText(enabled bool) string {
	if enabled {
		return "Enabled"
	}
	return "Disabled"
}

func (v *targetPanel) SetThumbnail(slot int, img image.Image) {
	if slot < 0 || slot >= len(v.slots) {
		return
	}
	sw := &v.slots[slot]
	var p *Img
	if thumb := images.Thumbnail(img); thumb != nil {
		p = NewPhoto(Data(images.EncodePNG(thumb)))
	} else {
		p = placeholderPhoto(images.ThumbnailSize, images.ThumbnailSize)
	}
	if sw.photo != nil {
		sw.photo.Delete()
	}
	sw.photo = p
	sw.thumb.Configure(Image(p))
}

func (v *targetPanel) SetSlotEnabled(slot int, enabled bool) {
	if slot < 0 || slot >= len(v.slots) || v.slots[slot].toggleBtn == nil {
		return
	}
	v.slots[slot].toggleBtn.Configure(Txt(enabledText(enabled)))
}

// SetEditable locks screen captures while monitoring; thresholds, cooldown
// and enable toggles stay live.
func (v *targetPanel) SetEditable(enabled bool) {
	state := "disabled"
	if enabled {
		state = "normal"
	}
	for _, sw := range v.slots {
		if sw.captureBtn != nil {
			sw.captureBtn.Configure(State(state))
		}
	}
}

func textValue(w *TextWidget) string {
	if w == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(w.Get("1.0", END), ""))
}

func (v *targetPanel) Values() ([]string, string) {
	out := make([]string, len(v.slots))
	for i, sw := range v.slots {
		out[i] = textValue(sw.confidence)
	}
	return out, textValue(v.cooldown)
}
