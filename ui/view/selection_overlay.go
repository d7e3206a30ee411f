package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	kscreen "github.com/kbinani/screenshot"

	"github.com/soocke/pixel-clicker-go/domain/capture"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// SelectionOverlay is a translucent, resizable window the user drags over
// the area to watch or to capture as a target.
type SelectionOverlay interface {
	// Open shows the overlay; onConfirm receives the covered screen region.
	Open(title string, onConfirm func(capture.Region))
	Close()
}

type selectionOverlay struct {
	logger    *slog.Logger
	win       *ToplevelWidget
	onConfirm func(capture.Region)
}

// NewSelectionOverlay creates a new overlay manager.
func NewSelectionOverlay(logger *slog.Logger) SelectionOverlay {
	return &selectionOverlay{logger: logger}
}

const overlayKey = "#008080"

func (v *selectionOverlay) Open(title string, onConfirm func(capture.Region)) {
	v.onConfirm = onConfirm
	if v.win != nil {
		v.win.WmTitle(title)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background(overlayKey))
	win.WmTitle(title)
	v.win = win
	screen := primaryScreen()
	initW, initH := max(screen.Dx()/3, 1), max(screen.Dy()/3, 1)
	x := screen.Min.X + (screen.Dx()-initW)/2
	y := screen.Min.Y + (screen.Dy()-initH)/2
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", initW, initH, x, y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", overlayKey)
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background(overlayKey))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.Close))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.Close))
}

func (v *selectionOverlay) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	rect, ok := parseGeometrySel(geom)
	cb := v.onConfirm
	v.Close()
	if !ok {
		if v.logger != nil {
			v.logger.Warn("unreadable overlay geometry", "geometry", geom)
		}
		return
	}
	if cb != nil {
		cb(capture.RegionFromRect(rect))
	}
}

func (v *selectionOverlay) Close() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// primaryScreen returns the bounds of display 0, or 1920x1080 when no
// display can be enumerated.
func primaryScreen() image.Rectangle {
	if kscreen.NumActiveDisplays() > 0 {
		if b := kscreen.GetDisplayBounds(0); !b.Empty() {
			return b
		}
	}
	return image.Rect(0, 0, 1920, 1080)
}

// geomReSel matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var geomReSel = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parseGeometrySel parses a Tk geometry string and returns the corresponding rectangle.
func parseGeometrySel(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := geomReSel.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
