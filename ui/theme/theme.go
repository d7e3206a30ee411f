package theme

// Centralized theming for the clicker UI: palette constants and the ttk
// styles used by the start/stop control and the status line.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, thumbnails
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb" // start button
	ColorDanger    = "#dc2626" // stop button, errors
	ColorAccent    = "#10b981" // monitoring status
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

var (
	light = PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
	dark = PaletteSnapshot{
		AppBg:     "#0f172a",
		Surface:   "#1e293b",
		Border:    "#334155",
		Primary:   "#3b82f6",
		Danger:    "#ef4444",
		Accent:    "#10b981",
		Text:      "#f1f5f9",
		TextMuted: "#94a3b8",
	}
)

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot {
	if darkMode {
		return dark
	}
	return light
}

// style names used with Style(StyleStartButton) etc.
const (
	StyleStartButton = "start.TButton"
	StyleStopButton  = "stop.TButton"
	StyleStatusLabel = "status.TLabel"
	StyleErrorLabel  = "error.TLabel"
	StyleMutedLabel  = "muted.TLabel"
)

// ToggleStyle picks the button style for the start/stop control.
func ToggleStyle(running bool) string {
	if running {
		return StyleStopButton
	}
	return StyleStartButton
}

// StatusStyle picks the label style for a status line.
func StatusStyle(isError bool) string {
	if isError {
		return StyleErrorLabel
	}
	return StyleStatusLabel
}

var darkMode bool

// InitStyles (re)applies styles for the current mode.
func InitStyles() { applyStyles(CurrentPalette()) }

// SetDark switches mode and reapplies styles. Returns new mode value.
func SetDark(d bool) bool {
	darkMode = d
	applyStyles(CurrentPalette())
	return darkMode
}

func IsDark() bool { return darkMode }

func applyStyles(p PaletteSnapshot) {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleStartButton,
		Background(p.Primary),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStopButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("4p 3p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(p.Text),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleErrorLabel,
		Foreground(p.Danger),
		Background(p.Surface),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
	StyleConfigure(StyleMutedLabel,
		Foreground(p.TextMuted),
		Padding("2p 1p"),
	)
}
