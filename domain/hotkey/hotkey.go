// Package hotkey parses key combinations such as "ctrl+r" and delivers
// system-wide notifications when they are pressed.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupported is returned by Start on platforms without a global
// hotkey backend.
var ErrUnsupported = errors.New("hotkey: global hotkeys not supported on this platform")

// Modifier is a bit set of modifier keys.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModShift
	ModWin
)

// Combo is a set of modifiers plus one key. Key is an upper-case letter,
// digit, or F1..F12.
type Combo struct {
	Mods Modifier
	Key  string
}

// Parse reads combinations such as "ctrl+r", "Ctrl+Shift+F5" or "alt+1".
func Parse(s string) (Combo, error) {
	var c Combo
	parts := strings.Split(strings.TrimSpace(s), "+")
	for i, p := range parts {
		tok := strings.ToLower(strings.TrimSpace(p))
		if tok == "" {
			return Combo{}, fmt.Errorf("hotkey: empty key in %q", s)
		}
		if i < len(parts)-1 {
			switch tok {
			case "ctrl", "control":
				c.Mods |= ModCtrl
			case "alt":
				c.Mods |= ModAlt
			case "shift":
				c.Mods |= ModShift
			case "win", "super", "cmd":
				c.Mods |= ModWin
			default:
				return Combo{}, fmt.Errorf("hotkey: unknown modifier %q in %q", tok, s)
			}
			continue
		}
		key := strings.ToUpper(tok)
		if _, ok := virtualKey(key); !ok {
			return Combo{}, fmt.Errorf("hotkey: unknown key %q in %q", tok, s)
		}
		c.Key = key
	}
	return c, nil
}

// String renders the combo in the form Parse accepts.
func (c Combo) String() string {
	var parts []string
	if c.Mods&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if c.Mods&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if c.Mods&ModShift != 0 {
		parts = append(parts, "shift")
	}
	if c.Mods&ModWin != 0 {
		parts = append(parts, "win")
	}
	parts = append(parts, strings.ToLower(c.Key))
	return strings.Join(parts, "+")
}

// TkSequence returns the Tk event pattern for the combo, e.g. "<Control-r>".
func (c Combo) TkSequence() string {
	var b strings.Builder
	b.WriteByte('<')
	if c.Mods&ModCtrl != 0 {
		b.WriteString("Control-")
	}
	if c.Mods&ModAlt != 0 {
		b.WriteString("Alt-")
	}
	if c.Mods&ModShift != 0 {
		b.WriteString("Shift-")
	}
	key := c.Key
	switch {
	case len(key) == 1 && key[0] >= 'A' && key[0] <= 'Z':
		if c.Mods&ModShift == 0 {
			key = strings.ToLower(key)
		}
		b.WriteString("KeyPress-")
	case len(key) == 1:
		b.WriteString("Key-")
	}
	b.WriteString(key)
	b.WriteByte('>')
	return b.String()
}

// virtualKey maps a key token onto its Windows virtual-key code. Letters
// and digits share their ASCII code; F1..F12 start at 0x70.
func virtualKey(k string) (uint32, bool) {
	if len(k) == 1 {
		switch {
		case k[0] >= 'A' && k[0] <= 'Z', k[0] >= '0' && k[0] <= '9':
			return uint32(k[0]), true
		}
		return 0, false
	}
	if k[0] == 'F' {
		var n int
		if _, err := fmt.Sscanf(k[1:], "%d", &n); err == nil && n >= 1 && n <= 12 && fmt.Sprint(n) == k[1:] {
			return uint32(0x70 + n - 1), true
		}
	}
	return 0, false
}
