package action

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procSetCursorPos    = user32.NewProc("SetCursorPos")
	procMouseEvent      = user32.NewProc("mouse_event")
	procGetForegroundWn = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW  = user32.NewProc("GetWindowTextW")
)

const (
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
)

// Click moves the cursor with SetCursorPos and sends a left button down/up
// pair through mouse_event.
func Click(x, y int) error {
	if r, _, err := procSetCursorPos.Call(uintptr(int32(x)), uintptr(int32(y))); r == 0 {
		return fmt.Errorf("action: SetCursorPos(%d, %d): %w", x, y, err)
	}
	_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
	time.Sleep(20 * time.Millisecond)
	_, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0)
	return nil
}

// ForegroundWindowTitle returns the title of the current foreground window.
func ForegroundWindowTitle() (string, error) {
	hwnd, _, _ := procGetForegroundWn.Call()
	if hwnd == 0 {
		return "", errors.New("no foreground window")
	}
	const maxChars = 256
	buf := make([]uint16, maxChars)
	r, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return "", nil
	}
	end := int(r)
	for i, v := range buf[:end] {
		if v == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(utf16.Decode(buf[:end]))), nil
}
