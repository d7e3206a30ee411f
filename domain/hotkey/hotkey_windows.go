package hotkey

import (
	"fmt"
	"runtime"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                 = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

const (
	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000

	wmHotkey = 0x0312
	wmQuit   = 0x0012

	hotkeyID = 1
)

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

func winMods(m Modifier) uintptr {
	out := uintptr(modNoRepeat)
	if m&ModAlt != 0 {
		out |= modAlt
	}
	if m&ModCtrl != 0 {
		out |= modControl
	}
	if m&ModShift != 0 {
		out |= modShift
	}
	if m&ModWin != 0 {
		out |= modWin
	}
	return out
}

// register runs RegisterHotKey and a message loop on a dedicated, locked OS
// thread; hotkey messages are delivered to the registering thread only.
func register(c Combo, fire func()) (func(), error) {
	vk, ok := virtualKey(c.Key)
	if !ok {
		return nil, fmt.Errorf("hotkey: unknown key %q", c.Key)
	}
	ready := make(chan error, 1)
	threadID := make(chan uint32, 1)
	done := make(chan struct{})
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		defer close(done)
		r, _, err := procRegisterHotKey.Call(0, hotkeyID, winMods(c.Mods), uintptr(vk))
		if r == 0 {
			ready <- fmt.Errorf("hotkey: RegisterHotKey %s: %w", c, err)
			return
		}
		defer procUnregisterHotKey.Call(0, hotkeyID)
		threadID <- windows.GetCurrentThreadId()
		ready <- nil
		var m msg
		for {
			ret, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
			if int32(ret) <= 0 {
				return
			}
			if m.message == wmHotkey && m.wParam == hotkeyID {
				fire()
			}
		}
	}()
	if err := <-ready; err != nil {
		return nil, err
	}
	tid := <-threadID
	stop := func() {
		procPostThreadMessageW.Call(uintptr(tid), wmQuit, 0, 0)
		<-done
	}
	return stop, nil
}
