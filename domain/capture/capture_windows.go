//go:build windows

package capture

// Windows region capture with per-call GDI objects. Each grab creates a
// temporary top-down DIB, BitBlt's the region into it and converts BGRA to
// packed BGR in a pooled buffer before releasing the GDI resources.

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/soocke/pixel-clicker-go/domain/pixel"
)

const (
	srccopy      = 0x00CC0020
	captureblt   = 0x40000000
	dibRGBColors = 0
	biRgb        = 0
)

var (
	user32                 = syscall.NewLazyDLL("user32.dll")
	gdi32                  = syscall.NewLazyDLL("gdi32.dll")
	kernel32               = syscall.NewLazyDLL("kernel32.dll")
	procGetDC              = user32.NewProc("GetDC")
	procReleaseDC          = user32.NewProc("ReleaseDC")
	procCreateCompatibleDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC           = gdi32.NewProc("DeleteDC")
	procSelectObject       = gdi32.NewProc("SelectObject")
	procBitBlt             = gdi32.NewProc("BitBlt")
	procCreateDIBSection   = gdi32.NewProc("CreateDIBSection")
	procDeleteObject       = gdi32.NewProc("DeleteObject")
	procGetLastError       = kernel32.NewProc("GetLastError")
)

type bitmapInfoHeader struct {
	BiSize          uint32
	BiWidth         int32
	BiHeight        int32
	BiPlanes        uint16
	BiBitCount      uint16
	BiCompression   uint32
	BiSizeImage     uint32
	BiXPelsPerMeter int32
	BiYPelsPerMeter int32
	BiClrUsed       uint32
	BiClrImportant  uint32
}

type bitmapInfo struct {
	Header bitmapInfoHeader
	_      [4]byte // one RGBQUAD placeholder (unused for 32-bit)
}

// grabRegion copies r from the virtual screen into a pooled BGR buffer.
// Coordinates may be negative on multi-monitor setups.
func grabRegion(r Region) (*pixel.Buffer, error) {
	w, h := r.Width(), r.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("capture: invalid rect %s", r)
	}

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("capture: GetDC failed winerr=%d", getLastError())
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompatibleDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("capture: CreateCompatibleDC failed winerr=%d", getLastError())
	}
	defer procDeleteDC.Call(memDC)

	var bi bitmapInfo
	bi.Header.BiSize = uint32(unsafe.Sizeof(bi.Header))
	bi.Header.BiWidth = int32(w)
	bi.Header.BiHeight = -int32(h) // top-down
	bi.Header.BiPlanes = 1
	bi.Header.BiBitCount = 32
	bi.Header.BiCompression = biRgb
	bi.Header.BiSizeImage = uint32(w * h * 4)

	var bitsPtr unsafe.Pointer
	bmp, _, _ := procCreateDIBSection.Call(memDC, uintptr(unsafe.Pointer(&bi)), dibRGBColors, uintptr(unsafe.Pointer(&bitsPtr)), 0, 0)
	if bmp == 0 {
		return nil, fmt.Errorf("capture: CreateDIBSection failed winerr=%d", getLastError())
	}
	defer procDeleteObject.Call(bmp)

	prev, _, _ := procSelectObject.Call(memDC, bmp)
	if prev == 0 || prev == ^uintptr(0) { // failure or GDI_ERROR
		return nil, fmt.Errorf("capture: SelectObject failed winerr=%d", getLastError())
	}
	defer procSelectObject.Call(memDC, prev)

	ok, _, _ := procBitBlt.Call(memDC, 0, 0, uintptr(w), uintptr(h), screenDC,
		uintptr(int32(r.Left)), uintptr(int32(r.Top)), srccopy|captureblt)
	if ok == 0 {
		return nil, fmt.Errorf("capture: BitBlt failed x=%d y=%d w=%d h=%d winerr=%d", r.Left, r.Top, w, h, getLastError())
	}

	pixLen := w * h * 4
	src := unsafe.Slice((*byte)(bitsPtr), pixLen)
	dst := acquireFrame(w, h)
	for i, j := 0, 0; i < pixLen; i, j = i+4, j+3 {
		// DIB rows are already BGR(A); alpha is undefined and dropped.
		dst.Pix[j] = src[i]
		dst.Pix[j+1] = src[i+1]
		dst.Pix[j+2] = src[i+2]
	}
	return dst, nil
}

func getLastError() uint32 {
	v, _, _ := procGetLastError.Call()
	return uint32(v)
}
