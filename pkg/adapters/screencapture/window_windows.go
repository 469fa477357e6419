//go:build windows

package screencapture

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	monitorDefaultToNearest = 2
	enumCurrentSettings     = 0xFFFFFFFF
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW         = user32.NewProc("FindWindowW")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
	procEnumDisplaySettings = user32.NewProc("EnumDisplaySettingsW")
)

// monitorInfoEx mirrors MONITORINFOEXW.
type monitorInfoEx struct {
	cbSize    uint32
	rcMonitor windows.Rect
	rcWork    windows.Rect
	dwFlags   uint32
	szDevice  [32]uint16
}

// devMode mirrors DEVMODEW with the display-device union member.
type devMode struct {
	dmDeviceName         [32]uint16
	dmSpecVersion        uint16
	dmDriverVersion      uint16
	dmSize               uint16
	dmDriverExtra        uint16
	dmFields             uint32
	dmPositionX          int32
	dmPositionY          int32
	dmDisplayOrientation uint32
	dmDisplayFixedOutput uint32
	dmColor              int16
	dmDuplex             int16
	dmYResolution        int16
	dmTTOption           int16
	dmCollate            int16
	dmFormName           [32]uint16
	dmLogPixels          uint16
	dmBitsPerPel         uint32
	dmPelsWidth          uint32
	dmPelsHeight         uint32
	dmDisplayFlags       uint32
	dmDisplayFrequency   uint32
	dmICMMethod          uint32
	dmICMIntent          uint32
	dmMediaType          uint32
	dmDitherType         uint32
	dmReserved1          uint32
	dmReserved2          uint32
	dmPanningWidth       uint32
	dmPanningHeight      uint32
}

// windowBounds finds a top-level window by title and returns its rectangle
// together with the scaling ratio of the monitor it is on.
func windowBounds(title string) (image.Rectangle, float64, error) {
	name, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return image.Rectangle{}, 0, fmt.Errorf("screencapture: window title: %w", err)
	}

	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(name)))
	if hwnd == 0 {
		return image.Rectangle{}, 0, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}

	var rc windows.Rect
	if r, _, callErr := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&rc))); r == 0 {
		return image.Rectangle{}, 0, fmt.Errorf("screencapture: GetWindowRect: %w", callErr)
	}

	return image.Rect(int(rc.Left), int(rc.Top), int(rc.Right), int(rc.Bottom)), monitorScalingRatio(hwnd), nil
}

// monitorScalingRatio compares the physical width of the window's monitor
// with its logical width. It returns 1 when either cannot be read, since
// that is the unscaled ratio.
func monitorScalingRatio(hwnd uintptr) float64 {
	monitor, _, _ := procMonitorFromWindow.Call(hwnd, monitorDefaultToNearest)
	if monitor == 0 {
		return 1
	}

	info := monitorInfoEx{cbSize: uint32(unsafe.Sizeof(monitorInfoEx{}))}
	if r, _, _ := procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&info))); r == 0 {
		return 1
	}

	mode := devMode{dmSize: uint16(unsafe.Sizeof(devMode{}))}
	r, _, _ := procEnumDisplaySettings.Call(
		uintptr(unsafe.Pointer(&info.szDevice[0])),
		enumCurrentSettings,
		uintptr(unsafe.Pointer(&mode)),
	)
	if r == 0 {
		return 1
	}

	logical := image.Rect(int(info.rcMonitor.Left), int(info.rcMonitor.Top), int(info.rcMonitor.Right), int(info.rcMonitor.Bottom))
	return monitorScale(int(mode.dmPelsWidth), logical)
}
