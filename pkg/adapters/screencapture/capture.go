// Package screencapture grabs screen pixels with kbinani/screenshot.
// Window lookup is only available on Windows.
package screencapture

import (
	"errors"
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"github.com/user/framerec/pkg/ports"
)

var (
	// ErrNoDisplay is returned when no active display is found.
	ErrNoDisplay = errors.New("screencapture: no active display")

	// ErrWindowNotFound is returned when no top-level window has the requested title.
	ErrWindowNotFound = errors.New("screencapture: window not found")

	// ErrWindowUnsupported is returned by WindowBounds on platforms without window lookup.
	ErrWindowUnsupported = errors.New("screencapture: window capture not supported on this platform")
)

// Capturer implements ports.ScreenCapturer.
type Capturer struct{}

// New creates a new Capturer.
func New() *Capturer {
	return &Capturer{}
}

// NumDisplays returns the number of active displays.
func (c *Capturer) NumDisplays() int {
	return screenshot.NumActiveDisplays()
}

// DisplayBounds returns the bounds of display index.
func (c *Capturer) DisplayBounds(index int) (image.Rectangle, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}, ErrNoDisplay
	}
	if index < 0 || index >= n {
		return image.Rectangle{}, fmt.Errorf("screencapture: display %d out of range (have %d)", index, n)
	}
	return screenshot.GetDisplayBounds(index), nil
}

// WindowBounds returns the on-screen rectangle of the window titled title.
func (c *Capturer) WindowBounds(title string) (image.Rectangle, float64, error) {
	return windowBounds(title)
}

// Capture grabs the pixels inside rect. The returned image origin is (0, 0).
func (c *Capturer) Capture(rect image.Rectangle) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("screencapture: empty capture rect %v", rect)
	}
	img, err := screenshot.CaptureRect(rect)
	if err != nil {
		return nil, fmt.Errorf("screencapture: capture %v: %w", rect, err)
	}
	if img.Rect.Min != (image.Point{}) {
		img.Rect = img.Rect.Sub(img.Rect.Min)
	}
	return img, nil
}

var _ ports.ScreenCapturer = (*Capturer)(nil)
