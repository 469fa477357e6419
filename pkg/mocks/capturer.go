package mocks

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/user/framerec/pkg/ports"
)

// ScreenCapturer is a mock implementation of ports.ScreenCapturer.
// By default it exposes a single 1280x720 display and returns gray frames.
type ScreenCapturer struct {
	mu sync.Mutex

	Displays []image.Rectangle

	WindowBoundsFunc func(title string) (image.Rectangle, float64, error)
	CaptureFunc      func(rect image.Rectangle) (*image.RGBA, error)

	// Recorded calls for verification
	CaptureCalls []image.Rectangle
}

// NewScreenCapturer creates a capturer with the given displays.
func NewScreenCapturer(displays ...image.Rectangle) *ScreenCapturer {
	if len(displays) == 0 {
		displays = []image.Rectangle{image.Rect(0, 0, 1280, 720)}
	}
	return &ScreenCapturer{Displays: displays}
}

func (m *ScreenCapturer) NumDisplays() int {
	return len(m.Displays)
}

func (m *ScreenCapturer) DisplayBounds(index int) (image.Rectangle, error) {
	if index < 0 || index >= len(m.Displays) {
		return image.Rectangle{}, fmt.Errorf("display %d out of range", index)
	}
	return m.Displays[index], nil
}

func (m *ScreenCapturer) WindowBounds(title string) (image.Rectangle, float64, error) {
	if m.WindowBoundsFunc != nil {
		return m.WindowBoundsFunc(title)
	}
	return image.Rectangle{}, 0, fmt.Errorf("window %q not found", title)
}

func (m *ScreenCapturer) Capture(rect image.Rectangle) (*image.RGBA, error) {
	m.mu.Lock()
	m.CaptureCalls = append(m.CaptureCalls, rect)
	m.mu.Unlock()
	if m.CaptureFunc != nil {
		return m.CaptureFunc(rect)
	}
	img := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	return img, nil
}

// Captures returns the number of Capture calls.
func (m *ScreenCapturer) Captures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.CaptureCalls)
}

var _ ports.ScreenCapturer = (*ScreenCapturer)(nil)
