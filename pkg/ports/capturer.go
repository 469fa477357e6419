package ports

import "image"

// ScreenCapturer abstracts grabbing pixels from the screen.
type ScreenCapturer interface {
	// NumDisplays returns the number of active displays.
	NumDisplays() int

	// DisplayBounds returns the bounds of display index in virtual-screen coordinates.
	DisplayBounds(index int) (image.Rectangle, error)

	// WindowBounds returns the bounds of the top-level window with the given
	// title and the display scaling ratio of the monitor it is on.
	WindowBounds(title string) (image.Rectangle, float64, error)

	// Capture grabs the pixels inside rect.
	Capture(rect image.Rectangle) (*image.RGBA, error)
}
