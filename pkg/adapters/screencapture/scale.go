package screencapture

import "image"

// monitorScale returns the ratio of a monitor's physical width in pixels to
// the width of its logical rectangle. It returns 1 when either is unknown.
func monitorScale(physicalWidth int, logical image.Rectangle) float64 {
	if physicalWidth <= 0 || logical.Dx() <= 0 {
		return 1
	}
	return float64(physicalWidth) / float64(logical.Dx())
}
