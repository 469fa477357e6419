//go:build !windows

package screencapture

import "image"

func windowBounds(title string) (image.Rectangle, float64, error) {
	return image.Rectangle{}, 0, ErrWindowUnsupported
}
