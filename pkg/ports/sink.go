package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSessionJSON saves the session parameters and computed layout.
	SaveSessionJSON(data []byte) error

	// SaveRawFrame saves a frame as captured from the screen.
	SaveRawFrame(index int, img image.Image) error

	// SaveComposedFrame saves a frame after padding and scaling.
	SaveComposedFrame(index int, img image.Image) error
}
