package ports

import (
	"image"
)

// VideoEncoder abstracts video encoding operations.
type VideoEncoder interface {
	// Begin initializes the encoder with the output dimensions and frame rate.
	Begin(width, height int, fps float64, opts EncoderOptions) error

	// EncodeFrame encodes a single frame at the specified timestamp.
	// img must already have the dimensions passed to Begin.
	EncodeFrame(img image.Image, timestampMs int) error

	// End flushes delayed frames, finalizes the container and returns the
	// encoded file contents.
	End() ([]byte, error)

	// Abort stops encoding and discards everything written so far.
	Abort()
}

// EncoderOptions configures video encoding parameters.
type EncoderOptions struct {
	Container  string // Container format: "mp4", "mov" or "matroska"
	Bitrate    int    // Target bitrate in kbps
	GOPSize    int    // Maximum distance between keyframes
	MaxBFrames int    // Maximum consecutive B-frames
	Preset     string // x264 speed preset
}
