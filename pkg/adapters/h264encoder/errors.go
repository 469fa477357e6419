package h264encoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin or after End.
	ErrNotInitialized = errors.New("h264encoder: encoder not initialized")

	// ErrAlreadyStarted is returned when Begin is called on a running encoder.
	ErrAlreadyStarted = errors.New("h264encoder: encoder already started")

	// ErrInvalidSize is returned for non-positive or odd output dimensions.
	// yuv420p subsamples chroma by two in both directions.
	ErrInvalidSize = errors.New("h264encoder: width and height must be positive and even")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("h264encoder: ffmpeg not found in PATH")
)
