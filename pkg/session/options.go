package session

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
)

// Defaults for Options.
const (
	DefaultName       = "test.mp4"
	DefaultFPS        = 30
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultBitrate    = 1200
	DefaultGOPSize    = 12
	DefaultMaxBFrames = 2
	DefaultPreset     = "ultrafast"
	DefaultQueueDepth = 4
)

// x264Presets lists the speed presets libx264 accepts.
var x264Presets = []string{
	"ultrafast", "superfast", "veryfast", "faster", "fast",
	"medium", "slow", "slower", "veryslow", "placebo",
}

var containers = map[string]string{
	".mp4": "mp4",
	".m4v": "mp4",
	".mov": "mov",
	".mkv": "matroska",
}

// Options configures a recording session.
type Options struct {
	// ID names the session. A random UUID is used when empty.
	ID string

	Name   string  // output file path; the extension selects the container
	FPS    float64 // frames per second
	Width  int     // output width, positive and even
	Height int     // output height, positive and even

	Bitrate    int    // kbps
	GOPSize    int    // maximum distance between keyframes
	MaxBFrames int    // 0 disables B-frames
	Preset     string // x264 speed preset

	Target pipeline.Target

	// QueueDepth bounds the frames waiting for the encoder in Run.
	QueueDepth int
}

// DefaultOptions returns the options used by the demo recording: 180 frames
// of the primary display to test.mp4 at 30 fps, 1920x1080.
func DefaultOptions() Options {
	return Options{
		Name:       DefaultName,
		FPS:        DefaultFPS,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Bitrate:    DefaultBitrate,
		GOPSize:    DefaultGOPSize,
		MaxBFrames: DefaultMaxBFrames,
		Preset:     DefaultPreset,
		QueueDepth: DefaultQueueDepth,
	}
}

// withDefaults fills zero encoder and queue settings.
func (o Options) withDefaults() Options {
	if o.Bitrate == 0 {
		o.Bitrate = DefaultBitrate
	}
	if o.GOPSize == 0 {
		o.GOPSize = DefaultGOPSize
	}
	if o.Preset == "" {
		o.Preset = DefaultPreset
	}
	if o.QueueDepth == 0 {
		o.QueueDepth = DefaultQueueDepth
	}
	return o
}

// Validate checks the options. Errors wrap ErrInvalidOptions.
func (o Options) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidOptions, fmt.Sprintf(format, args...))
	}

	if o.Name == "" {
		return invalid("output name is empty")
	}
	if _, err := ContainerForPath(o.Name); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	if o.FPS <= 0 {
		return invalid("fps must be positive, got %v", o.FPS)
	}
	if o.Width <= 0 || o.Height <= 0 {
		return invalid("size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Width%2 != 0 || o.Height%2 != 0 {
		return invalid("size must be even, got %dx%d", o.Width, o.Height)
	}
	if o.Bitrate < 0 {
		return invalid("bitrate must be positive, got %d", o.Bitrate)
	}
	if o.GOPSize < 0 {
		return invalid("GOP size must be positive, got %d", o.GOPSize)
	}
	if o.MaxBFrames < 0 || o.MaxBFrames > 16 {
		return invalid("max B-frames must be between 0 and 16, got %d", o.MaxBFrames)
	}
	if o.Preset != "" && !slices.Contains(x264Presets, o.Preset) {
		return invalid("unknown preset %q", o.Preset)
	}
	if o.QueueDepth < 0 {
		return invalid("queue depth must be positive, got %d", o.QueueDepth)
	}

	switch o.Target.Kind {
	case pipeline.TargetDisplay:
		if o.Target.Display < 0 {
			return invalid("display index must not be negative, got %d", o.Target.Display)
		}
	case pipeline.TargetRegion:
		if o.Target.Region.Empty() {
			return invalid("capture region is empty")
		}
	case pipeline.TargetWindow:
		if o.Target.Window == "" {
			return invalid("window title is empty")
		}
	default:
		return invalid("unknown target %v", o.Target.Kind)
	}
	return nil
}

// encoderOptions converts the session settings for the encoder.
func (o Options) encoderOptions(container string) ports.EncoderOptions {
	return ports.EncoderOptions{
		Container:  container,
		Bitrate:    o.Bitrate,
		GOPSize:    o.GOPSize,
		MaxBFrames: o.MaxBFrames,
		Preset:     o.Preset,
	}
}

// ContainerForPath picks the container format from the output file extension.
func ContainerForPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if c, ok := containers[ext]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedContainer, ext)
}
