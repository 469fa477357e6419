// Package capture implements the screen capture stage.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
	"github.com/user/framerec/pkg/stages/layout"
)

var (
	// ErrEmptyTarget is returned when a target resolves to an empty rectangle.
	ErrEmptyTarget = errors.New("capture: target is empty")

	// ErrSizeMismatch is returned when the capturer returns an image of the wrong size.
	ErrSizeMismatch = errors.New("capture: captured image size mismatch")
)

// ResolveTarget turns a target into a fixed screen rectangle and the display
// scaling ratio that applies to it. The returned rectangle is already scaled.
func ResolveTarget(capturer ports.ScreenCapturer, target pipeline.Target) (image.Rectangle, float64, error) {
	var (
		rect  image.Rectangle
		scale = 1.0
		err   error
	)

	switch target.Kind {
	case pipeline.TargetDisplay:
		rect, err = capturer.DisplayBounds(target.Display)
	case pipeline.TargetRegion:
		rect = target.Region.Canon()
	case pipeline.TargetWindow:
		rect, scale, err = capturer.WindowBounds(target.Window)
		rect = layout.ScaleRect(rect, scale)
	default:
		err = fmt.Errorf("capture: unknown target kind %v", target.Kind)
	}
	if err != nil {
		return image.Rectangle{}, 0, err
	}
	if rect.Empty() {
		return image.Rectangle{}, 0, fmt.Errorf("%w: %s", ErrEmptyTarget, target)
	}
	if scale <= 0 {
		scale = 1
	}
	return rect, scale, nil
}

// Stage grabs frames from a fixed screen rectangle.
type Stage struct {
	capturer ports.ScreenCapturer
	rect     image.Rectangle
	sink     ports.DebugSink
	logger   ports.Logger
	metrics  *metrics.Metrics
}

// NewStage creates a capture stage for rect. m may be nil.
func NewStage(capturer ports.ScreenCapturer, rect image.Rectangle, sink ports.DebugSink, logger ports.Logger, m *metrics.Metrics) *Stage {
	return &Stage{
		capturer: capturer,
		rect:     rect,
		sink:     sink,
		logger:   logger.WithComponent("capture"),
		metrics:  m,
	}
}

// Rect returns the rectangle this stage captures.
func (s *Stage) Rect() image.Rectangle {
	return s.rect
}

// Execute captures one frame.
func (s *Stage) Execute(ctx context.Context, input pipeline.CaptureInput) (pipeline.CaptureResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.CaptureResult{}, err
	}

	start := time.Now()
	img, err := s.capturer.Capture(s.rect)
	elapsed := time.Since(start)
	if err != nil {
		return pipeline.CaptureResult{}, fmt.Errorf("capture frame %d: %w", input.Index, err)
	}
	if img.Bounds().Dx() != s.rect.Dx() || img.Bounds().Dy() != s.rect.Dy() {
		return pipeline.CaptureResult{}, fmt.Errorf("%w: got %v, want %dx%d",
			ErrSizeMismatch, img.Bounds(), s.rect.Dx(), s.rect.Dy())
	}

	s.metrics.ObserveCapture(elapsed)
	s.logger.Debug("Captured frame %d in %s", input.Index, elapsed.Round(time.Microsecond))

	if s.sink.Enabled() {
		if err := s.sink.SaveRawFrame(input.Index, img); err != nil {
			s.logger.Warn("Failed to save debug output: %s", err.Error())
		}
	}

	return pipeline.CaptureResult{
		Index:    input.Index,
		Image:    img,
		Duration: elapsed,
	}, nil
}

var _ pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult] = (*Stage)(nil)
