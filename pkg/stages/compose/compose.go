// Package compose implements the frame composition stage: padding a captured
// frame to the output aspect ratio and scaling it to the output size.
package compose

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
)

// Background fills the padding around the captured frame.
var Background = color.Black

// Stage composes captured frames into output frames.
type Stage struct {
	renderer ports.Renderer
	layout   pipeline.LayoutResult
	sink     ports.DebugSink
	logger   ports.Logger
	metrics  *metrics.Metrics
}

// NewStage creates a compose stage for a fixed layout. m may be nil.
func NewStage(renderer ports.Renderer, layout pipeline.LayoutResult, sink ports.DebugSink, logger ports.Logger, m *metrics.Metrics) *Stage {
	return &Stage{
		renderer: renderer,
		layout:   layout,
		sink:     sink,
		logger:   logger.WithComponent("compose"),
		metrics:  m,
	}
}

// Execute pads and scales one frame.
func (s *Stage) Execute(ctx context.Context, input pipeline.ComposeInput) (pipeline.ComposeResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ComposeResult{}, err
	}
	if input.Image == nil {
		return pipeline.ComposeResult{}, fmt.Errorf("compose frame %d: no image", input.Index)
	}

	start := time.Now()
	img := s.composeFrame(input.Image)
	s.metrics.ObserveCompose(time.Since(start))

	if s.sink.Enabled() {
		if err := s.sink.SaveComposedFrame(input.Index, img); err != nil {
			s.logger.Warn("Failed to save debug output: %s", err.Error())
		}
	}

	return pipeline.ComposeResult{Index: input.Index, Image: img}, nil
}

// composeFrame draws src centered on a black canvas of the padded size and
// scales the result to the output size.
func (s *Stage) composeFrame(src image.Image) *image.RGBA {
	l := s.layout

	canvas := s.renderer.CreateCanvas(l.Canvas.Width, l.Canvas.Height, Background)
	canvas.DrawImage(src, l.Offset.X, l.Offset.Y)
	padded := canvas.ToImage()

	if l.Canvas == l.Output {
		if rgba, ok := padded.(*image.RGBA); ok {
			return rgba
		}
	}
	return s.renderer.ResizeImage(padded, l.Output.Width, l.Output.Height)
}

var _ pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult] = (*Stage)(nil)
