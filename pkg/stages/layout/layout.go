// Package layout implements the padding calculation stage.
package layout

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/user/framerec/pkg/pipeline"
)

// ErrInvalidDimensions is returned when a source or output size is not positive.
var ErrInvalidDimensions = errors.New("layout: invalid dimensions")

// Stage computes how captured frames map onto output frames.
// This is a pure function with no external dependencies.
type Stage struct{}

// NewStage creates a new layout stage.
func NewStage() *Stage {
	return &Stage{}
}

// Execute computes the layout for the given sizes.
func (s *Stage) Execute(ctx context.Context, input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	return ComputeLayout(input)
}

// CalcPad returns the padding needed to give a srcW x srcH image the aspect
// ratio of dstW x dstH. Only one of padW and padH is ever non-zero.
func CalcPad(srcW, srcH, dstW, dstH int) (padW, padH int) {
	srcAspect := float64(srcW) / float64(srcH)
	dstAspect := float64(dstW) / float64(dstH)

	switch {
	case srcAspect > dstAspect:
		padH = int(float64(srcW)/dstAspect) - srcH
	case srcAspect < dstAspect:
		padW = int(dstAspect*float64(srcH)) - srcW
	}
	return padW, padH
}

// ScaleSize applies a display scaling ratio to a size.
// A ratio of 0 or 1 leaves the size unchanged.
func ScaleSize(d pipeline.Dimension, scale float64) pipeline.Dimension {
	if scale <= 0 || scale == 1 {
		return d
	}
	return pipeline.Dimension{
		Width:  int(float64(d.Width) * scale),
		Height: int(float64(d.Height) * scale),
	}
}

// ScaleRect applies a display scaling ratio to a rectangle, keeping the
// size consistent with ScaleSize.
func ScaleRect(r image.Rectangle, scale float64) image.Rectangle {
	if scale <= 0 || scale == 1 {
		return r
	}
	size := ScaleSize(pipeline.Dimension{Width: r.Dx(), Height: r.Dy()}, scale)
	minX := int(float64(r.Min.X) * scale)
	minY := int(float64(r.Min.Y) * scale)
	return image.Rect(minX, minY, minX+size.Width, minY+size.Height)
}

// ComputeLayout performs the layout calculation.
// This is exposed as a standalone function for testing and reuse.
func ComputeLayout(input pipeline.LayoutInput) (pipeline.LayoutResult, error) {
	src := input.Source
	out := input.Output

	if src.Width <= 0 || src.Height <= 0 {
		return pipeline.LayoutResult{}, fmt.Errorf("%w: source %s", ErrInvalidDimensions, src)
	}
	if out.Width <= 0 || out.Height <= 0 {
		return pipeline.LayoutResult{}, fmt.Errorf("%w: output %s", ErrInvalidDimensions, out)
	}

	padW, padH := CalcPad(src.Width, src.Height, out.Width, out.Height)

	return pipeline.LayoutResult{
		Source: src,
		PadW:   padW,
		PadH:   padH,
		Canvas: pipeline.Dimension{
			Width:  src.Width + padW,
			Height: src.Height + padH,
		},
		Offset: image.Pt(padW/2, padH/2),
		Output: out,
	}, nil
}

var _ pipeline.Stage[pipeline.LayoutInput, pipeline.LayoutResult] = (*Stage)(nil)
