package compose

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/user/framerec/pkg/adapters/ggrenderer"
	"github.com/user/framerec/pkg/adapters/logger"
	"github.com/user/framerec/pkg/mocks"
	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/stages/layout"
)

func mustLayout(t *testing.T, srcW, srcH, outW, outH int) pipeline.LayoutResult {
	t.Helper()
	l, err := layout.ComputeLayout(pipeline.LayoutInput{
		Source: pipeline.Dimension{Width: srcW, Height: srcH},
		Output: pipeline.Dimension{Width: outW, Height: outH},
	})
	if err != nil {
		t.Fatalf("ComputeLayout failed: %v", err)
	}
	return l
}

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestStage_DrawsAtPadOffset(t *testing.T) {
	renderer := &mocks.Renderer{}
	l := mustLayout(t, 1024, 768, 1920, 1080)
	stage := NewStage(renderer, l, mocks.NewDebugSink(false), logger.NewNoop(), nil)

	result, err := stage.Execute(context.Background(), pipeline.ComposeInput{
		Index: 4,
		Image: image.NewRGBA(image.Rect(0, 0, 1024, 768)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(renderer.Canvases) != 1 {
		t.Fatalf("expected 1 canvas, got %d", len(renderer.Canvases))
	}
	canvas := renderer.Canvases[0]
	if canvas.Width != 1365 || canvas.Height != 768 {
		t.Errorf("expected 1365x768 canvas, got %dx%d", canvas.Width, canvas.Height)
	}
	if canvas.Background != Background {
		t.Errorf("expected black background, got %v", canvas.Background)
	}
	if len(canvas.Draws) != 1 || canvas.Draws[0].X != 170 || canvas.Draws[0].Y != 0 {
		t.Errorf("expected one draw at (170,0), got %+v", canvas.Draws)
	}
	if result.Index != 4 {
		t.Errorf("expected index 4, got %d", result.Index)
	}
	if result.Image.Bounds() != image.Rect(0, 0, 1920, 1080) {
		t.Errorf("expected 1920x1080 output, got %v", result.Image.Bounds())
	}
}

func TestStage_SkipsResizeWhenSizesMatch(t *testing.T) {
	resized := 0
	renderer := &mocks.Renderer{
		ResizeImageFunc: func(img image.Image, w, h int) *image.RGBA {
			resized++
			return image.NewRGBA(image.Rect(0, 0, w, h))
		},
	}
	l := mustLayout(t, 640, 360, 640, 360)
	stage := NewStage(renderer, l, mocks.NewDebugSink(false), logger.NewNoop(), nil)

	if _, err := stage.Execute(context.Background(), pipeline.ComposeInput{Image: image.NewRGBA(image.Rect(0, 0, 640, 360))}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resized != 0 {
		t.Errorf("expected no resize, got %d", resized)
	}
}

func TestStage_PadsWithBlack(t *testing.T) {
	// 100x100 red square into a 200x100 output: 50px black bars left and right.
	l := mustLayout(t, 100, 100, 200, 100)
	stage := NewStage(ggrenderer.New(), l, mocks.NewDebugSink(false), logger.NewNoop(), nil)

	red := color.RGBA{R: 255, A: 255}
	result, err := stage.Execute(context.Background(), pipeline.ComposeInput{Image: solid(100, 100, red)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	img := result.Image
	if img.Bounds() != image.Rect(0, 0, 200, 100) {
		t.Fatalf("expected 200x100, got %v", img.Bounds())
	}
	if got := img.RGBAAt(10, 50); got != (color.RGBA{A: 255}) {
		t.Errorf("left bar: expected black, got %v", got)
	}
	if got := img.RGBAAt(190, 50); got != (color.RGBA{A: 255}) {
		t.Errorf("right bar: expected black, got %v", got)
	}
	if got := img.RGBAAt(100, 50); got != red {
		t.Errorf("center: expected red, got %v", got)
	}
}

func TestStage_ScalesToOutput(t *testing.T) {
	l := mustLayout(t, 320, 180, 1280, 720)
	stage := NewStage(ggrenderer.New(), l, mocks.NewDebugSink(false), logger.NewNoop(), nil)

	blue := color.RGBA{B: 255, A: 255}
	result, err := stage.Execute(context.Background(), pipeline.ComposeInput{Image: solid(320, 180, blue)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Image.Bounds() != image.Rect(0, 0, 1280, 720) {
		t.Fatalf("expected 1280x720, got %v", result.Image.Bounds())
	}
	// allow for filter rounding
	if got := result.Image.RGBAAt(640, 360); got.B < 250 || got.R > 5 || got.G > 5 {
		t.Errorf("expected blue, got %v", got)
	}
}

func TestStage_DebugSink(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	l := mustLayout(t, 64, 48, 128, 72)
	stage := NewStage(&mocks.Renderer{}, l, sink, logger.NewNoop(), nil)

	for i := 0; i < 2; i++ {
		if _, err := stage.Execute(context.Background(), pipeline.ComposeInput{Index: i, Image: image.NewRGBA(image.Rect(0, 0, 64, 48))}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if _, composed := sink.Counts(); composed != 2 {
		t.Errorf("expected 2 composed debug frames, got %d", composed)
	}
	if sink.ComposedFrames[1] != image.Rect(0, 0, 128, 72) {
		t.Errorf("expected output-size debug frame, got %v", sink.ComposedFrames[1])
	}
}

func TestStage_Errors(t *testing.T) {
	l := mustLayout(t, 64, 48, 128, 72)
	stage := NewStage(&mocks.Renderer{}, l, mocks.NewDebugSink(false), logger.NewNoop(), nil)

	if _, err := stage.Execute(context.Background(), pipeline.ComposeInput{}); err == nil {
		t.Error("expected error for nil image")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := stage.Execute(ctx, pipeline.ComposeInput{Image: image.NewRGBA(image.Rect(0, 0, 64, 48))})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
