package capture

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/user/framerec/pkg/adapters/logger"
	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/mocks"
	"github.com/user/framerec/pkg/pipeline"
)

func TestResolveTarget(t *testing.T) {
	capturer := mocks.NewScreenCapturer(
		image.Rect(0, 0, 1920, 1080),
		image.Rect(1920, 0, 3200, 1024),
	)
	capturer.WindowBoundsFunc = func(title string) (image.Rectangle, float64, error) {
		if title != "Game" {
			return image.Rectangle{}, 0, errors.New("not found")
		}
		return image.Rect(100, 100, 900, 700), 1.5, nil
	}

	tests := []struct {
		name      string
		target    pipeline.Target
		wantRect  image.Rectangle
		wantScale float64
		wantErr   bool
	}{
		{
			name:      "primary display",
			target:    pipeline.Target{Kind: pipeline.TargetDisplay},
			wantRect:  image.Rect(0, 0, 1920, 1080),
			wantScale: 1,
		},
		{
			name:      "secondary display",
			target:    pipeline.Target{Kind: pipeline.TargetDisplay, Display: 1},
			wantRect:  image.Rect(1920, 0, 3200, 1024),
			wantScale: 1,
		},
		{
			name:    "missing display",
			target:  pipeline.Target{Kind: pipeline.TargetDisplay, Display: 2},
			wantErr: true,
		},
		{
			name:      "region is canonicalized",
			target:    pipeline.Target{Kind: pipeline.TargetRegion, Region: image.Rectangle{Min: image.Pt(500, 400), Max: image.Pt(100, 100)}},
			wantRect:  image.Rect(100, 100, 500, 400),
			wantScale: 1,
		},
		{
			name:    "empty region",
			target:  pipeline.Target{Kind: pipeline.TargetRegion, Region: image.Rect(10, 10, 10, 50)},
			wantErr: true,
		},
		{
			name:      "window is scaled",
			target:    pipeline.Target{Kind: pipeline.TargetWindow, Window: "Game"},
			wantRect:  image.Rect(150, 150, 1350, 1050),
			wantScale: 1.5,
		},
		{
			name:    "unknown window",
			target:  pipeline.Target{Kind: pipeline.TargetWindow, Window: "Editor"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect, scale, err := ResolveTarget(capturer, tt.target)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got rect %v", rect)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rect != tt.wantRect {
				t.Errorf("rect: expected %v, got %v", tt.wantRect, rect)
			}
			if scale != tt.wantScale {
				t.Errorf("scale: expected %v, got %v", tt.wantScale, scale)
			}
		})
	}
}

func TestStage_Execute(t *testing.T) {
	capturer := mocks.NewScreenCapturer()
	sink := mocks.NewDebugSink(true)
	m := metrics.New()
	rect := image.Rect(10, 20, 330, 260)

	stage := NewStage(capturer, rect, sink, logger.NewNoop(), m)

	for i := 0; i < 3; i++ {
		result, err := stage.Execute(context.Background(), pipeline.CaptureInput{Index: i})
		if err != nil {
			t.Fatalf("frame %d: unexpected error: %v", i, err)
		}
		if result.Index != i {
			t.Errorf("expected index %d, got %d", i, result.Index)
		}
		if result.Image.Bounds() != image.Rect(0, 0, 320, 240) {
			t.Errorf("expected 320x240 image, got %v", result.Image.Bounds())
		}
	}

	if len(capturer.CaptureCalls) != 3 || capturer.CaptureCalls[0] != rect {
		t.Errorf("expected 3 captures of %v, got %v", rect, capturer.CaptureCalls)
	}
	if raw, _ := sink.Counts(); raw != 3 {
		t.Errorf("expected 3 raw debug frames, got %d", raw)
	}
	if n := testutil.CollectAndCount(m.CaptureDuration); n != 1 {
		t.Errorf("expected capture histogram to be collected, got %d", n)
	}
}

func TestStage_SinkDisabled(t *testing.T) {
	sink := mocks.NewDebugSink(false)
	stage := NewStage(mocks.NewScreenCapturer(), image.Rect(0, 0, 64, 64), sink, logger.NewNoop(), nil)

	if _, err := stage.Execute(context.Background(), pipeline.CaptureInput{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if raw, _ := sink.Counts(); raw != 0 {
		t.Errorf("expected no debug frames, got %d", raw)
	}
}

func TestStage_SinkErrorDoesNotFailFrame(t *testing.T) {
	sink := mocks.NewDebugSink(true)
	sink.SaveErr = errors.New("disk full")
	stage := NewStage(mocks.NewScreenCapturer(), image.Rect(0, 0, 64, 64), sink, logger.NewNoop(), nil)

	if _, err := stage.Execute(context.Background(), pipeline.CaptureInput{}); err != nil {
		t.Fatalf("sink failure should not fail the frame: %v", err)
	}
}

func TestStage_CaptureError(t *testing.T) {
	capturer := mocks.NewScreenCapturer()
	capturer.CaptureFunc = func(rect image.Rectangle) (*image.RGBA, error) {
		return nil, errors.New("access denied")
	}
	stage := NewStage(capturer, image.Rect(0, 0, 64, 64), mocks.NewDebugSink(false), logger.NewNoop(), nil)

	if _, err := stage.Execute(context.Background(), pipeline.CaptureInput{Index: 7}); err == nil {
		t.Fatal("expected error")
	}
}

func TestStage_SizeMismatch(t *testing.T) {
	capturer := mocks.NewScreenCapturer()
	capturer.CaptureFunc = func(rect image.Rectangle) (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 10, 10)), nil
	}
	stage := NewStage(capturer, image.Rect(0, 0, 64, 64), mocks.NewDebugSink(false), logger.NewNoop(), nil)

	_, err := stage.Execute(context.Background(), pipeline.CaptureInput{})
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("expected ErrSizeMismatch, got %v", err)
	}
}

func TestStage_Cancelled(t *testing.T) {
	capturer := mocks.NewScreenCapturer()
	stage := NewStage(capturer, image.Rect(0, 0, 64, 64), mocks.NewDebugSink(false), logger.NewNoop(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := stage.Execute(ctx, pipeline.CaptureInput{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if capturer.Captures() != 0 {
		t.Error("expected no capture after cancel")
	}
}
