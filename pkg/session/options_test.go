package session

import (
	"errors"
	"image"
	"testing"

	"github.com/user/framerec/pkg/pipeline"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.Validate(); err != nil {
		t.Fatalf("default options should be valid: %v", err)
	}
	if opts.Name != "test.mp4" || opts.FPS != 30 || opts.Width != 1920 || opts.Height != 1080 {
		t.Errorf("unexpected defaults: %+v", opts)
	}
	if opts.Bitrate != 1200 || opts.GOPSize != 12 || opts.MaxBFrames != 2 || opts.Preset != "ultrafast" {
		t.Errorf("unexpected encoder defaults: %+v", opts)
	}
}

func TestOptions_WithDefaults(t *testing.T) {
	opts := Options{Name: "a.mp4", FPS: 30, Width: 640, Height: 480}.withDefaults()
	if opts.Bitrate != DefaultBitrate || opts.GOPSize != DefaultGOPSize || opts.Preset != DefaultPreset || opts.QueueDepth != DefaultQueueDepth {
		t.Errorf("zero fields not filled: %+v", opts)
	}
	if opts.MaxBFrames != 0 {
		t.Errorf("MaxBFrames 0 must stay 0, got %d", opts.MaxBFrames)
	}
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"empty name", func(o *Options) { o.Name = "" }},
		{"unknown extension", func(o *Options) { o.Name = "out.avi" }},
		{"zero fps", func(o *Options) { o.FPS = 0 }},
		{"negative fps", func(o *Options) { o.FPS = -30 }},
		{"zero width", func(o *Options) { o.Width = 0 }},
		{"odd width", func(o *Options) { o.Width = 1921 }},
		{"odd height", func(o *Options) { o.Height = 1081 }},
		{"negative bitrate", func(o *Options) { o.Bitrate = -1 }},
		{"negative GOP", func(o *Options) { o.GOPSize = -1 }},
		{"too many B-frames", func(o *Options) { o.MaxBFrames = 17 }},
		{"unknown preset", func(o *Options) { o.Preset = "warp" }},
		{"negative queue", func(o *Options) { o.QueueDepth = -1 }},
		{"negative display", func(o *Options) { o.Target = pipeline.Target{Display: -1} }},
		{"empty region", func(o *Options) { o.Target = pipeline.Target{Kind: pipeline.TargetRegion} }},
		{"empty window", func(o *Options) { o.Target = pipeline.Target{Kind: pipeline.TargetWindow} }},
		{"unknown target", func(o *Options) { o.Target = pipeline.Target{Kind: pipeline.TargetKind(9)} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.modify(&opts)
			if err := opts.Validate(); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestOptions_ValidateTargets(t *testing.T) {
	for _, target := range []pipeline.Target{
		{Kind: pipeline.TargetDisplay, Display: 1},
		{Kind: pipeline.TargetRegion, Region: image.Rect(0, 0, 800, 600)},
		{Kind: pipeline.TargetWindow, Window: "Game"},
	} {
		opts := DefaultOptions()
		opts.Target = target
		if err := opts.Validate(); err != nil {
			t.Errorf("%s: unexpected error: %v", target, err)
		}
	}
}

func TestContainerForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"test.mp4", "mp4", false},
		{`C:\videos\TEST.MP4`, "mp4", false},
		{"clip.mov", "mov", false},
		{"out/rec.mkv", "matroska", false},
		{"rec.m4v", "mp4", false},
		{"rec.avi", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ContainerForPath(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedContainer) {
					t.Fatalf("expected ErrUnsupportedContainer, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
