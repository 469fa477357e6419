package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/framerec/pkg/config"
	"github.com/user/framerec/pkg/pipeline"
)

// runApp runs the CLI with args and returns the config the record action received.
func runApp(t *testing.T, args ...string) (config.Config, bool, error) {
	t.Helper()
	var got config.Config
	called := false
	app := newApp(func(ctx context.Context, cfg config.Config) error {
		got = cfg
		called = true
		return nil
	}, func() error { return nil })
	err := app.RunContext(context.Background(), append([]string{"framerec"}, args...))
	return got, called, err
}

func TestRecord_Defaults(t *testing.T) {
	cfg, called, err := runApp(t, "record")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !called {
		t.Fatal("record action not called")
	}
	if cfg.Output != "test.mp4" || cfg.Frames != 180 || cfg.FPS != 30 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Width != 1920 || cfg.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRecord_Flags(t *testing.T) {
	cfg, _, err := runApp(t, "record",
		"--fps", "60", "--frames", "30", "-W", "1280", "-H", "720",
		"--region", "0,0,640,360", "--preset", "veryfast", "--sync",
		"out.mkv")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if cfg.Output != "out.mkv" || cfg.FPS != 60 || cfg.Frames != 30 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Width != 1280 || cfg.Height != 720 || cfg.Preset != "veryfast" || !cfg.Sync {
		t.Errorf("unexpected config: %+v", cfg)
	}
	target, err := cfg.Target()
	if err != nil {
		t.Fatal(err)
	}
	if target.Kind != pipeline.TargetRegion {
		t.Errorf("expected region target, got %s", target)
	}
}

func TestRecord_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framerec.yaml")
	content := "output: from-file.mp4\nfps: 24\nbitrate: 3000\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := runApp(t, "record", "--config", path, "--fps", "50")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if cfg.FPS != 50 {
		t.Errorf("flag should override file: fps %v", cfg.FPS)
	}
	if cfg.Output != "from-file.mp4" || cfg.Bitrate != 3000 {
		t.Errorf("file values lost: %+v", cfg)
	}
}

func TestRecord_InvalidConfig(t *testing.T) {
	tests := [][]string{
		{"record", "--width", "1921"},
		{"record", "--preset", "instant"},
		{"record", "--region", "1,2"},
		{"record", "out.avi"},
		{"record", "a.mp4", "b.mp4"},
	}
	for _, args := range tests {
		_, called, err := runApp(t, args...)
		if err == nil {
			t.Errorf("%v: expected error", args)
		}
		if called {
			t.Errorf("%v: record should not run with invalid config", args)
		}
	}

	_, _, err := runApp(t, "record", "--fps", "0")
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDisplaysCommand(t *testing.T) {
	listed := false
	app := newApp(nil, func() error {
		listed = true
		return nil
	})
	if err := app.RunContext(context.Background(), []string{"framerec", "displays"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !listed {
		t.Error("displays action not called")
	}
}
