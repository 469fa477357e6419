// Package config provides configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
	"github.com/user/framerec/pkg/session"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config represents the full configuration for framerec.
type Config struct {
	// Output
	Output  string `yaml:"output"`
	Summary string `yaml:"summary"`

	// Recording
	Frames     int           `yaml:"frames"`
	FPS        float64       `yaml:"fps"`
	Width      int           `yaml:"width"`
	Height     int           `yaml:"height"`
	QueueDepth int           `yaml:"queue_depth"`
	Sync       bool          `yaml:"sync"`
	Capture    CaptureConfig `yaml:"capture"`

	// Encoding
	Bitrate    int    `yaml:"bitrate"`
	GOPSize    int    `yaml:"gop_size"`
	MaxBFrames int    `yaml:"max_b_frames"`
	Preset     string `yaml:"preset"`
	FFmpegPath string `yaml:"ffmpeg"`

	// Scaling
	FastScaling bool `yaml:"fast_scaling"`

	// Observability
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
	Quiet       bool   `yaml:"quiet"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"`
}

// CaptureConfig selects the capture target. Window wins over Region, and
// Region wins over Display.
type CaptureConfig struct {
	Display int    `yaml:"display"`
	Region  string `yaml:"region"` // "x,y,w,h"
	Window  string `yaml:"window"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		// Output
		Output: session.DefaultName,

		// Recording
		Frames:     180,
		FPS:        session.DefaultFPS,
		Width:      session.DefaultWidth,
		Height:     session.DefaultHeight,
		QueueDepth: session.DefaultQueueDepth,

		// Encoding
		Bitrate:    session.DefaultBitrate,
		GOPSize:    session.DefaultGOPSize,
		MaxBFrames: session.DefaultMaxBFrames,
		Preset:     session.DefaultPreset,

		// Observability
		LogLevel: "info",

		// Debug
		DebugDir:   "./debug",
		DebugEvery: 1,
	}
}

// LoadFromFile loads configuration from a YAML file on top of Defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ParseRegion parses "x,y,w,h" into a rectangle.
func ParseRegion(s string) (image.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("region %q: want x,y,w,h", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("region %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: width and height must be positive", s)
	}
	return image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3]), nil
}

// Target converts the capture settings to a pipeline.Target.
func (c Config) Target() (pipeline.Target, error) {
	switch {
	case c.Capture.Window != "":
		return pipeline.Target{Kind: pipeline.TargetWindow, Window: c.Capture.Window}, nil
	case c.Capture.Region != "":
		r, err := ParseRegion(c.Capture.Region)
		if err != nil {
			return pipeline.Target{}, err
		}
		return pipeline.Target{Kind: pipeline.TargetRegion, Region: r}, nil
	default:
		return pipeline.Target{Kind: pipeline.TargetDisplay, Display: c.Capture.Display}, nil
	}
}

// ToSessionOptions converts Config to session.Options.
func (c Config) ToSessionOptions() (session.Options, error) {
	target, err := c.Target()
	if err != nil {
		return session.Options{}, err
	}
	return session.Options{
		Name:       c.Output,
		FPS:        c.FPS,
		Width:      c.Width,
		Height:     c.Height,
		Bitrate:    c.Bitrate,
		GOPSize:    c.GOPSize,
		MaxBFrames: c.MaxBFrames,
		Preset:     c.Preset,
		Target:     target,
		QueueDepth: c.QueueDepth,
	}, nil
}

// Validate checks the configuration. Errors wrap ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidConfig, c.Frames)
	}
	if c.DebugEvery < 1 {
		return fmt.Errorf("%w: debug_every must be at least 1, got %d", ErrInvalidConfig, c.DebugEvery)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	opts, err := c.ToSessionOptions()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
