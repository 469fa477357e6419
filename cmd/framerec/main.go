// Package main provides the CLI entry point for framerec.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-multierror"
	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framerec/pkg/adapters/filesink"
	"github.com/user/framerec/pkg/adapters/ggrenderer"
	"github.com/user/framerec/pkg/adapters/h264encoder"
	"github.com/user/framerec/pkg/adapters/logger"
	"github.com/user/framerec/pkg/adapters/mp4probe"
	"github.com/user/framerec/pkg/adapters/nullsink"
	"github.com/user/framerec/pkg/adapters/osfilesystem"
	"github.com/user/framerec/pkg/adapters/screencapture"
	"github.com/user/framerec/pkg/config"
	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/pacer"
	"github.com/user/framerec/pkg/ports"
	"github.com/user/framerec/pkg/session"
	"github.com/user/framerec/pkg/summarizer"
)

var version = "dev"

// recordFunc runs a recording with a resolved configuration.
type recordFunc func(ctx context.Context, cfg config.Config) error

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := newApp(record, listDisplays)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %s", err))
		os.Exit(1)
	}
}

func newApp(rec recordFunc, displays func() error) *cli.App {
	return &cli.App{
		Name:    "framerec",
		Usage:   l10n.T("Record the screen to an H.264 video"),
		Version: version,
		Commands: []*cli.Command{
			{
				Name:      "record",
				Usage:     l10n.T("Record frames from a display, region or window"),
				ArgsUsage: "[output]",
				Flags:     recordFlags(),
				Action: func(c *cli.Context) error {
					cfg, err := buildConfig(c)
					if err != nil {
						return err
					}
					return rec(c.Context, cfg)
				},
			},
			{
				Name:  "displays",
				Usage: l10n.T("List active displays"),
				Action: func(c *cli.Context) error {
					return displays()
				},
			},
		},
	}
}

func recordFlags() []cli.Flag {
	d := config.Defaults()
	return []cli.Flag{
		// Config
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Category: l10n.T("Config"), Usage: l10n.T("YAML config file; flags override its values")},

		// Recording
		&cli.IntFlag{Name: "frames", Aliases: []string{"n"}, Value: d.Frames, Category: l10n.T("Recording"), Usage: l10n.T("Number of frames to record (0 = until interrupted)")},
		&cli.Float64Flag{Name: "fps", Aliases: []string{"r"}, Value: d.FPS, Category: l10n.T("Recording"), Usage: l10n.T("Frames per second")},
		&cli.IntFlag{Name: "width", Aliases: []string{"W"}, Value: d.Width, Category: l10n.T("Recording"), Usage: l10n.T("Output video width")},
		&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Value: d.Height, Category: l10n.T("Recording"), Usage: l10n.T("Output video height")},
		&cli.BoolFlag{Name: "sync", Category: l10n.T("Recording"), Usage: l10n.T("Capture and encode each frame before waiting for the next")},

		// Target
		&cli.IntFlag{Name: "display", Aliases: []string{"d"}, Category: l10n.T("Target"), Usage: l10n.T("Display index to capture")},
		&cli.StringFlag{Name: "region", Category: l10n.T("Target"), Usage: l10n.T("Screen region to capture as x,y,w,h")},
		&cli.StringFlag{Name: "window", Category: l10n.T("Target"), Usage: l10n.T("Title of the window to capture (Windows only)")},

		// Encoding
		&cli.IntFlag{Name: "bitrate", Aliases: []string{"b"}, Value: d.Bitrate, Category: l10n.T("Encoding"), Usage: l10n.T("Video bitrate in kbps")},
		&cli.StringFlag{Name: "preset", Aliases: []string{"p"}, Value: d.Preset, Category: l10n.T("Encoding"), Usage: l10n.T("x264 speed preset")},
		&cli.StringFlag{Name: "ffmpeg", Category: l10n.T("Encoding"), Usage: l10n.T("Path to ffmpeg (falls back to FFMPEG_PATH env, then PATH)")},

		// Output
		&cli.StringFlag{Name: "summary", Aliases: []string{"s"}, Category: l10n.T("Output"), Usage: l10n.T("Write a recording summary (.md or .json)")},

		// Debug
		&cli.BoolFlag{Name: "debug", Category: l10n.T("Debug"), Usage: l10n.T("Save captured and composed frames as PNG")},
		&cli.StringFlag{Name: "debug-dir", Value: d.DebugDir, Category: l10n.T("Debug"), Usage: l10n.T("Directory for debug output")},

		// Logging
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: d.LogLevel, Category: l10n.T("Logging"), Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Category: l10n.T("Logging"), Usage: l10n.T("Suppress all log output")},
		&cli.StringFlag{Name: "metrics-addr", Category: l10n.T("Logging"), Usage: l10n.T("Serve Prometheus metrics on this address")},
	}
}

// buildConfig loads the config file, if any, and applies flags that were
// set explicitly on top of it.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if c.Args().Len() > 1 {
		return cfg, fmt.Errorf("expected at most one output path, got %d", c.Args().Len())
	}
	if c.Args().Present() {
		cfg.Output = c.Args().First()
	}

	if c.IsSet("frames") {
		cfg.Frames = c.Int("frames")
	}
	if c.IsSet("fps") {
		cfg.FPS = c.Float64("fps")
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
	if c.IsSet("sync") {
		cfg.Sync = c.Bool("sync")
	}
	if c.IsSet("display") {
		cfg.Capture.Display = c.Int("display")
	}
	if c.IsSet("region") {
		cfg.Capture.Region = c.String("region")
	}
	if c.IsSet("window") {
		cfg.Capture.Window = c.String("window")
	}
	if c.IsSet("bitrate") {
		cfg.Bitrate = c.Int("bitrate")
	}
	if c.IsSet("preset") {
		cfg.Preset = c.String("preset")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("summary") {
		cfg.Summary = c.String("summary")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) ports.Logger {
	if cfg.Quiet {
		return logger.NewNoop()
	}
	level, err := ports.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = ports.LevelInfo
	}
	return logger.NewConsole(level)
}

// record runs one recording session end to end.
func record(ctx context.Context, cfg config.Config) error {
	log := newLogger(cfg)

	opts, err := cfg.ToSessionOptions()
	if err != nil {
		return err
	}

	// Create adapters
	fs := osfilesystem.New()
	renderer := ggrenderer.New()
	if cfg.FastScaling {
		renderer = ggrenderer.NewFast()
	}
	ffmpegPath, err := h264encoder.FindFFmpeg(cfg.FFmpegPath)
	if err != nil {
		return err
	}

	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.NewSampled(cfg.DebugDir, cfg.DebugEvery, fs, renderer)
	} else {
		sink = nullsink.New()
	}

	m := metrics.New()
	if cfg.MetricsAddr != "" {
		log.Info("Serving metrics on %s", cfg.MetricsAddr)
		go func() {
			if err := m.Serve(ctx, cfg.MetricsAddr); err != nil {
				log.Error("Metrics server failed: %s", err)
			}
		}()
	}

	p, err := pacer.New(opts.FPS)
	if err != nil {
		return err
	}

	rec := session.NewRecorder(session.Deps{
		Capturer:   screencapture.New(),
		Renderer:   renderer,
		Encoder:    h264encoder.New(ffmpegPath),
		FileSystem: fs,
		Prober:     mp4probe.New(),
		Sink:       sink,
		Logger:     log,
		Metrics:    m,
	})
	if err := rec.NewRecord(ctx, opts); err != nil {
		return err
	}

	log.Info("Recording %d frames at %.0f fps to %s", cfg.Frames, opts.FPS, opts.Name)

	var result *multierror.Error
	var recErr error
	if cfg.Sync {
		recErr = recordSync(ctx, rec, cfg.Frames, p, log)
	} else {
		recErr = rec.Session().Run(ctx, cfg.Frames, p)
	}
	if errors.Is(recErr, context.Canceled) || errors.Is(recErr, context.DeadlineExceeded) {
		log.Warn("Interrupted, finishing recording...")
		recErr = nil
	}
	result = multierror.Append(result, recErr)

	// Stop must run to completion even after an interrupt so the partial
	// video is written.
	summary, stopErr := rec.Stop(context.WithoutCancel(ctx))
	if stopErr != nil {
		log.Error("Failed to stop session: %s", stopErr)
		result = multierror.Append(result, stopErr)
	}

	if summary != nil {
		log.Info("Session %s stopped after %d frames", summary.Session.ID, summary.Recording.FramesRecorded)

		if cfg.Summary != "" {
			if err := writeSummary(cfg.Summary, summary, fs); err != nil {
				result = multierror.Append(result, err)
			} else {
				log.Info("Summary written to %s", cfg.Summary)
			}
		}
	}

	return result.ErrorOrNil()
}

// recordSync records frames one at a time on the pacer's schedule.
func recordSync(ctx context.Context, rec *session.Recorder, frames int, p session.Pacer, log ports.Logger) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		if _, err := p.Wait(ctx); err != nil {
			return err
		}
		if err := rec.RecordFrame(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error("Failed to record frame %d: %s", i, err)
			return err
		}
	}
	return nil
}

func writeSummary(path string, summary *summarizer.Summary, fs ports.FileSystem) error {
	formatter, err := summarizer.FormatterForPath(path, summarizer.WithTranslator(l10n.T))
	if err != nil {
		return err
	}
	return summarizer.NewWriter(formatter, fs).Write(path, summary)
}

func listDisplays() error {
	capturer := screencapture.New()
	n := capturer.NumDisplays()
	if n == 0 {
		return errors.New(l10n.T("no active displays"))
	}
	for i := 0; i < n; i++ {
		r, err := capturer.DisplayBounds(i)
		if err != nil {
			return err
		}
		fmt.Println(l10n.F("Display %d: %dx%d at (%d, %d)", i, r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
	}
	return nil
}
