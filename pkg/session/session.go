// Package session records screen frames into a video file.
//
// A Session is opened with Open, fed frames with RecordFrame or Run, and
// finalized with Stop. Recorder wraps a single Session behind a handle that
// is zero when nothing is recording.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"

	"github.com/user/framerec/pkg/adapters/logger"
	"github.com/user/framerec/pkg/adapters/nullsink"
	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/pacer"
	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
	"github.com/user/framerec/pkg/stages/capture"
	"github.com/user/framerec/pkg/stages/compose"
	"github.com/user/framerec/pkg/stages/encode"
	"github.com/user/framerec/pkg/stages/layout"
	"github.com/user/framerec/pkg/summarizer"
)

// Deps holds the ports a session runs on. Capturer, Renderer, Encoder and
// FileSystem are required; the rest default to no-ops.
type Deps struct {
	Capturer   ports.ScreenCapturer
	Renderer   ports.Renderer
	Encoder    ports.VideoEncoder
	FileSystem ports.FileSystem
	Prober     ports.VideoProber
	Sink       ports.DebugSink
	Logger     ports.Logger
	Metrics    *metrics.Metrics
}

func (d Deps) withDefaults() (Deps, error) {
	switch {
	case d.Capturer == nil:
		return d, fmt.Errorf("%w: capturer", ErrMissingDependency)
	case d.Renderer == nil:
		return d, fmt.Errorf("%w: renderer", ErrMissingDependency)
	case d.Encoder == nil:
		return d, fmt.Errorf("%w: encoder", ErrMissingDependency)
	case d.FileSystem == nil:
		return d, fmt.Errorf("%w: file system", ErrMissingDependency)
	}
	if d.Sink == nil {
		d.Sink = nullsink.New()
	}
	if d.Logger == nil {
		d.Logger = logger.NewNoop()
	}
	return d, nil
}

// Session is one recording. All methods are safe for concurrent use;
// RecordFrame, Run and Stop are serialized.
type Session struct {
	id        string
	opts      Options
	container string
	rect      image.Rectangle
	scale     float64
	layout    pipeline.LayoutResult

	fs      ports.FileSystem
	prober  ports.VideoProber
	logger  ports.Logger
	metrics *metrics.Metrics

	capture pipeline.Stage[pipeline.CaptureInput, pipeline.CaptureResult]
	compose pipeline.Stage[pipeline.ComposeInput, pipeline.ComposeResult]
	encode  *encode.Stage

	mu        sync.Mutex
	closed    bool
	startedAt time.Time
	next      int // next frame slot
	dropped   int
	lastFrame time.Time
	intervals pacer.Stats
}

// Open starts a recording session. It resolves the capture target, computes
// the padding layout and starts the encoder.
func Open(ctx context.Context, deps Deps, opts Options) (*Session, error) {
	deps, err := deps.withDefaults()
	if err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	container, err := ContainerForPath(opts.Name)
	if err != nil {
		return nil, err
	}

	log := deps.Logger.WithComponent("session")

	rect, scale, err := capture.ResolveTarget(deps.Capturer, opts.Target)
	if err != nil {
		return nil, fmt.Errorf("resolve capture target: %w", err)
	}
	log.Debug("Capture target resolved to %v (scale %.2f)", rect, scale)

	lay, err := layout.NewStage().Execute(ctx, pipeline.LayoutInput{
		Source: pipeline.Dimension{Width: rect.Dx(), Height: rect.Dy()},
		Output: pipeline.Dimension{Width: opts.Width, Height: opts.Height},
	})
	if err != nil {
		return nil, err
	}
	log.Debug("Padding source %dx%d by %dx%d", lay.Source.Width, lay.Source.Height, lay.PadW, lay.PadH)

	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		id:        id,
		opts:      opts,
		container: container,
		rect:      rect,
		scale:     scale,
		layout:    lay,
		fs:        deps.FileSystem,
		prober:    deps.Prober,
		logger:    log,
		metrics:   deps.Metrics,
		capture:   capture.NewStage(deps.Capturer, rect, deps.Sink, deps.Logger, deps.Metrics),
		compose:   compose.NewStage(deps.Renderer, lay, deps.Sink, deps.Logger, deps.Metrics),
		encode:    encode.NewStage(deps.Encoder, deps.Logger, deps.Metrics),
	}

	if err := s.encode.Begin(opts.Width, opts.Height, opts.FPS, opts.encoderOptions(container)); err != nil {
		return nil, err
	}

	if deps.Sink.Enabled() {
		if err := deps.Sink.SaveSessionJSON(s.debugJSON()); err != nil {
			log.Warn("Failed to save debug output: %s", err.Error())
		}
	}

	s.startedAt = time.Now()
	s.metrics.SessionOpened()
	log.Info("Session %s opened: %dx%d -> %dx%d", id, rect.Dx(), rect.Dy(), opts.Width, opts.Height)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Options returns the effective options, defaults applied.
func (s *Session) Options() Options {
	return s.opts
}

// Layout returns the padding layout computed at Open.
func (s *Session) Layout() pipeline.LayoutResult {
	return s.layout
}

// Frames returns the number of frames encoded so far.
func (s *Session) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.encode.Frames()
}

// RecordFrame captures, composes and encodes one frame synchronously.
// The frame index advances only when all three steps succeed.
func (s *Session) RecordFrame(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	index := s.next
	frame, err := s.captureAndCompose(ctx, index)
	if err != nil {
		return err
	}
	if err := s.encodeFrame(ctx, index, frame); err != nil {
		return err
	}
	s.next++

	now := time.Now()
	if !s.lastFrame.IsZero() {
		s.observeInterval(index, now.Sub(s.lastFrame))
	}
	s.lastFrame = now
	return nil
}

func (s *Session) captureAndCompose(ctx context.Context, index int) (*image.RGBA, error) {
	captured, err := s.capture.Execute(ctx, pipeline.CaptureInput{Index: index})
	if err != nil {
		return nil, err
	}
	composed, err := s.compose.Execute(ctx, pipeline.ComposeInput{Index: index, Image: captured.Image})
	if err != nil {
		return nil, err
	}
	return composed.Image, nil
}

func (s *Session) encodeFrame(ctx context.Context, index int, img image.Image) error {
	_, err := s.encode.Execute(ctx, pipeline.EncodeInput{
		Index:       index,
		TimestampMs: encode.TimestampMs(index, s.opts.FPS),
		Image:       img,
	})
	return err
}

func (s *Session) observeInterval(index int, elapsed time.Duration) {
	s.intervals.Observe(elapsed, time.Duration(float64(time.Second)/s.opts.FPS))
	s.metrics.ObserveInterval(elapsed)
	s.logger.Debug("Frame %d: %d ms since previous frame", index, elapsed.Milliseconds())
}

type finishResult struct {
	data []byte
	err  error
}

// Stop finalizes the encoder, writes the output file and returns a summary.
// Every step runs even when an earlier one fails; the errors are combined.
// Cancelling ctx kills the encoder. A second call returns ErrSessionClosed.
func (s *Session) Stop(ctx context.Context) (*summarizer.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSessionClosed
	}
	s.closed = true

	var result *multierror.Error

	done := make(chan finishResult, 1)
	go func() {
		data, err := s.encode.Finish()
		done <- finishResult{data: data, err: err}
	}()

	var fin finishResult
	select {
	case fin = <-done:
	case <-ctx.Done():
		s.encode.Abort()
		fin = <-done
		result = multierror.Append(result, ctx.Err())
	}

	data := fin.data
	switch {
	case errors.Is(fin.err, encode.ErrNoFrames):
		s.logger.Warn("No frames were recorded")
	case fin.err != nil:
		result = multierror.Append(result, fin.err)
		data = nil
	}

	video := summarizer.VideoInfo{}
	if len(data) > 0 {
		if err := s.fs.WriteFile(s.opts.Name, data); err != nil {
			result = multierror.Append(result, fmt.Errorf("write output: %w", err))
		} else {
			video.FileSize = int64(len(data))
			s.logger.Info("Output saved to %s (%s)", s.opts.Name, humanize.Bytes(uint64(len(data))))
			s.probe(data, &video)
		}
	}

	s.metrics.SessionClosed(int(video.FileSize))
	s.logger.Info("Session %s stopped after %d frames", s.id, s.encode.Frames())

	return s.summary(video), result.ErrorOrNil()
}

// probe fills video from the container. Probe failures are logged only; not
// every container can be probed.
func (s *Session) probe(data []byte, video *summarizer.VideoInfo) {
	if s.prober == nil {
		return
	}
	info, err := s.prober.Probe(data)
	if err != nil {
		s.logger.Warn("Failed to probe output: %s", err.Error())
		return
	}
	video.Codec = info.Codec
	video.Width = info.Width
	video.Height = info.Height
	video.SampleCount = info.SampleCount
	video.DurationMs = info.DurationMs
	video.Fragmented = info.Fragmented
	s.logger.Debug("Probed output: %s %dx%d, %d samples, %d ms",
		info.Codec, info.Width, info.Height, info.SampleCount, info.DurationMs)

	if frames := s.encode.Frames(); info.SampleCount != frames {
		s.logger.Warn("Output has %d samples but %d frames were encoded", info.SampleCount, frames)
	}
}

func (s *Session) summary(video summarizer.VideoInfo) *summarizer.Summary {
	return summarizer.NewBuilder().
		WithSession(s.id, s.opts.Name, s.opts.Target.String(), s.startedAt).
		WithFrames(s.encode.Frames(), s.dropped).
		WithTiming(time.Since(s.startedAt), s.intervals.Average(), s.intervals.Max).
		WithSettings(summarizer.Settings{
			FPS:          s.opts.FPS,
			Width:        s.opts.Width,
			Height:       s.opts.Height,
			SourceWidth:  s.layout.Source.Width,
			SourceHeight: s.layout.Source.Height,
			PadW:         s.layout.PadW,
			PadH:         s.layout.PadH,
			Scale:        s.scale,
			Container:    s.container,
			Bitrate:      s.opts.Bitrate,
			GOPSize:      s.opts.GOPSize,
			MaxBFrames:   s.opts.MaxBFrames,
			Preset:       s.opts.Preset,
		}).
		WithVideo(video).
		Build()
}

// debugJSON describes the session for the debug sink.
func (s *Session) debugJSON() []byte {
	doc := struct {
		ID        string                `json:"id"`
		Name      string                `json:"name"`
		Container string                `json:"container"`
		FPS       float64               `json:"fps"`
		Target    string                `json:"target"`
		Rect      image.Rectangle       `json:"rect"`
		Scale     float64               `json:"scale"`
		Layout    pipeline.LayoutResult `json:"layout"`
		Encoder   ports.EncoderOptions  `json:"encoder"`
	}{
		ID:        s.id,
		Name:      s.opts.Name,
		Container: s.container,
		FPS:       s.opts.FPS,
		Target:    s.opts.Target.String(),
		Rect:      s.rect,
		Scale:     s.scale,
		Layout:    s.layout,
		Encoder:   s.opts.encoderOptions(s.container),
	}
	data, _ := json.MarshalIndent(doc, "", "  ")
	return data
}
