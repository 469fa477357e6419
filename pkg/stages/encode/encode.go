// Package encode implements the video encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/pipeline"
	"github.com/user/framerec/pkg/ports"
)

// ErrNoFrames is returned by Finish when nothing was encoded.
var ErrNoFrames = errors.New("encode: no frames to encode")

// Stage feeds composed frames to a video encoder one at a time.
// It is not safe for concurrent use.
type Stage struct {
	encoder ports.VideoEncoder
	logger  ports.Logger
	metrics *metrics.Metrics
	frames  int
}

// NewStage creates a new encode stage. m may be nil.
func NewStage(encoder ports.VideoEncoder, logger ports.Logger, m *metrics.Metrics) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
		metrics: m,
	}
}

// TimestampMs returns the presentation time of frame index at a constant fps.
func TimestampMs(index int, fps float64) int {
	if fps <= 0 {
		return 0
	}
	return int(float64(index) * 1000 / fps)
}

// Begin starts the encoder.
func (s *Stage) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	s.logger.Info("Starting encoder: %s, %d kbps, preset %s", opts.Container, opts.Bitrate, opts.Preset)
	if err := s.encoder.Begin(width, height, fps, opts); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	s.frames = 0
	return nil
}

// Execute encodes one frame.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.EncodeResult{FramesEncoded: s.frames}, err
	}

	start := time.Now()
	if err := s.encoder.EncodeFrame(input.Image, input.TimestampMs); err != nil {
		return pipeline.EncodeResult{FramesEncoded: s.frames}, fmt.Errorf("encode frame %d at %dms: %w", input.Index, input.TimestampMs, err)
	}
	s.metrics.ObserveEncode(time.Since(start))
	s.metrics.FrameRecorded()
	s.frames++

	return pipeline.EncodeResult{FramesEncoded: s.frames}, nil
}

// Finish flushes the encoder and returns the finished file contents.
// The encoder is finalized even when no frames were encoded.
func (s *Stage) Finish() ([]byte, error) {
	data, err := s.encoder.End()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	if s.frames == 0 {
		return data, ErrNoFrames
	}
	s.logger.Debug("Video encoded: %s", humanize.Bytes(uint64(len(data))))
	return data, nil
}

// Abort discards the encoder output.
func (s *Stage) Abort() {
	s.encoder.Abort()
}

// Frames returns the number of frames encoded since Begin.
func (s *Stage) Frames() int {
	return s.frames
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)
