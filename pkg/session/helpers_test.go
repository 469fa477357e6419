package session

import (
	"image"
	"testing"

	"github.com/user/framerec/pkg/adapters/logger"
	"github.com/user/framerec/pkg/metrics"
	"github.com/user/framerec/pkg/mocks"
)

type testDeps struct {
	capturer *mocks.ScreenCapturer
	renderer *mocks.Renderer
	encoder  *mocks.VideoEncoder
	fs       *mocks.FileSystem
	prober   *mocks.VideoProber
	sink     *mocks.DebugSink
	metrics  *metrics.Metrics
}

func newTestDeps(displays ...image.Rectangle) *testDeps {
	return &testDeps{
		capturer: mocks.NewScreenCapturer(displays...),
		renderer: &mocks.Renderer{},
		encoder:  &mocks.VideoEncoder{},
		fs:       mocks.NewFileSystem(),
		prober:   &mocks.VideoProber{},
		sink:     mocks.NewDebugSink(false),
		metrics:  metrics.New(),
	}
}

func (d *testDeps) deps() Deps {
	return Deps{
		Capturer:   d.capturer,
		Renderer:   d.renderer,
		Encoder:    d.encoder,
		FileSystem: d.fs,
		Prober:     d.prober,
		Sink:       d.sink,
		Logger:     logger.NewNoop(),
		Metrics:    d.metrics,
	}
}

// smallOptions records 320x180 so tests stay fast with real renderers.
func smallOptions() Options {
	opts := DefaultOptions()
	opts.Name = "out/test.mp4"
	opts.Width = 320
	opts.Height = 180
	return opts
}

func timestamps(enc *mocks.VideoEncoder) []int {
	out := make([]int, 0, len(enc.EncodeFrameCalls))
	for _, c := range enc.EncodeFrameCalls {
		out = append(out, c.TimestampMs)
	}
	return out
}

func assertSequential(t *testing.T, got []int, fps float64) {
	t.Helper()
	for i, ts := range got {
		want := int(float64(i) * 1000 / fps)
		if ts != want {
			t.Fatalf("frame %d: expected timestamp %d, got %d (all: %v)", i, want, ts, got)
		}
	}
}
