// Package metrics exposes recording statistics as Prometheus collectors.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "framerec"

// frameBuckets cover a few ms up to several frame intervals at 30 fps.
var frameBuckets = []float64{0.001, 0.0025, 0.005, 0.01, 0.02, 0.033, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics holds the collectors for one process on a dedicated registry.
type Metrics struct {
	registry *prometheus.Registry

	CaptureDuration prometheus.Histogram
	ComposeDuration prometheus.Histogram
	EncodeDuration  prometheus.Histogram
	FrameInterval   prometheus.Histogram
	FramesRecorded  prometheus.Counter
	FramesDropped   prometheus.Counter
	SessionsActive  prometheus.Gauge
	OutputBytes     prometheus.Counter
}

// New creates the collectors and registers them with a new registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		CaptureDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "capture_duration_seconds",
			Help:      "Time spent grabbing one frame from the screen",
			Buckets:   frameBuckets,
		}),
		ComposeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compose_duration_seconds",
			Help:      "Time spent padding and scaling one frame",
			Buckets:   frameBuckets,
		}),
		EncodeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Time spent handing one frame to the encoder",
			Buckets:   frameBuckets,
		}),
		FrameInterval: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_interval_seconds",
			Help:      "Wall-clock time between consecutive frame slots",
			Buckets:   frameBuckets,
		}),
		FramesRecorded: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_recorded_total",
			Help:      "Frames handed to the encoder",
		}),
		FramesDropped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_dropped_total",
			Help:      "Frames dropped because the encoder queue was full",
		}),
		SessionsActive: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Recording sessions currently open",
		}),
		OutputBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "output_bytes_total",
			Help:      "Bytes of finished video written",
		}),
	}
}

// Registry returns the registry backing m.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler serving m in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveCapture records the time spent capturing a frame.
func (m *Metrics) ObserveCapture(d time.Duration) {
	if m != nil {
		m.CaptureDuration.Observe(d.Seconds())
	}
}

// ObserveCompose records the time spent composing a frame.
func (m *Metrics) ObserveCompose(d time.Duration) {
	if m != nil {
		m.ComposeDuration.Observe(d.Seconds())
	}
}

// ObserveEncode records the time spent encoding a frame.
func (m *Metrics) ObserveEncode(d time.Duration) {
	if m != nil {
		m.EncodeDuration.Observe(d.Seconds())
	}
}

// ObserveInterval records the time since the previous frame slot.
func (m *Metrics) ObserveInterval(d time.Duration) {
	if m != nil {
		m.FrameInterval.Observe(d.Seconds())
	}
}

// FrameRecorded counts a frame handed to the encoder.
func (m *Metrics) FrameRecorded() {
	if m != nil {
		m.FramesRecorded.Inc()
	}
}

// FrameDropped counts a frame dropped before encoding.
func (m *Metrics) FrameDropped() {
	if m != nil {
		m.FramesDropped.Inc()
	}
}

// SessionOpened marks a session as active.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.SessionsActive.Inc()
	}
}

// SessionClosed marks a session as finished and adds its output size.
func (m *Metrics) SessionClosed(outputBytes int) {
	if m != nil {
		m.SessionsActive.Dec()
		m.OutputBytes.Add(float64(outputBytes))
	}
}

// Serve serves the metrics endpoint on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
