package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.FrameRecorded()
	m.FrameRecorded()
	m.FrameDropped()
	m.SessionOpened()

	if got := testutil.ToFloat64(m.FramesRecorded); got != 2 {
		t.Errorf("frames_recorded_total: expected 2, got %v", got)
	}
	if got := testutil.ToFloat64(m.FramesDropped); got != 1 {
		t.Errorf("frames_dropped_total: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(m.SessionsActive); got != 1 {
		t.Errorf("sessions_active: expected 1, got %v", got)
	}

	m.SessionClosed(2048)
	if got := testutil.ToFloat64(m.SessionsActive); got != 0 {
		t.Errorf("sessions_active after close: expected 0, got %v", got)
	}
	if got := testutil.ToFloat64(m.OutputBytes); got != 2048 {
		t.Errorf("output_bytes_total: expected 2048, got %v", got)
	}
}

func TestMetrics_Histograms(t *testing.T) {
	m := New()
	m.ObserveCapture(5 * time.Millisecond)
	m.ObserveCompose(3 * time.Millisecond)
	m.ObserveEncode(time.Millisecond)
	m.ObserveInterval(33 * time.Millisecond)

	count := testutil.CollectAndCount(m.Registry(),
		"framerec_capture_duration_seconds",
		"framerec_compose_duration_seconds",
		"framerec_encode_duration_seconds",
		"framerec_frame_interval_seconds",
	)
	if count != 4 {
		t.Errorf("expected 4 histograms, got %d", count)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.FrameDropped()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"framerec_frames_dropped_total 1",
		"framerec_capture_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.FrameRecorded()
	m.FrameDropped()
	m.ObserveCapture(time.Millisecond)
	m.SessionOpened()
	m.SessionClosed(10)
	if m.Registry() != nil {
		t.Error("expected nil registry")
	}
}
