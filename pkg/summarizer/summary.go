// Package summarizer provides summary generation for recording sessions.
package summarizer

import "time"

// Summary contains all data collected during a recording session.
type Summary struct {
	GeneratedAt time.Time `json:"generatedAt"`

	Session   SessionInfo   `json:"session"`
	Recording RecordingInfo `json:"recording"`
	Settings  Settings      `json:"settings"`
	Video     VideoInfo     `json:"video"`
}

// SessionInfo identifies the session and its output.
type SessionInfo struct {
	ID        string    `json:"id"`
	Output    string    `json:"output"`
	Target    string    `json:"target"`
	StartedAt time.Time `json:"startedAt"`
}

// RecordingInfo contains frame counts and timing measurements.
type RecordingInfo struct {
	FramesRecorded int           `json:"framesRecorded"`
	FramesDropped  int           `json:"framesDropped"`
	WallDuration   time.Duration `json:"wallDurationNs"`
	AvgInterval    time.Duration `json:"avgIntervalNs"`
	MaxInterval    time.Duration `json:"maxIntervalNs"`
}

// Settings contains the recording configuration.
type Settings struct {
	FPS          float64 `json:"fps"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	SourceWidth  int     `json:"sourceWidth"`
	SourceHeight int     `json:"sourceHeight"`
	PadW         int     `json:"padW"`
	PadH         int     `json:"padH"`
	Scale        float64 `json:"scale"`
	Container    string  `json:"container"`
	Bitrate      int     `json:"bitrateKbps"`
	GOPSize      int     `json:"gopSize"`
	MaxBFrames   int     `json:"maxBFrames"`
	Preset       string  `json:"preset"`
}

// VideoInfo contains information about the output video as probed after
// writing. Probe fields stay zero when the container could not be probed.
type VideoInfo struct {
	FileSize    int64  `json:"fileSize"`
	Codec       string `json:"codec,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	SampleCount int    `json:"sampleCount,omitempty"`
	DurationMs  int    `json:"durationMs,omitempty"`
	Fragmented  bool   `json:"fragmented,omitempty"`
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithSession sets session identification.
func (b *Builder) WithSession(id, output, target string, startedAt time.Time) *Builder {
	b.summary.Session = SessionInfo{
		ID:        id,
		Output:    output,
		Target:    target,
		StartedAt: startedAt,
	}
	return b
}

// WithFrames sets frame counts.
func (b *Builder) WithFrames(recorded, dropped int) *Builder {
	b.summary.Recording.FramesRecorded = recorded
	b.summary.Recording.FramesDropped = dropped
	return b
}

// WithTiming sets wall-clock duration and frame interval statistics.
func (b *Builder) WithTiming(wall, avgInterval, maxInterval time.Duration) *Builder {
	b.summary.Recording.WallDuration = wall
	b.summary.Recording.AvgInterval = avgInterval
	b.summary.Recording.MaxInterval = maxInterval
	return b
}

// WithSettings sets recording settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
