package mocks

import (
	"image"
	"sync"

	"github.com/user/framerec/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.Mutex

	enabled bool

	SessionJSON    []byte
	RawFrames      map[int]image.Rectangle
	ComposedFrames map[int]image.Rectangle

	// SaveErr is returned from every Save call when set.
	SaveErr error
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:        enabled,
		RawFrames:      make(map[int]image.Rectangle),
		ComposedFrames: make(map[int]image.Rectangle),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveSessionJSON(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SessionJSON = data
	return m.SaveErr
}

func (m *DebugSink) SaveRawFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RawFrames[index] = img.Bounds()
	return m.SaveErr
}

func (m *DebugSink) SaveComposedFrame(index int, img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ComposedFrames[index] = img.Bounds()
	return m.SaveErr
}

// Counts returns the number of raw and composed frames saved.
func (m *DebugSink) Counts() (raw, composed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.RawFrames), len(m.ComposedFrames)
}

var _ ports.DebugSink = (*DebugSink)(nil)
