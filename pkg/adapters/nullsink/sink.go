// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"image"

	"github.com/user/framerec/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

func (s *Sink) Enabled() bool                                     { return false }
func (s *Sink) SaveSessionJSON(data []byte) error                 { return nil }
func (s *Sink) SaveRawFrame(index int, img image.Image) error      { return nil }
func (s *Sink) SaveComposedFrame(index int, img image.Image) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
