// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framerec/pkg/ports"
)

// Sink saves debug output as files under a base directory:
//
//	<base>/session.json
//	<base>/frames/raw/frame-0000.png
//	<base>/frames/composed/frame-0000.png
type Sink struct {
	baseDir  string
	every    int
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a Sink that keeps every frame.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return NewSampled(baseDir, 1, fs, renderer)
}

// NewSampled creates a Sink that keeps only every n-th frame.
func NewSampled(baseDir string, n int, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	if n < 1 {
		n = 1
	}
	return &Sink{
		baseDir:  baseDir,
		every:    n,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSessionJSON saves the session parameters.
func (s *Sink) SaveSessionJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "session.json"), data)
}

// SaveRawFrame saves a captured frame.
func (s *Sink) SaveRawFrame(index int, img image.Image) error {
	return s.saveFrame("raw", index, img)
}

// SaveComposedFrame saves a padded and scaled frame.
func (s *Sink) SaveComposedFrame(index int, img image.Image) error {
	return s.saveFrame("composed", index, img)
}

func (s *Sink) saveFrame(kind string, index int, img image.Image) error {
	if index%s.every != 0 {
		return nil
	}
	dir := filepath.Join(s.baseDir, "frames", kind)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.renderer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode %s frame %d: %w", kind, index, err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("frame-%04d.png", index)), data)
}

var _ ports.DebugSink = (*Sink)(nil)
