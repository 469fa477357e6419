package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/framerec/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	mu sync.Mutex

	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	ResizeImageFunc  func(img image.Image, width, height int) *image.RGBA
	EncodePNGFunc    func(img image.Image) ([]byte, error)

	// Recorded calls for verification
	Canvases       []*Canvas
	EncodePNGCalls int
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	c := &Canvas{Width: width, Height: height, Background: bg}
	m.mu.Lock()
	m.Canvases = append(m.Canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) *image.RGBA {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

func (m *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	m.mu.Lock()
	m.EncodePNGCalls++
	m.mu.Unlock()
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas.
type Canvas struct {
	Width      int
	Height     int
	Background color.Color

	Draws []DrawCall
}

// DrawCall records a call to DrawImage.
type DrawCall struct {
	Bounds image.Rectangle
	X, Y   int
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.Draws = append(c.Draws, DrawCall{Bounds: img.Bounds(), X: x, Y: y})
}

func (c *Canvas) ToImage() image.Image {
	return image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))
}

var _ ports.Canvas = (*Canvas)(nil)
