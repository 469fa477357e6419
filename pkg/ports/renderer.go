package ports

import (
	"image"
	"image/color"
)

// Renderer abstracts the image operations used to build output frames.
type Renderer interface {
	// CreateCanvas creates a new drawing canvas filled with bg.
	CreateCanvas(width, height int, bg color.Color) Canvas

	// ResizeImage scales img to exactly width x height.
	ResizeImage(img image.Image, width, height int) *image.RGBA

	// EncodePNG encodes img as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}

// Canvas provides drawing operations for compositing images.
type Canvas interface {
	// DrawImage draws img with its top-left corner at (x, y).
	DrawImage(img image.Image, x, y int)

	// ToImage returns the canvas contents.
	ToImage() image.Image
}
