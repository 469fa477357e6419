package pipeline

import (
	"fmt"
	"image"
	"time"
)

// =============================================================================
// Common Types
// =============================================================================

// Dimension represents width and height.
type Dimension struct {
	Width  int
	Height int
}

func (d Dimension) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// TargetKind selects what a session captures.
type TargetKind int

const (
	// TargetDisplay captures a whole display.
	TargetDisplay TargetKind = iota
	// TargetRegion captures an explicit rectangle.
	TargetRegion
	// TargetWindow captures a top-level window by title.
	TargetWindow
)

func (k TargetKind) String() string {
	switch k {
	case TargetDisplay:
		return "display"
	case TargetRegion:
		return "region"
	case TargetWindow:
		return "window"
	default:
		return fmt.Sprintf("TargetKind(%d)", int(k))
	}
}

// Target describes the screen area to record.
type Target struct {
	Kind    TargetKind
	Display int             // display index for TargetDisplay
	Region  image.Rectangle // virtual-screen rectangle for TargetRegion
	Window  string          // window title for TargetWindow
}

func (t Target) String() string {
	switch t.Kind {
	case TargetRegion:
		return fmt.Sprintf("region %v", t.Region)
	case TargetWindow:
		return fmt.Sprintf("window %q", t.Window)
	default:
		return fmt.Sprintf("display %d", t.Display)
	}
}

// =============================================================================
// Layout Stage Types
// =============================================================================

// LayoutInput contains the sizes the layout is computed from.
type LayoutInput struct {
	Source Dimension // size of the captured area in physical pixels
	Output Dimension // size of the encoded video
}

// LayoutResult describes how a captured frame maps onto an output frame.
type LayoutResult struct {
	// Source is the captured size.
	Source Dimension
	// PadW and PadH are the pixels added to reach the output aspect ratio.
	PadW int
	PadH int
	// Canvas is the padded size, Source plus padding.
	Canvas Dimension
	// Offset is where the source is drawn on the canvas.
	Offset image.Point
	// Output is the final encoded size.
	Output Dimension
}

// =============================================================================
// Capture Stage Types
// =============================================================================

// CaptureInput identifies the frame to capture.
type CaptureInput struct {
	Index int
}

// CaptureResult holds one frame as grabbed from the screen.
type CaptureResult struct {
	Index    int
	Image    *image.RGBA
	Duration time.Duration // time spent grabbing pixels
}

// =============================================================================
// Compose Stage Types
// =============================================================================

// ComposeInput is a captured frame waiting to be padded and scaled.
type ComposeInput struct {
	Index int
	Image image.Image
}

// ComposeResult is a frame at output size.
type ComposeResult struct {
	Index int
	Image *image.RGBA
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput is a composed frame handed to the encoder.
type EncodeInput struct {
	Index       int
	TimestampMs int
	Image       image.Image
}

// EncodeResult reports encoder progress.
type EncodeResult struct {
	FramesEncoded int
}
