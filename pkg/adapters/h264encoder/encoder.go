// Package h264encoder encodes frames to H.264 by piping raw RGBA into an
// ffmpeg process running libx264.
package h264encoder

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/image/draw"

	"github.com/user/framerec/pkg/ports"
)

// Encoder implements ports.VideoEncoder with an external ffmpeg process.
type Encoder struct {
	ffmpegPath string

	mu         sync.Mutex
	width      int
	height     int
	opts       ports.EncoderOptions
	cmd        *exec.Cmd
	stdin      io.WriteCloser
	stderr     lockedBuffer
	tempPath   string
	scratch    *image.RGBA
	frameCount int
}

// New creates an encoder. An empty ffmpegPath searches FFMPEG_PATH, PATH
// and common install locations when Begin is called.
func New(ffmpegPath string) *Encoder {
	return &Encoder{ffmpegPath: ffmpegPath}
}

// IsAvailable reports whether an ffmpeg binary can be found.
func IsAvailable(ffmpegPath string) bool {
	_, err := FindFFmpeg(ffmpegPath)
	return err == nil
}

// Begin starts ffmpeg.
func (e *Encoder) Begin(width, height int, fps float64, opts ports.EncoderOptions) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd != nil {
		return ErrAlreadyStarted
	}
	if width <= 0 || height <= 0 || width%2 != 0 || height%2 != 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if fps <= 0 {
		return fmt.Errorf("h264encoder: invalid frame rate %v", fps)
	}

	path, err := FindFFmpeg(e.ffmpegPath)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp("", "framerec_*.video")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tmpFile.Name()
	tmpFile.Close()

	opts = withDefaults(opts)
	cmd := exec.Command(path, buildArgs(width, height, fps, opts, tempPath)...)
	e.stderr.Reset()
	cmd.Stderr = &e.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("get stdin pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("start ffmpeg: %w", err)
	}

	e.width, e.height, e.opts = width, height, opts
	e.cmd, e.stdin, e.tempPath = cmd, stdin, tempPath
	e.scratch = nil
	e.frameCount = 0
	return nil
}

// EncodeFrame writes one frame to ffmpeg. Frames are constant frame rate,
// so timestampMs is not sent to ffmpeg; each frame lasts 1/fps.
func (e *Encoder) EncodeFrame(img image.Image, timestampMs int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stdin == nil {
		return ErrNotInitialized
	}

	if _, err := e.stdin.Write(e.rawRGBA(img)); err != nil {
		return fmt.Errorf("write frame %d at %dms: %w%s", e.frameCount, timestampMs, err, e.stderrSuffix())
	}
	e.frameCount++
	return nil
}

// rawRGBA returns tightly packed RGBA bytes of the encoder's frame size.
func (e *Encoder) rawRGBA(img image.Image) []byte {
	want := image.Rect(0, 0, e.width, e.height)
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect == want && rgba.Stride == 4*e.width {
		return rgba.Pix
	}
	if e.scratch == nil {
		e.scratch = image.NewRGBA(want)
	}
	draw.Draw(e.scratch, want, img, img.Bounds().Min, draw.Src)
	return e.scratch.Pix
}

// End closes ffmpeg's input so it flushes delayed frames and writes the
// container trailer, then returns the finished file. The lock is released
// while ffmpeg drains so Abort can kill a stuck process.
func (e *Encoder) End() ([]byte, error) {
	e.mu.Lock()
	if e.stdin == nil {
		e.mu.Unlock()
		return nil, ErrNotInitialized
	}
	cmd := e.cmd
	e.stdin.Close()
	e.stdin = nil
	e.mu.Unlock()

	waitErr := cmd.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	defer e.reset()

	if waitErr != nil {
		return nil, fmt.Errorf("ffmpeg encoding failed: %w%s", waitErr, e.stderrSuffix())
	}
	data, err := os.ReadFile(e.tempPath)
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	return data, nil
}

// Abort kills ffmpeg and discards its output. Safe to call at any time,
// including while End is waiting for ffmpeg.
func (e *Encoder) Abort() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cmd == nil {
		return
	}
	if e.stdin == nil {
		// End owns the process; killing it makes End return.
		if e.cmd.Process != nil {
			e.cmd.Process.Kill()
		}
		return
	}
	e.stdin.Close()
	e.stdin = nil
	if e.cmd.Process != nil {
		e.cmd.Process.Kill()
	}
	e.cmd.Wait()
	e.reset()
}

// FrameCount returns the number of frames written since Begin.
func (e *Encoder) FrameCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frameCount
}

func (e *Encoder) reset() {
	if e.tempPath != "" {
		os.Remove(e.tempPath)
	}
	e.cmd = nil
	e.tempPath = ""
	e.scratch = nil
}

func (e *Encoder) stderrSuffix() string {
	msg := strings.TrimSpace(e.stderr.String())
	if msg == "" {
		return ""
	}
	return "\nstderr: " + msg
}

var _ ports.VideoEncoder = (*Encoder)(nil)

// lockedBuffer collects ffmpeg's stderr. exec copies into it from its own
// goroutine while EncodeFrame may read it after a failed write.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
