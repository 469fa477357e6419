package h264encoder

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"

	"github.com/user/framerec/pkg/ports"
)

// Defaults applied when EncoderOptions leaves a field zero. MaxBFrames has
// no default: zero disables B-frames.
const (
	DefaultBitrate = 1200
	DefaultGOPSize = 12
	DefaultPreset  = "ultrafast"
)

// FindFFmpeg locates an ffmpeg binary.
// Priority: 1) custom path, 2) FFMPEG_PATH env, 3) PATH, 4) common locations.
func FindFFmpeg(custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err != nil {
			return "", fmt.Errorf("%w: custom path %s: %v", ErrFFmpegNotFound, custom, err)
		}
		return custom, nil
	}

	if envPath := os.Getenv("FFMPEG_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%w: FFMPEG_PATH %s: %v", ErrFFmpegNotFound, envPath, err)
		}
		return envPath, nil
	}

	execName := "ffmpeg"
	if runtime.GOOS == "windows" {
		execName = "ffmpeg.exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, p := range commonPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", ErrFFmpegNotFound
}

func commonPaths() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files\ffmpeg\bin\ffmpeg.exe`,
			`C:\Program Files (x86)\ffmpeg\bin\ffmpeg.exe`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/usr/bin/ffmpeg",
		}
	default:
		return []string{
			"/usr/bin/ffmpeg",
			"/usr/local/bin/ffmpeg",
			"/snap/bin/ffmpeg",
		}
	}
}

// withDefaults fills zero fields of opts and clamps a negative MaxBFrames to 0.
func withDefaults(opts ports.EncoderOptions) ports.EncoderOptions {
	if opts.Container == "" {
		opts.Container = "mp4"
	}
	if opts.Bitrate <= 0 {
		opts.Bitrate = DefaultBitrate
	}
	if opts.GOPSize <= 0 {
		opts.GOPSize = DefaultGOPSize
	}
	if opts.MaxBFrames < 0 {
		opts.MaxBFrames = 0
	}
	if opts.Preset == "" {
		opts.Preset = DefaultPreset
	}
	return opts
}

// buildArgs returns the ffmpeg command line that reads raw RGBA frames of
// width x height from stdin and writes an H.264 stream in opts.Container to output.
func buildArgs(width, height int, fps float64, opts ports.EncoderOptions, output string) []string {
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.FormatFloat(fps, 'f', -1, 64),
		"-i", "pipe:0",
		"-c:v", "libx264",
		"-preset", opts.Preset,
		"-pix_fmt", "yuv420p",
		"-b:v", fmt.Sprintf("%dk", opts.Bitrate),
		"-g", strconv.Itoa(opts.GOPSize),
		"-bf", strconv.Itoa(opts.MaxBFrames),
	}
	if opts.Container == "mp4" || opts.Container == "mov" {
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, "-f", opts.Container, output)
}
