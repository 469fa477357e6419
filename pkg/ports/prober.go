package ports

// VideoProber inspects an encoded video file.
type VideoProber interface {
	// Probe parses data and describes its first video track.
	Probe(data []byte) (VideoInfo, error)
}

// VideoInfo describes the video track of an encoded file.
type VideoInfo struct {
	Codec       string
	Width       int
	Height      int
	SampleCount int
	DurationMs  int
	Fragmented  bool
}
