// Package mp4probe describes the video track of an MP4 or MOV file using mp4ff.
package mp4probe

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/framerec/pkg/ports"
)

var (
	// ErrNoVideoTrack is returned when the file has no video track.
	ErrNoVideoTrack = errors.New("mp4probe: no video track found")

	// ErrNotMP4 is returned for data that does not start with an ISO-BMFF box.
	ErrNotMP4 = errors.New("mp4probe: not an ISO-BMFF file")
)

// Prober implements ports.VideoProber for ISO-BMFF files.
type Prober struct{}

// New creates a new Prober.
func New() *Prober {
	return &Prober{}
}

// IsMP4 reports whether data starts with an ftyp box.
func IsMP4(data []byte) bool {
	return len(data) >= 8 && string(data[4:8]) == "ftyp"
}

// Probe parses data and describes its first video track.
func (p *Prober) Probe(data []byte) (ports.VideoInfo, error) {
	if !IsMP4(data) {
		return ports.VideoInfo{}, ErrNotMP4
	}

	f, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	if f.IsFragmented() {
		return probeFragmented(f)
	}
	if f.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	for _, trak := range f.Moov.Traks {
		info, ok := describeTrack(trak)
		if !ok {
			continue
		}
		if stbl := trak.Mdia.Minf.Stbl; stbl.Stsz != nil {
			info.SampleCount = int(stbl.Stsz.SampleNumber)
		}
		if mdhd := trak.Mdia.Mdhd; mdhd != nil && mdhd.Timescale > 0 {
			info.DurationMs = int(mdhd.Duration * 1000 / uint64(mdhd.Timescale))
		}
		return info, nil
	}
	return ports.VideoInfo{}, ErrNoVideoTrack
}

func probeFragmented(f *mp4.File) (ports.VideoInfo, error) {
	if f.Init == nil || f.Init.Moov == nil {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}

	var (
		info      ports.VideoInfo
		trackID   uint32
		timescale uint32
		found     bool
	)
	for _, trak := range f.Init.Moov.Traks {
		if info, found = describeTrack(trak); found {
			trackID = trak.Tkhd.TrackID
			if trak.Mdia.Mdhd != nil {
				timescale = trak.Mdia.Mdhd.Timescale
			}
			break
		}
	}
	if !found {
		return ports.VideoInfo{}, ErrNoVideoTrack
	}
	info.Fragmented = true

	var trex *mp4.TrexBox
	if mvex := f.Init.Moov.Mvex; mvex != nil {
		for _, t := range mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var totalDur uint64
	for _, seg := range f.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			for _, traf := range frag.Moof.Trafs {
				if traf.Tfhd.TrackID != trackID {
					continue
				}
				samples, err := frag.GetFullSamples(trex)
				if err != nil {
					return info, fmt.Errorf("read fragment samples: %w", err)
				}
				info.SampleCount += len(samples)
				for _, s := range samples {
					totalDur += uint64(s.Dur)
				}
			}
		}
	}
	if timescale > 0 {
		info.DurationMs = int(totalDur * 1000 / uint64(timescale))
	}
	return info, nil
}

// describeTrack returns codec and dimensions for a video track.
func describeTrack(trak *mp4.TrakBox) (ports.VideoInfo, bool) {
	if trak.Mdia == nil || trak.Mdia.Hdlr == nil || trak.Mdia.Hdlr.HandlerType != "vide" {
		return ports.VideoInfo{}, false
	}
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil || trak.Mdia.Minf.Stbl.Stsd == nil {
		return ports.VideoInfo{}, false
	}

	for _, child := range trak.Mdia.Minf.Stbl.Stsd.Children {
		if vse, ok := child.(*mp4.VisualSampleEntryBox); ok {
			return ports.VideoInfo{
				Codec:  vse.Type(),
				Width:  int(vse.Width),
				Height: int(vse.Height),
			}, true
		}
	}
	return ports.VideoInfo{}, false
}

var _ ports.VideoProber = (*Prober)(nil)
