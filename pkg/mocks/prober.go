package mocks

import (
	"github.com/user/framerec/pkg/ports"
)

// VideoProber is a mock implementation of ports.VideoProber.
type VideoProber struct {
	ProbeFunc func(data []byte) (ports.VideoInfo, error)

	ProbedBytes int
}

func (m *VideoProber) Probe(data []byte) (ports.VideoInfo, error) {
	m.ProbedBytes = len(data)
	if m.ProbeFunc != nil {
		return m.ProbeFunc(data)
	}
	return ports.VideoInfo{Codec: "avc1"}, nil
}

var _ ports.VideoProber = (*VideoProber)(nil)
