package session

import (
	"context"
	"sync"

	"github.com/user/framerec/pkg/summarizer"
)

// Recorder manages at most one active session through a handle that is zero
// when nothing is recording. All methods are safe for concurrent use.
type Recorder struct {
	deps Deps

	mu      sync.Mutex
	session *Session
}

// NewRecorder creates a Recorder whose sessions run on deps.
func NewRecorder(deps Deps) *Recorder {
	return &Recorder{deps: deps}
}

// NewRecord opens a session. It fails with ErrAlreadyRecording while another
// session is active, and leaves the handle zero when Open fails.
func (r *Recorder) NewRecord(ctx context.Context, opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil {
		return ErrAlreadyRecording
	}
	s, err := Open(ctx, r.deps, opts)
	if err != nil {
		return err
	}
	r.session = s
	return nil
}

// RecordFrame records one frame into the active session.
func (r *Recorder) RecordFrame(ctx context.Context) error {
	s := r.Session()
	if s == nil {
		return ErrNotRecording
	}
	return s.RecordFrame(ctx)
}

// Stop finalizes the active session and zeroes the handle. With no active
// session it does nothing and returns a nil summary. The handle is zeroed
// even when finalizing fails, since the session cannot be resumed.
func (r *Recorder) Stop(ctx context.Context) (*summarizer.Summary, error) {
	r.mu.Lock()
	s := r.session
	r.session = nil
	r.mu.Unlock()

	if s == nil {
		return nil, nil
	}
	return s.Stop(ctx)
}

// Active reports whether a session is open.
func (r *Recorder) Active() bool {
	return r.Session() != nil
}

// Session returns the active session, or nil.
func (r *Recorder) Session() *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session
}
