package session

import "errors"

var (
	// ErrInvalidOptions is returned by Open when options fail validation.
	ErrInvalidOptions = errors.New("session: invalid options")

	// ErrMissingDependency is returned by Open when a required port is nil.
	ErrMissingDependency = errors.New("session: missing dependency")

	// ErrUnsupportedContainer is returned for output names whose extension maps to no container.
	ErrUnsupportedContainer = errors.New("session: unsupported container")

	// ErrSessionClosed is returned by operations on a stopped session.
	ErrSessionClosed = errors.New("session: session closed")

	// ErrAlreadyRecording is returned by Recorder.NewRecord while a session is active.
	ErrAlreadyRecording = errors.New("session: already recording")

	// ErrNotRecording is returned by Recorder.RecordFrame when no session is active.
	ErrNotRecording = errors.New("session: not recording")
)
