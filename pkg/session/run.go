package session

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/user/framerec/pkg/pipeline"
)

// Pacer blocks until the next frame slot and reports the time since the
// previous one. *pacer.Pacer implements it.
type Pacer interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// Run records frames until frames slots have passed (frames <= 0 means until
// ctx is cancelled). Capture runs on the pacer's schedule and never waits for
// the encoder: when QueueDepth frames are already waiting, the new frame is
// dropped and the encoder repeats the previous image for that slot, so the
// video keeps wall-clock timing. Frames already queued are encoded even
// after ctx is cancelled.
//
// Run returns ctx.Err() when cancelled, or the first capture or encode error.
func (s *Session) Run(ctx context.Context, frames int, p Pacer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrSessionClosed
	}

	queue := make(chan pipeline.ComposeResult, s.opts.QueueDepth)
	g, gctx := errgroup.WithContext(ctx)
	base := s.next

	// end is one past the last slot captured. It is written before queue is
	// closed and read by encodeLoop only after the queue is drained.
	end := base

	g.Go(func() error {
		defer close(queue)
		return s.captureLoop(gctx, base, frames, p, queue, &end)
	})

	g.Go(func() error {
		return s.encodeLoop(context.WithoutCancel(ctx), queue, &end)
	})

	err := g.Wait()
	s.lastFrame = time.Now()
	if err != nil {
		return err
	}
	return ctx.Err()
}

func (s *Session) captureLoop(ctx context.Context, base, frames int, p Pacer, queue chan<- pipeline.ComposeResult, end *int) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		elapsed, err := p.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		index := base + i
		if i > 0 {
			s.observeInterval(index, elapsed)
		}

		img, err := s.captureAndCompose(ctx, index)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		*end = index + 1

		select {
		case queue <- pipeline.ComposeResult{Index: index, Image: img}:
		default:
			s.dropped++
			s.metrics.FrameDropped()
			s.logger.Warn("Encoder queue full, dropped frame %d", index)
		}
	}
	return nil
}

// encodeLoop drains queue. Slots skipped by dropped frames, including those
// after the last queued frame up to end, are filled with the previous image.
func (s *Session) encodeLoop(ctx context.Context, queue <-chan pipeline.ComposeResult, end *int) error {
	var last *pipeline.ComposeResult
	for frame := range queue {
		if last != nil {
			for s.next < frame.Index {
				if err := s.encodeFrame(ctx, s.next, last.Image); err != nil {
					return err
				}
				s.next++
			}
		}
		s.next = frame.Index
		if err := s.encodeFrame(ctx, frame.Index, frame.Image); err != nil {
			return err
		}
		s.next++
		last = &frame
	}

	if last == nil {
		return nil
	}
	for s.next < *end {
		if err := s.encodeFrame(ctx, s.next, last.Image); err != nil {
			return err
		}
		s.next++
	}
	return nil
}
