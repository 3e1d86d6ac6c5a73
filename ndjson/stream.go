package ndjson

import (
	"fmt"
	"io"
)

// Stream is a pull-based, single-pass sequence of classified events read
// from a byte source. It yields buffered complete lines before touching the
// source, so a slow consumer naturally throttles ingestion.
//
// Usage follows the scanner idiom:
//
//	stream := ndjson.NewStream[api.ChatResponse](body)
//	defer stream.Close()
//	for stream.Next() {
//	    ev := stream.Current()
//	    ...
//	}
//	if err := stream.Err(); err != nil {
//	    ...
//	}
//
// A Stream is not restartable and must have a single consumer.
type Stream[M Validatable] struct {
	src io.Reader
	dec Decoder

	cur  Event[M]
	err  error
	done bool

	chunk []byte
}

// NewStream wraps a byte source in an event stream for payload type M.
func NewStream[M Validatable](src io.Reader) *Stream[M] {
	return &Stream[M]{
		src:   src,
		chunk: make([]byte, 4096),
	}
}

// Next advances to the next event. It returns false when the stream ended,
// after which Err distinguishes clean termination from a transport failure.
func (s *Stream[M]) Next() bool {
	if s.done {
		return false
	}
	for {
		if line, ok := s.dec.TakeLine(); ok {
			s.cur = Classify[M](line)
			return true
		}

		n, err := s.src.Read(s.chunk)
		if n > 0 {
			s.dec.Feed(s.chunk[:n])
		}
		switch {
		case err == nil:
		case err == io.EOF:
			// Drain lines completed by the final chunk before flushing.
			if line, ok := s.dec.TakeLine(); ok {
				s.cur = Classify[M](line)
				return true
			}
			s.done = true
			if rest, ok := s.dec.Flush(); ok {
				s.cur = Event[M]{Kind: KindPartial, Partial: rest}
				return true
			}
			return false
		default:
			s.done = true
			s.err = fmt.Errorf("read stream: %w", err)
			return false
		}
	}
}

// Current returns the event produced by the last successful Next call.
func (s *Stream[M]) Current() Event[M] {
	return s.cur
}

// Err returns the terminal transport error, if any.
func (s *Stream[M]) Err() error {
	return s.err
}

// Close releases the underlying source when it is closable. Close is safe
// to call before the stream is drained; a subsequent Next reports the
// source's read-after-close error.
func (s *Stream[M]) Close() error {
	if c, ok := s.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
