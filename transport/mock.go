package transport

import (
	"context"
	"errors"
	"io"
	"sync"
)

// Mock is a scripted Transport for tests. Replies are queued in order and
// consumed one per call; every request is recorded.
type Mock struct {
	mu       sync.Mutex
	replies  []mockReply
	requests []Request
}

type mockReply struct {
	body   []byte
	chunks [][]byte
	err    error

	// tailErr, when set on a streamed reply, is surfaced by the reader
	// after the chunks are exhausted instead of io.EOF.
	tailErr error
}

// NewMock creates an empty mock transport.
func NewMock() *Mock {
	return &Mock{}
}

// QueueBody scripts a unary response body.
func (m *Mock) QueueBody(body []byte) {
	m.queue(mockReply{body: body})
}

// QueueChunks scripts a streamed response delivered as the given chunks,
// one chunk per read, preserving the scripted boundaries.
func (m *Mock) QueueChunks(chunks ...[]byte) {
	m.queue(mockReply{chunks: chunks})
}

// QueueStreamError scripts a streamed response whose reader fails with err
// after delivering the given chunks.
func (m *Mock) QueueStreamError(err error, chunks ...[]byte) {
	m.queue(mockReply{chunks: chunks, tailErr: err})
}

// QueueError scripts a request-level failure.
func (m *Mock) QueueError(err error) {
	m.queue(mockReply{err: err})
}

// Requests returns the requests seen so far, in order.
func (m *Mock) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Request, len(m.requests))
	copy(out, m.requests)
	return out
}

func (m *Mock) queue(r mockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, r)
}

func (m *Mock) next(req Request) (mockReply, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if len(m.replies) == 0 {
		return mockReply{}, errors.New("mock transport: no reply queued")
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	return r, nil
}

// Do implements Transport.
func (m *Mock) Do(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := m.next(req)
	if err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	return &Response{Body: r.body}, nil
}

// Stream implements Transport.
func (m *Mock) Stream(ctx context.Context, req Request) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := m.next(req)
	if err != nil {
		return nil, err
	}
	if r.err != nil {
		return nil, r.err
	}
	return &chunkReader{chunks: r.chunks, tailErr: r.tailErr}, nil
}

// chunkReader replays scripted chunks one per Read call so tests control
// exactly where chunk boundaries fall.
type chunkReader struct {
	chunks  [][]byte
	tailErr error
	closed  bool
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, errors.New("mock transport: read after close")
	}
	for len(r.chunks) > 0 && len(r.chunks[0]) == 0 {
		r.chunks = r.chunks[1:]
	}
	if len(r.chunks) == 0 {
		if r.tailErr != nil {
			return 0, r.tailErr
		}
		return 0, io.EOF
	}
	n := copy(p, r.chunks[0])
	if n == len(r.chunks[0]) {
		r.chunks = r.chunks[1:]
	} else {
		r.chunks[0] = r.chunks[0][n:]
	}
	return n, nil
}

func (r *chunkReader) Close() error {
	r.closed = true
	return nil
}
