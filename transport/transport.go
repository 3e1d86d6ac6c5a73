// Package transport abstracts HTTP communication with an Ollama-compatible
// server. The default implementation is built on net/http; a scripted mock
// is provided for tests.
package transport

import (
	"context"
	"io"
)

// Request is a transport-agnostic request descriptor. Path is relative to
// the transport's base URL.
type Request struct {
	Method string
	Path   string

	// Body is JSON-encoded by the transport when non-nil.
	Body any
}

// NewRequest creates a GET request for the given path.
func NewRequest(path string) Request {
	return Request{Method: "GET", Path: path}
}

// Post returns a copy of the request with the POST method and body set.
func (r Request) Post(body any) Request {
	r.Method = "POST"
	r.Body = body
	return r
}

// Response is a complete unary response body.
type Response struct {
	Body []byte
}

// Transport sends requests to the server. Implementations construct URLs,
// headers, and authentication; callers never see raw HTTP details.
//
// Implementations must be safe for concurrent use.
type Transport interface {
	// Do sends a unary request and returns the complete body.
	Do(ctx context.Context, req Request) (*Response, error)

	// Stream sends a streaming request and returns the raw chunked body.
	// The caller owns the reader and must close it.
	Stream(ctx context.Context, req Request) (io.ReadCloser, error)
}
