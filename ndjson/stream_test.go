package ndjson

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunked delivers one scripted chunk per Read so tests control boundary
// placement.
type chunked struct {
	chunks []string
	err    error
}

func (c *chunked) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		if c.err != nil {
			return 0, c.err
		}
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	if n == len(c.chunks[0]) {
		c.chunks = c.chunks[1:]
	} else {
		c.chunks[0] = c.chunks[0][n:]
	}
	return n, nil
}

func collect(t *testing.T, s *Stream[frame]) []Event[frame] {
	t.Helper()
	var events []Event[frame]
	for s.Next() {
		events = append(events, s.Current())
	}
	return events
}

func TestStreamWholeBody(t *testing.T) {
	body := `{"model":"m","content":"a","done":false}
{"model":"m","content":"b","done":true}
`
	s := NewStream[frame](strings.NewReader(body))
	events := collect(t, s)

	require.NoError(t, s.Err())
	require.Len(t, events, 2)
	assert.Equal(t, "a", events[0].Message.Content)
	assert.Equal(t, "b", events[1].Message.Content)
	assert.True(t, events[1].Message.Done)
}

func TestStreamChunkBoundaryIndependence(t *testing.T) {
	body := `{"model":"m","content":"a","done":false}
{"model":"m","content":"b","done":true}
`
	// Same body, pathological boundary placements.
	splits := [][]string{
		{body},
		{body[:7], body[7:]},
		{body[:40], body[40:]}, // split just before the first newline
		{body[:41], body[41:]}, // split just after it
	}
	bytewise := make([]string, 0, len(body))
	for i := range body {
		bytewise = append(bytewise, body[i:i+1])
	}
	splits = append(splits, bytewise)

	for _, chunks := range splits {
		s := NewStream[frame](&chunked{chunks: chunks})
		events := collect(t, s)

		require.NoError(t, s.Err())
		require.Len(t, events, 2)
		assert.Equal(t, "a", events[0].Message.Content)
		assert.Equal(t, "b", events[1].Message.Content)
	}
}

func TestStreamMixedFrames(t *testing.T) {
	body := `{"model":"m","content":"ok","done":false}
{"error":"backend overloaded"}
garbage line
{"model":"m","content":"","done":true}
`
	s := NewStream[frame](strings.NewReader(body))
	events := collect(t, s)

	require.NoError(t, s.Err())
	require.Len(t, events, 4)
	assert.Equal(t, KindMessage, events[0].Kind)
	assert.Equal(t, KindError, events[1].Kind)
	assert.Equal(t, "backend overloaded", events[1].Err)
	assert.Equal(t, KindPartial, events[2].Kind)
	assert.Equal(t, "garbage line", events[2].Partial)
	assert.Equal(t, KindMessage, events[3].Kind)
}

func TestStreamTrailingResidue(t *testing.T) {
	body := "{\"model\":\"m\",\"content\":\"a\",\"done\":false}\n{\"model\":\"m\",\"cont"
	s := NewStream[frame](strings.NewReader(body))
	events := collect(t, s)

	require.NoError(t, s.Err())
	require.Len(t, events, 2)
	assert.Equal(t, KindMessage, events[0].Kind)
	assert.Equal(t, KindPartial, events[1].Kind)
	assert.Equal(t, `{"model":"m","cont`, events[1].Partial)
	assert.Empty(t, events[1].PartialErr)

	assert.False(t, s.Next())
}

func TestStreamBlankOnlyInput(t *testing.T) {
	s := NewStream[frame](strings.NewReader("\n\n  \n"))
	events := collect(t, s)

	assert.NoError(t, s.Err())
	assert.Empty(t, events)
}

func TestStreamReadError(t *testing.T) {
	cause := errors.New("connection reset")
	src := &chunked{
		chunks: []string{"{\"model\":\"m\",\"content\":\"a\",\"done\":false}\n"},
		err:    cause,
	}
	s := NewStream[frame](src)
	events := collect(t, s)

	require.Len(t, events, 1)
	require.Error(t, s.Err())
	assert.ErrorIs(t, s.Err(), cause)
	assert.False(t, s.Next())
}

type closeRecorder struct {
	io.Reader
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func TestStreamCloseReleasesSource(t *testing.T) {
	src := &closeRecorder{Reader: strings.NewReader("")}
	s := NewStream[frame](src)

	require.NoError(t, s.Close())
	assert.True(t, src.closed)
}
