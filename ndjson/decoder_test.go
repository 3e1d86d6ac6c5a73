package ndjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderSingleLine(t *testing.T) {
	var d Decoder
	d.Feed([]byte("{\"a\":1}\n"))

	line, ok := d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(line))

	_, ok = d.TakeLine()
	assert.False(t, ok)
	assert.Equal(t, 0, d.Buffered())
}

func TestDecoderLineSplitAcrossChunks(t *testing.T) {
	var d Decoder
	d.Feed([]byte(`{"a"`))

	_, ok := d.TakeLine()
	require.False(t, ok)

	d.Feed([]byte(":1}\n{\"b\":2}\n"))

	line, ok := d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(line))

	line, ok = d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, `{"b":2}`, string(line))
}

func TestDecoderManyLinesInOneChunk(t *testing.T) {
	var d Decoder
	d.Feed([]byte("one\ntwo\nthree\n"))

	var lines []string
	for {
		line, ok := d.TakeLine()
		if !ok {
			break
		}
		lines = append(lines, string(line))
	}
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestDecoderSkipsBlankLines(t *testing.T) {
	var d Decoder
	d.Feed([]byte("\n\r\n  \nreal\n\n"))

	line, ok := d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, "real", string(line))

	_, ok = d.TakeLine()
	assert.False(t, ok)
}

func TestDecoderTrimsCarriageReturn(t *testing.T) {
	var d Decoder
	d.Feed([]byte("{\"a\":1}\r\n"))

	line, ok := d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(line))
}

func TestDecoderFlushResidue(t *testing.T) {
	var d Decoder
	d.Feed([]byte("complete\nleftover"))

	line, ok := d.TakeLine()
	require.True(t, ok)
	assert.Equal(t, "complete", string(line))

	rest, ok := d.Flush()
	require.True(t, ok)
	assert.Equal(t, "leftover", rest)

	// Flush is one-shot.
	_, ok = d.Flush()
	assert.False(t, ok)
}

func TestDecoderFlushBlankResidue(t *testing.T) {
	var d Decoder
	d.Feed([]byte("done\n   "))

	_, ok := d.TakeLine()
	require.True(t, ok)

	_, ok = d.Flush()
	assert.False(t, ok)
}

func TestDecoderByteAtATime(t *testing.T) {
	input := "{\"n\":1}\n{\"n\":2}\n"
	var d Decoder
	var lines []string
	for i := 0; i < len(input); i++ {
		d.Feed([]byte{input[i]})
		for {
			line, ok := d.TakeLine()
			if !ok {
				break
			}
			lines = append(lines, string(line))
		}
	}
	assert.Equal(t, []string{`{"n":1}`, `{"n":2}`}, lines)
}
