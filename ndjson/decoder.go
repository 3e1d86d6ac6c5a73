package ndjson

import (
	"bytes"
	"strings"
)

// Decoder buffers incoming byte chunks and extracts newline-delimited
// lines. Chunk boundaries need not align with line boundaries; a line split
// across several Feed calls is reassembled.
//
// Decoder is not safe for concurrent use.
type Decoder struct {
	buf []byte

	// scan marks how far buf has been searched for a newline, so repeated
	// Feed/TakeLine cycles never rescan inspected bytes.
	scan int
}

// Feed appends a chunk to the internal buffer.
func (d *Decoder) Feed(p []byte) {
	d.buf = append(d.buf, p...)
}

// TakeLine returns the next complete line with surrounding whitespace
// trimmed, or false when no full line is buffered. Blank lines are consumed
// silently.
//
// The returned slice aliases the internal buffer and is valid until the
// next Feed call.
func (d *Decoder) TakeLine() ([]byte, bool) {
	for {
		i := bytes.IndexByte(d.buf[d.scan:], '\n')
		if i < 0 {
			d.scan = len(d.buf)
			return nil, false
		}
		end := d.scan + i
		line := bytes.TrimSpace(d.buf[:end])
		d.buf = d.buf[end+1:]
		d.scan = 0
		if len(line) == 0 {
			continue
		}
		return line, true
	}
}

// Flush returns any non-blank residue left after the input ended without a
// trailing newline, then clears the buffer. It returns false when the
// residue is blank. Successive calls after the first return false.
func (d *Decoder) Flush() (string, bool) {
	rest := strings.TrimSpace(string(d.buf))
	d.buf = nil
	d.scan = 0
	if rest == "" {
		return "", false
	}
	return rest, true
}

// Buffered reports how many bytes are held without a completed line.
func (d *Decoder) Buffered() int {
	return len(d.buf)
}
