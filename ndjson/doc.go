// Package ndjson turns an unpredictably-chunked byte stream of
// newline-delimited JSON into discrete typed events.
//
// The package is three small layers:
//
//   - Decoder buffers raw bytes and extracts complete lines, reassembling
//     lines that straddle chunk boundaries and skipping blank lines.
//   - Classify runs the fallback chain for one line: expected payload,
//     then the server error envelope, then a Partial carrying the raw text.
//   - Stream drives both from an io.Reader as a pull-based, single-pass
//     sequence of events.
//
// A malformed line never aborts the stream; it degrades to an observable
// Partial event the consumer may skip.
package ndjson
