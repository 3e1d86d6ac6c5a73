package ndjson

import "encoding/json"

// Validatable is implemented by per-line payload types. Validate reports an
// error when a decoded value lacks the fields that distinguish a real frame
// from arbitrary JSON that merely unmarshals; Classify treats such values
// as decode failures and continues down the fallback chain.
type Validatable interface {
	Validate() error
}

// Kind tags an Event variant.
type Kind int

// Event variants produced by Classify.
const (
	// KindMessage is a successfully decoded payload.
	KindMessage Kind = iota + 1
	// KindError is a server error envelope.
	KindError
	// KindPartial is a line that matched neither shape, or trailing
	// unterminated text at end of stream.
	KindPartial
)

// Event is one classified frame. Exactly one variant is populated,
// indicated by Kind.
type Event[M Validatable] struct {
	Kind Kind

	// Message is set when Kind == KindMessage.
	Message M

	// Err is the server-reported error text when Kind == KindError.
	Err string

	// Partial is the verbatim line text when Kind == KindPartial.
	Partial string

	// PartialErr describes the original decode failure for a partial line.
	// Empty for trailing residue flushed at end of stream.
	PartialErr string
}

// errorEnvelope matches {"error": "..."}. The pointer distinguishes a
// present-but-empty error from an absent key.
type errorEnvelope struct {
	Error *string `json:"error"`
}

// Classify runs the fallback chain for one trimmed, non-blank line:
//
//  1. decode into the expected payload M; success yields KindMessage
//  2. decode the server error envelope; success yields KindError
//  3. otherwise KindPartial with the raw line and the step-1 failure
//
// A line is never both a valid payload and an error envelope: the payload
// decode wins. Classify never fails; every line maps to exactly one event.
func Classify[M Validatable](line []byte) Event[M] {
	var msg M
	decodeErr := json.Unmarshal(line, &msg)
	if decodeErr == nil {
		decodeErr = msg.Validate()
		if decodeErr == nil {
			return Event[M]{Kind: KindMessage, Message: msg}
		}
	}

	var env errorEnvelope
	if err := json.Unmarshal(line, &env); err == nil && env.Error != nil {
		return Event[M]{Kind: KindError, Err: *env.Error}
	}

	return Event[M]{
		Kind:       KindPartial,
		Partial:    string(line),
		PartialErr: decodeErr.Error(),
	}
}
