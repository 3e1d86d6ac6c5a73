package api

import (
	"encoding/json"
	"fmt"
)

// Role identifies the sender of a chat message.
type Role string

// Standard message roles.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ThinkingLevel selects how much effort the model spends on its reasoning
// phase when the backend supports graded thinking.
type ThinkingLevel string

// Supported thinking levels.
const (
	ThinkingHigh   ThinkingLevel = "high"
	ThinkingMedium ThinkingLevel = "medium"
	ThinkingLow    ThinkingLevel = "low"
)

// Thinking controls the model's reasoning phase. On the wire it is either a
// boolean or a level string; the zero value marshals as false.
type Thinking struct {
	value any // nil, bool, or ThinkingLevel
}

// ThinkBool returns a Thinking that enables or disables reasoning outright.
func ThinkBool(enabled bool) Thinking {
	return Thinking{value: enabled}
}

// ThinkLevel returns a Thinking pinned to a specific effort level.
func ThinkLevel(level ThinkingLevel) Thinking {
	return Thinking{value: level}
}

// IsZero reports whether the value was never set.
func (t Thinking) IsZero() bool {
	return t.value == nil
}

// MarshalJSON emits a bool or a level string. An unset value emits false.
func (t Thinking) MarshalJSON() ([]byte, error) {
	switch v := t.value.(type) {
	case nil:
		return json.Marshal(false)
	case bool:
		return json.Marshal(v)
	case ThinkingLevel:
		return json.Marshal(string(v))
	default:
		return nil, fmt.Errorf("thinking: unsupported value %T", v)
	}
}

// UnmarshalJSON accepts a bool or a level string.
func (t *Thinking) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		t.value = b
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.value = ThinkingLevel(s)
		return nil
	}
	return fmt.Errorf("thinking: expected bool or level string, got %s", data)
}

// ErrorResponse is the server's error envelope. The server emits it both as
// a complete unary body and as a single frame inside a stream.
type ErrorResponse struct {
	Error string `json:"error"`
}
