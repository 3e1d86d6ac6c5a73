package api

import (
	"encoding/json"
	"errors"
)

// ChatRequest is the body for POST /api/chat.
type ChatRequest struct {
	// Model names the model to run (e.g. "llama3.2:3b").
	Model string `json:"model"`

	// Messages is the conversation history, oldest first.
	Messages []Message `json:"messages"`

	// Stream selects a streamed NDJSON response when true, a single body
	// when false. Nil defers to the server default.
	Stream *bool `json:"stream,omitempty"`

	// Tools lists the tools the model may invoke.
	Tools []ToolSpec `json:"tools,omitempty"`

	// Think configures the model's reasoning phase.
	Think Thinking `json:"think"`
}

// Message is one conversation turn. Tool results use RoleTool and carry the
// tool name and originating call id alongside the content.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// ToolCalls echoes assistant-issued calls when replaying history.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`

	// Name and ToolCallID are set on tool result messages only.
	Name       string `json:"name,omitempty"`
	ToolCallID string `json:"tool_call_id,omitempty"`
}

// NewMessage creates a plain text message.
func NewMessage(role Role, content string) Message {
	return Message{Role: role, Content: content}
}

// NewToolResult creates a tool result message for the given call id.
func NewToolResult(name, content, callID string) Message {
	return Message{Role: RoleTool, Name: name, Content: content, ToolCallID: callID}
}

// ToolSpec advertises one tool to the model.
type ToolSpec struct {
	Type     string       `json:"type"`
	Function ToolFunction `json:"function"`
}

// NewToolSpec wraps a function description in the standard "function" spec.
func NewToolSpec(fn ToolFunction) ToolSpec {
	return ToolSpec{Type: "function", Function: fn}
}

// ToolFunction describes a callable function: its name, what it does, and a
// JSON Schema for its arguments.
type ToolFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters"`
}

// ToolCall is a model-issued invocation request. Identity is the ID; the
// same id may arrive repeatedly across stream frames as arguments fill in.
type ToolCall struct {
	ID       string       `json:"id"`
	Function FunctionCall `json:"function"`
}

// FunctionCall carries the invocation details of a tool call.
type FunctionCall struct {
	// Index is the position of the function in the originally-sent tool
	// list, when the server reports one.
	Index *int `json:"index,omitempty"`

	// Name may be empty on early fragments of a streamed call.
	Name string `json:"name"`

	// Arguments is the JSON arguments object.
	Arguments json.RawMessage `json:"arguments"`
}

// ChatResponse is one /api/chat frame (streaming) or the complete body
// (unary). Done marks the final frame of an assistant turn.
type ChatResponse struct {
	Model      string      `json:"model"`
	CreatedAt  string      `json:"created_at,omitempty"`
	Message    ChatMessage `json:"message"`
	Done       bool        `json:"done"`
	DoneReason string      `json:"done_reason,omitempty"`
}

// ChatMessage is the assistant content inside a chat frame.
type ChatMessage struct {
	Role     Role   `json:"role"`
	Content  string `json:"content"`
	Thinking string `json:"thinking,omitempty"`

	// ToolCalls holds invocation requests. The server may repeat a call id
	// across frames with progressively completed arguments.
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// Validate reports whether the frame carries the fields that distinguish a
// chat payload from arbitrary JSON. Used by the stream parser's strict
// decode step.
func (r ChatResponse) Validate() error {
	if r.Model == "" {
		return errors.New("chat frame missing model")
	}
	return nil
}
