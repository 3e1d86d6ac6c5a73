// Package api defines the wire types exchanged with an Ollama-compatible
// server: chat and generate requests and responses, model listings, tool
// specifications and tool calls, and the server error envelope.
//
// Types here carry JSON tags only; request construction, transport, and
// stream decoding live in the transport and ndjson packages.
package api
