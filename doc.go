// Package ollamakit is a Go client for Ollama-compatible text-generation
// servers, with streaming NDJSON decoding and local tool execution.
//
// Each subpackage can be used independently:
//
//   - api: wire types for chat, generate, and model-listing endpoints
//   - ndjson: incremental NDJSON frame decoding and event classification
//   - transport: HTTP transport abstraction with a scripted mock
//   - tool: tool contract, registry, and dispatch with deadlines
//   - agent: the request/drain/dispatch/resend conversation loop
//   - config: file-based configuration with hot reload
//
// # Quick start
//
// Streaming chat:
//
//	client, _ := ollamakit.NewClient()
//	stream, err := client.ChatStream(ctx, api.ChatRequest{
//	    Model:    "llama3.2:3b",
//	    Messages: []api.Message{api.NewMessage(api.RoleUser, "hello")},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//	for stream.Next() {
//	    ev := stream.Current()
//	    if ev.Kind == ndjson.KindMessage {
//	        fmt.Print(ev.Message.Message.Content)
//	    }
//	}
//
// Tool calling with the conversation loop:
//
//	fib, _ := tool.New("fibonacci", "Compute fibonacci(n)", fibHandler)
//	client.RegisterTool(fib)
//	loop := agent.NewLoop(client, agent.WithMaxRounds(8))
//	history, err := loop.Run(ctx, "llama3.2:3b", []api.Message{
//	    api.NewMessage(api.RoleUser, "compute fibonacci(31)"),
//	})
//
// # Design notes
//
// Parse-level failures never terminate an event stream; malformed frames
// degrade to observable Partial events. Transport failures do terminate it.
// Tool failures, timeouts included, are folded into tool-result messages
// and fed back to the model rather than raised to the caller.
package ollamakit
