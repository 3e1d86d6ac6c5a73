package ollamakit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/ollamakit/api"
	"github.com/mwhitford/ollamakit/ndjson"
	"github.com/mwhitford/ollamakit/transport"
)

func newMockClient(t *testing.T) (*Client, *transport.Mock) {
	t.Helper()
	mock := transport.NewMock()
	client, err := NewClient(WithTransport(mock))
	require.NoError(t, err)
	return client, mock
}

func TestChatUnary(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueBody([]byte(`{"model":"m","message":{"role":"assistant","content":"hi"},"done":true}`))

	resp, err := client.Chat(context.Background(), api.ChatRequest{
		Model:    "m",
		Messages: []api.Message{api.NewMessage(api.RoleUser, "hello")},
	})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Message.Content)
	assert.True(t, resp.Done)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/chat", reqs[0].Path)

	// The client pins streaming off for unary calls.
	sent, ok := reqs[0].Body.(api.ChatRequest)
	require.True(t, ok)
	require.NotNil(t, sent.Stream)
	assert.False(t, *sent.Stream)
}

func TestChatStreamPinsStreamingOn(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueChunks([]byte("{\"model\":\"m\",\"message\":{\"role\":\"assistant\",\"content\":\"x\"},\"done\":true}\n"))

	stream, err := client.ChatStream(context.Background(), api.ChatRequest{Model: "m"})
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Next())
	ev := stream.Current()
	require.Equal(t, ndjson.KindMessage, ev.Kind)
	assert.Equal(t, "x", ev.Message.Message.Content)
	assert.False(t, stream.Next())
	assert.NoError(t, stream.Err())

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	sent, ok := reqs[0].Body.(api.ChatRequest)
	require.True(t, ok)
	require.NotNil(t, sent.Stream)
	assert.True(t, *sent.Stream)
}

func TestChatStreamChunkBoundaries(t *testing.T) {
	client, mock := newMockClient(t)
	// One frame split mid-token across three chunks.
	mock.QueueChunks(
		[]byte(`{"model":"m","mess`),
		[]byte(`age":{"role":"assistant","content":"split"},`),
		[]byte("\"done\":true}\n"),
	)

	stream, err := client.ChatStream(context.Background(), api.ChatRequest{Model: "m"})
	require.NoError(t, err)
	defer stream.Close()

	require.True(t, stream.Next())
	ev := stream.Current()
	require.Equal(t, ndjson.KindMessage, ev.Kind)
	assert.Equal(t, "split", ev.Message.Message.Content)
}

func TestChatStreamTransportError(t *testing.T) {
	client, mock := newMockClient(t)
	cause := errors.New("connection refused")
	mock.QueueError(cause)

	_, err := client.ChatStream(context.Background(), api.ChatRequest{Model: "m"})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestGenerateUnary(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueBody([]byte(`{"model":"m","response":"out","done":true}`))

	resp, err := client.Generate(context.Background(), api.GenerateRequest{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "out", resp.Response)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/generate", reqs[0].Path)
}

func TestGenerateStream(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueChunks(
		[]byte("{\"model\":\"m\",\"response\":\"a\",\"done\":false}\n"),
		[]byte("{\"model\":\"m\",\"response\":\"b\",\"done\":true}\n"),
	)

	stream, err := client.GenerateStream(context.Background(), api.GenerateRequest{Model: "m", Prompt: "p"})
	require.NoError(t, err)
	defer stream.Close()

	var out string
	for stream.Next() {
		ev := stream.Current()
		if ev.Kind == ndjson.KindMessage {
			out += ev.Message.Response
		}
	}
	require.NoError(t, stream.Err())
	assert.Equal(t, "ab", out)
}

func TestListModels(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueBody([]byte(`{"models":[{"name":"llama3.2:3b"},{"name":"qwen3:8b"}]}`))

	resp, err := client.ListModels(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Models, 2)
	assert.Equal(t, "llama3.2:3b", resp.Models[0].Name)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/tags", reqs[0].Path)
	assert.Equal(t, "GET", reqs[0].Method)
}

func TestListRunningModels(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueBody([]byte(`{"models":[{"model":"llama3.2:3b","size_vram":4096}]}`))

	resp, err := client.ListRunningModels(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Models, 1)
	assert.Equal(t, "llama3.2:3b", resp.Models[0].Model)
	assert.Equal(t, int64(4096), resp.Models[0].SizeVRAM)

	reqs := mock.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/ps", reqs[0].Path)
}

func TestUnaryEmptyBody(t *testing.T) {
	client, mock := newMockClient(t)
	mock.QueueBody(nil)

	_, err := client.ListModels(context.Background())
	assert.ErrorIs(t, err, ErrMissingBody)
}

func TestNewClientRejectsBadBaseURL(t *testing.T) {
	_, err := NewClient(WithBaseURL("not a url"))
	assert.ErrorIs(t, err, ErrInvalidBaseURL)
}

type stubTool struct{}

func (stubTool) Name() string { return "stub" }

func (stubTool) Call(context.Context, json.RawMessage) (json.RawMessage, error) {
	return json.RawMessage(`"ok"`), nil
}

func TestRegisterTool(t *testing.T) {
	client, _ := newMockClient(t)

	require.NoError(t, client.RegisterTool(stubTool{}))
	assert.Equal(t, []string{"stub"}, client.Tools().Names())

	require.NoError(t, client.UnregisterTool("stub"))
	assert.Empty(t, client.Tools().Names())
}
