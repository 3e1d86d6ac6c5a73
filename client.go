package ollamakit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mwhitford/ollamakit/api"
	"github.com/mwhitford/ollamakit/ndjson"
	"github.com/mwhitford/ollamakit/tool"
	"github.com/mwhitford/ollamakit/transport"
)

// ChatStream is a pull-based sequence of chat frames.
type ChatStream = ndjson.Stream[api.ChatResponse]

// GenerateStream is a pull-based sequence of generate frames.
type GenerateStream = ndjson.Stream[api.GenerateResponse]

// Client talks to an Ollama-compatible server. It is safe for concurrent
// use; each streaming call returns its own single-consumer stream.
type Client struct {
	transport transport.Transport
	tools     *tool.Registry
	logger    *slog.Logger
}

// NewClient creates a client. Without options the server address comes
// from OLLAMA_HOST (default http://127.0.0.1:11434) and the bearer token
// from OLLAMA_API_KEY.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	t := cfg.transport
	if t == nil {
		var httpOpts []transport.HTTPOption
		if cfg.apiKey != "" {
			httpOpts = append(httpOpts, transport.WithAPIKey(cfg.apiKey))
		}
		if cfg.httpClient != nil {
			httpOpts = append(httpOpts, transport.WithHTTPClient(cfg.httpClient))
		}
		ht, err := transport.NewHTTP(cfg.baseURL, httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
		}
		t = ht
	}

	tools := cfg.tools
	if tools == nil {
		tools = tool.NewRegistry()
	}

	return &Client{
		transport: t,
		tools:     tools,
		logger:    cfg.logger,
	}, nil
}

// RegisterTool adds a tool to the client's registry.
func (c *Client) RegisterTool(t tool.Tool) error {
	return c.tools.Register(t)
}

// UnregisterTool removes a tool from the client's registry.
func (c *Client) UnregisterTool(name string) error {
	return c.tools.Unregister(name)
}

// Tools returns the client's tool registry.
func (c *Client) Tools() *tool.Registry {
	return c.tools
}

// Chat sends a non-streaming chat request and returns the complete
// response. The request's Stream field is forced to false.
func (c *Client) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	streaming := false
	req.Stream = &streaming

	var resp api.ChatResponse
	if err := c.doJSON(ctx, "chat", transport.NewRequest("/api/chat").Post(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChatStream sends a streaming chat request. The returned stream must be
// drained by a single consumer and closed when done.
func (c *Client) ChatStream(ctx context.Context, req api.ChatRequest) (*ChatStream, error) {
	streaming := true
	req.Stream = &streaming

	body, err := c.transport.Stream(ctx, transport.NewRequest("/api/chat").Post(req))
	if err != nil {
		return nil, newError("chat stream", err)
	}
	c.logger.Debug("chat stream opened", slog.String("model", req.Model))
	return ndjson.NewStream[api.ChatResponse](body), nil
}

// Generate sends a non-streaming generate request.
func (c *Client) Generate(ctx context.Context, req api.GenerateRequest) (*api.GenerateResponse, error) {
	req.Stream = false

	var resp api.GenerateResponse
	if err := c.doJSON(ctx, "generate", transport.NewRequest("/api/generate").Post(req), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GenerateStream sends a streaming generate request. The returned stream
// must be drained by a single consumer and closed when done.
func (c *Client) GenerateStream(ctx context.Context, req api.GenerateRequest) (*GenerateStream, error) {
	req.Stream = true

	body, err := c.transport.Stream(ctx, transport.NewRequest("/api/generate").Post(req))
	if err != nil {
		return nil, newError("generate stream", err)
	}
	c.logger.Debug("generate stream opened", slog.String("model", req.Model))
	return ndjson.NewStream[api.GenerateResponse](body), nil
}

// ListModels returns the models available on the server.
func (c *Client) ListModels(ctx context.Context) (*api.ListModelsResponse, error) {
	var resp api.ListModelsResponse
	if err := c.doJSON(ctx, "list models", transport.NewRequest("/api/tags"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListRunningModels returns the models currently loaded in memory.
func (c *Client) ListRunningModels(ctx context.Context) (*api.ListRunningModelsResponse, error) {
	var resp api.ListRunningModelsResponse
	if err := c.doJSON(ctx, "list running models", transport.NewRequest("/api/ps"), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) doJSON(ctx context.Context, op string, req transport.Request, out any) error {
	resp, err := c.transport.Do(ctx, req)
	if err != nil {
		return newError(op, err)
	}
	if len(resp.Body) == 0 {
		return newError(op, ErrMissingBody)
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return newError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
