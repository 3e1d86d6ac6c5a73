package ollamakit

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/mwhitford/ollamakit/tool"
	"github.com/mwhitford/ollamakit/transport"
)

// DefaultBaseURL is used when neither an option nor OLLAMA_HOST names the
// server.
const DefaultBaseURL = "http://127.0.0.1:11434"

type clientConfig struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	transport  transport.Transport
	tools      *tool.Registry
	logger     *slog.Logger
}

func defaultClientConfig() clientConfig {
	cfg := clientConfig{
		baseURL: DefaultBaseURL,
		logger:  slog.Default(),
	}
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.baseURL = host
	}
	if key := os.Getenv("OLLAMA_API_KEY"); key != "" {
		cfg.apiKey = key
	}
	return cfg
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// WithBaseURL sets the server base URL, overriding OLLAMA_HOST.
func WithBaseURL(u string) ClientOption {
	return func(c *clientConfig) { c.baseURL = u }
}

// WithAPIKey sets the bearer token, overriding OLLAMA_API_KEY.
func WithAPIKey(key string) ClientOption {
	return func(c *clientConfig) { c.apiKey = key }
}

// WithHTTPClient replaces the http.Client used by the default transport.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) { c.httpClient = hc }
}

// WithTransport replaces the transport entirely. Base URL, API key, and
// HTTP client options are ignored when set; use this for mocks and custom
// network layers.
func WithTransport(t transport.Transport) ClientOption {
	return func(c *clientConfig) { c.transport = t }
}

// WithToolRegistry installs a pre-filled tool registry. Without it the
// client starts with an empty one.
func WithToolRegistry(reg *tool.Registry) ClientOption {
	return func(c *clientConfig) { c.tools = reg }
}

// WithLogger sets the structured logger for client diagnostics.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *clientConfig) { c.logger = l }
}
