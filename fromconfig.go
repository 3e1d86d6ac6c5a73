package ollamakit

import (
	"github.com/mwhitford/ollamakit/config"
)

// NewClientFromConfig builds a client from a loaded configuration. Options
// passed here are applied after the config and take precedence over it.
func NewClientFromConfig(cfg config.Config, opts ...ClientOption) (*Client, error) {
	base := make([]ClientOption, 0, len(opts)+2)
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		base = append(base, WithAPIKey(cfg.APIKey))
	}
	return NewClient(append(base, opts...)...)
}
