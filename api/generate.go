package api

import "errors"

// GenerateRequest is the body for POST /api/generate.
type GenerateRequest struct {
	// Model names the model to run.
	Model string `json:"model"`

	// Prompt is the primary prompt text.
	Prompt string `json:"prompt,omitempty"`

	// Suffix is appended after the generated text (fill-in-the-middle).
	Suffix string `json:"suffix,omitempty"`

	// Images holds base64-encoded images to include in the prompt.
	Images []string `json:"images,omitempty"`

	// System overrides the model's system message.
	System string `json:"system,omitempty"`

	// Stream selects a streamed NDJSON response when true.
	Stream bool `json:"stream"`

	// Think configures the model's reasoning phase.
	Think *Thinking `json:"think,omitempty"`

	// Raw disables prompt templating when true.
	Raw bool `json:"raw,omitempty"`

	// Options tunes sampling and context behavior.
	Options *GenerateOptions `json:"options,omitempty"`
}

// GenerateOptions tunes text generation. Zero-valued fields are omitted so
// server defaults apply.
type GenerateOptions struct {
	Seed        int      `json:"seed,omitempty"`
	Temperature float64  `json:"temperature,omitempty"`
	TopK        int      `json:"top_k,omitempty"`
	TopP        float64  `json:"top_p,omitempty"`
	MinP        float64  `json:"min_p,omitempty"`
	Stop        []string `json:"stop,omitempty"`
	NumCtx      int      `json:"num_ctx,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

// GenerateResponse is one /api/generate frame (streaming) or the complete
// body (unary). The timing and token-count fields are populated on the
// final frame only.
type GenerateResponse struct {
	Model      string `json:"model"`
	CreatedAt  string `json:"created_at,omitempty"`
	Response   string `json:"response"`
	Thinking   string `json:"thinking,omitempty"`
	Done       bool   `json:"done"`
	DoneReason string `json:"done_reason,omitempty"`

	TotalDuration      int64 `json:"total_duration,omitempty"`
	LoadDuration       int64 `json:"load_duration,omitempty"`
	PromptEvalCount    int64 `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64 `json:"prompt_eval_duration,omitempty"`
	EvalCount          int64 `json:"eval_count,omitempty"`
	EvalDuration       int64 `json:"eval_duration,omitempty"`
}

// Validate reports whether the frame carries the fields that distinguish a
// generate payload from arbitrary JSON.
func (r GenerateResponse) Validate() error {
	if r.Model == "" {
		return errors.New("generate frame missing model")
	}
	return nil
}
