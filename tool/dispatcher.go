package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mwhitford/ollamakit/api"
)

// Result is the outcome of one dispatched tool call. Every call produces
// exactly one Result; a missing tool, a tool error, and a timeout are all
// resolved locally rather than surfaced as hard failures.
type Result struct {
	// CallID attributes the result back to its originating call.
	CallID string

	// Name is the function name the model asked for.
	Name string

	// Content is the serialized tool output on success, or a descriptive
	// failure message otherwise. It is always suitable for feeding back to
	// the model as a tool result message.
	Content string

	// Err records the local failure, if any: ErrNotFound, ErrTimeout, a
	// context error, or the tool's own error.
	Err error
}

// Message converts the result into a conversation tool-result message.
func (r Result) Message() api.Message {
	return api.NewToolResult(r.Name, r.Content, r.CallID)
}

// Dispatcher resolves collected tool calls against a registry and executes
// them under per-call deadlines.
type Dispatcher struct {
	reg     *Registry
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout sets the per-call execution deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(dp *Dispatcher) { dp.timeout = d }
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(dp *Dispatcher) { dp.logger = l }
}

// NewDispatcher creates a dispatcher over the given registry. The default
// per-call deadline is 30 seconds.
func NewDispatcher(reg *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		reg:     reg,
		timeout: 30 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch executes the tool calls collected during one assistant turn and
// returns one Result per distinct call id, in first-seen order.
//
// Fragments repeating an id are deduplicated keeping the last occurrence,
// since streamed calls accumulate arguments across frames. Resolution is
// strictly by function name; an empty name never resolves and yields a
// not-found result.
func (d *Dispatcher) Dispatch(ctx context.Context, calls []api.ToolCall) []Result {
	distinct := Dedupe(calls)

	results := make([]Result, 0, len(distinct))
	for _, call := range distinct {
		res := d.dispatchOne(ctx, call)
		if res.Err != nil {
			d.logger.Warn("tool call failed",
				slog.String("tool", res.Name),
				slog.String("call_id", res.CallID),
				slog.Any("error", res.Err))
		} else {
			d.logger.Debug("tool call completed",
				slog.String("tool", res.Name),
				slog.String("call_id", res.CallID))
		}
		results = append(results, res)
	}
	return results
}

// Dedupe collapses fragments by call id, retaining the last occurrence of
// each id at its first-seen position.
func Dedupe(calls []api.ToolCall) []api.ToolCall {
	out := make([]api.ToolCall, 0, len(calls))
	index := make(map[string]int, len(calls))
	for _, call := range calls {
		if i, seen := index[call.ID]; seen {
			out[i] = call
			continue
		}
		index[call.ID] = len(out)
		out = append(out, call)
	}
	return out
}

func (d *Dispatcher) dispatchOne(ctx context.Context, call api.ToolCall) Result {
	name := call.Function.Name
	res := Result{CallID: call.ID, Name: name}

	t, ok := d.reg.Lookup(name)
	if !ok || name == "" {
		res.Err = fmt.Errorf("%w: %q", ErrNotFound, name)
		res.Content = fmt.Sprintf("tool %q not found", name)
		return res
	}

	callCtx := ctx
	if d.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	type outcome struct {
		out json.RawMessage
		err error
	}
	// Buffered so an abandoned execution can deliver its late result and
	// exit; the result is discarded, not acted on.
	done := make(chan outcome, 1)
	go func() {
		out, err := t.Call(callCtx, call.Function.Arguments)
		done <- outcome{out: out, err: err}
	}()

	select {
	case <-callCtx.Done():
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			res.Err = fmt.Errorf("%w: %q", ErrTimeout, name)
			res.Content = fmt.Sprintf("tool %q did not complete within the %s deadline", name, d.timeout)
		} else {
			res.Err = callCtx.Err()
			res.Content = fmt.Sprintf("tool %q cancelled: %v", name, callCtx.Err())
		}
	case o := <-done:
		if o.err != nil {
			res.Err = o.err
			res.Content = "tool invocation error: " + o.err.Error()
		} else if len(o.out) == 0 {
			res.Content = "null"
		} else {
			res.Content = string(o.out)
		}
	}
	return res
}
