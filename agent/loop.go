// Package agent runs the conversation loop: send history, drain the
// streamed assistant turn, execute collected tool calls, feed results back,
// and repeat until the model answers without requesting tools.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mwhitford/ollamakit"
	"github.com/mwhitford/ollamakit/api"
	"github.com/mwhitford/ollamakit/ndjson"
	"github.com/mwhitford/ollamakit/tool"
)

// ErrMaxRounds indicates the loop hit its configured round bound while the
// model was still requesting tools.
var ErrMaxRounds = errors.New("maximum tool rounds reached")

// Loop orchestrates request/drain/dispatch/resend cycles for one
// conversation. The history it mutates lives only for the duration of Run;
// the caller owns the returned slice.
type Loop struct {
	client      *ollamakit.Client
	dispatcher  *tool.Dispatcher
	maxRounds   int
	toolTimeout time.Duration
	think       api.Thinking
	logger      *slog.Logger
	onContent   func(string)
}

// Option configures a Loop.
type Option func(*Loop)

// WithMaxRounds bounds how many tool-dispatch rounds may run before the
// loop gives up with ErrMaxRounds. Zero, the default, means unbounded.
func WithMaxRounds(n int) Option {
	return func(l *Loop) { l.maxRounds = n }
}

// WithToolTimeout sets the per-call deadline used when dispatching tools.
func WithToolTimeout(d time.Duration) Option {
	return func(l *Loop) { l.toolTimeout = d }
}

// WithDispatcher replaces the dispatcher entirely.
func WithDispatcher(d *tool.Dispatcher) Option {
	return func(l *Loop) { l.dispatcher = d }
}

// WithThinking sets the reasoning configuration sent with each request.
func WithThinking(t api.Thinking) Option {
	return func(l *Loop) { l.think = t }
}

// WithLogger sets the structured logger for loop diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithContentFunc registers a callback invoked with each assistant text
// fragment as it streams in, for live display.
func WithContentFunc(fn func(string)) Option {
	return func(l *Loop) { l.onContent = fn }
}

// NewLoop creates a conversation loop over the client and its tool
// registry.
func NewLoop(client *ollamakit.Client, opts ...Option) *Loop {
	l := &Loop{
		client: client,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.dispatcher == nil {
		dispatchOpts := []tool.Option{tool.WithLogger(l.logger)}
		if l.toolTimeout > 0 {
			dispatchOpts = append(dispatchOpts, tool.WithTimeout(l.toolTimeout))
		}
		l.dispatcher = tool.NewDispatcher(client.Tools(), dispatchOpts...)
	}
	return l
}

// Run drives the conversation from the given history until the model
// produces an assistant turn with no tool calls, then returns the full
// history including every assistant and tool-result message appended along
// the way.
//
// All distinct tool calls collected in a turn are dispatched and all their
// results appended, in call order, before the history is resent. Tool
// failures never abort the run; transport failures do, returning the
// history accumulated so far alongside the error.
func (l *Loop) Run(ctx context.Context, model string, history []api.Message) ([]api.Message, error) {
	rounds := 0
	for {
		req := api.ChatRequest{
			Model:    model,
			Messages: history,
			Tools:    l.client.Tools().Specs(),
			Think:    l.think,
		}

		stream, err := l.client.ChatStream(ctx, req)
		if err != nil {
			return history, err
		}
		turn, err := l.drain(stream)
		stream.Close()
		if err != nil {
			return history, err
		}

		calls := tool.Dedupe(turn.calls)
		history = append(history, api.Message{
			Role:      api.RoleAssistant,
			Content:   turn.content.String(),
			ToolCalls: calls,
		})

		if len(calls) == 0 {
			l.logger.Debug("conversation complete", slog.Int("rounds", rounds))
			return history, nil
		}

		rounds++
		if l.maxRounds > 0 && rounds > l.maxRounds {
			return history, fmt.Errorf("%w (%d)", ErrMaxRounds, l.maxRounds)
		}

		l.logger.Debug("dispatching tool calls",
			slog.Int("count", len(calls)),
			slog.Int("round", rounds))
		for _, res := range l.dispatcher.Dispatch(ctx, calls) {
			history = append(history, res.Message())
		}
	}
}

// assistantTurn accumulates one drained turn: the streamed text fragments
// and every tool-call fragment observed, in arrival order.
type assistantTurn struct {
	content strings.Builder
	calls   []api.ToolCall
}

func (l *Loop) drain(stream *ollamakit.ChatStream) (*assistantTurn, error) {
	turn := &assistantTurn{}
	for stream.Next() {
		ev := stream.Current()
		switch ev.Kind {
		case ndjson.KindMessage:
			resp := ev.Message
			if resp.Message.Content != "" {
				turn.content.WriteString(resp.Message.Content)
				if l.onContent != nil {
					l.onContent(resp.Message.Content)
				}
			}
			turn.calls = append(turn.calls, resp.Message.ToolCalls...)
			if resp.Done {
				return turn, nil
			}
		case ndjson.KindError:
			l.logger.Warn("server error frame", slog.String("error", ev.Err))
		case ndjson.KindPartial:
			l.logger.Debug("unparsed frame",
				slog.String("partial", ev.Partial),
				slog.String("error", ev.PartialErr))
		}
	}
	return turn, stream.Err()
}
