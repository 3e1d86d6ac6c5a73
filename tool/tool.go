// Package tool defines the capability contract for model-invoked tools, a
// concurrency-safe registry keyed by unique name, and a dispatcher that
// executes collected tool calls under per-call deadlines and always folds
// the outcome into a result the conversation can continue with.
package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	sj "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/mwhitford/ollamakit/api"
)

// Tool is a locally-executable capability the model can invoke by name.
// Call receives the model-supplied JSON arguments; cancellation and
// deadlines arrive through the context. Implementations must be safe for
// concurrent use.
type Tool interface {
	Name() string
	Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

// SpecProvider is implemented by tools that can describe themselves to the
// model. Tools built with New implement it; hand-rolled tools may opt in.
type SpecProvider interface {
	Spec() api.ToolFunction
}

// Func adapts a plain function into a Tool without schema metadata.
func Func(name string, fn func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)) Tool {
	return funcTool{name: name, fn: fn}
}

type funcTool struct {
	name string
	fn   func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)
}

func (t funcTool) Name() string { return t.name }

func (t funcTool) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	return t.fn(ctx, args)
}

// New builds a Tool from a typed handler. The argument schema is generated
// by reflection over A and advertised to the model; incoming arguments are
// validated against it before the handler runs, so the handler only ever
// sees structurally valid input.
func New[A any](name, description string, fn func(ctx context.Context, args A) (any, error)) (Tool, error) {
	if name == "" {
		return nil, fmt.Errorf("tool name must not be empty")
	}

	// Fields are optional unless tagged jsonschema:"required"; models often
	// omit arguments they consider defaulted.
	reflector := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(new(A))
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("tool %q: marshal schema: %w", name, err)
	}

	doc, err := sj.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("tool %q: parse schema: %w", name, err)
	}
	compiler := sj.NewCompiler()
	if err := compiler.AddResource(name+".schema.json", doc); err != nil {
		return nil, fmt.Errorf("tool %q: add schema resource: %w", name, err)
	}
	compiled, err := compiler.Compile(name + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("tool %q: compile schema: %w", name, err)
	}

	return &typedTool[A]{
		name:        name,
		description: description,
		schemaJSON:  schemaJSON,
		schema:      compiled,
		fn:          fn,
	}, nil
}

type typedTool[A any] struct {
	name        string
	description string
	schemaJSON  json.RawMessage
	schema      *sj.Schema
	fn          func(ctx context.Context, args A) (any, error)
}

func (t *typedTool[A]) Name() string { return t.name }

func (t *typedTool[A]) Spec() api.ToolFunction {
	return api.ToolFunction{
		Name:        t.name,
		Description: t.description,
		Parameters:  t.schemaJSON,
	}
}

func (t *typedTool[A]) Call(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	inst, err := sj.UnmarshalJSON(bytes.NewReader(args))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}
	if err := t.schema.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}

	var typed A
	if err := json.Unmarshal(args, &typed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgs, err)
	}

	out, err := t.fn(ctx, typed)
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("tool %q: marshal result: %w", t.name, err)
	}
	return result, nil
}
