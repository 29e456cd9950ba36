// Package tools exposes the travel capabilities as schema-described,
// callable tools: argument validation, the upstream call, and response
// normalization live here.
package tools

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
)

// ToolExecutor is the function signature for executing a tool from a raw
// arguments map, the shape a protocol front hands over.
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry manages the registration of AI tools
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool to the registry with its executor
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) {
	r.tools = append(r.tools, tool)
	r.executors[tool.Definition().Name] = executor
}

// GetTools returns all registered tools
func (r *Registry) GetTools() []ai.Tool {
	return r.tools
}

// ExecuteTool runs a registered tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return executor(ctx, args)
}

// register wires a typed tool into genkit plus the map-arguments executor.
func register[In any, Out any](gk *genkit.Genkit, registry *Registry, name, description string,
	execute func(ctx context.Context, input In) (Out, error)) {
	if gk == nil || registry == nil {
		return
	}
	registry.Register(genkit.DefineTool[In, Out](
		gk,
		name,
		description,
		func(ctx *ai.ToolContext, input In) (Out, error) {
			return execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		input, err := decodeArgs[In](args)
		if err != nil {
			return nil, err
		}
		return execute(ctx, input)
	})
}
