package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Library routes a model's function call to the matching tool. Every
// expert that exposes tools (the Analyst's calculators, the
// facilitator's experts-as-tools) carries one.
type Library func(context.Context, *genai.FunctionCall) *genai.FunctionResponse

// Function is a callable tool an expert can be equipped with: it
// declares its schema to the model and executes the call.
type Function interface {
	Declaration() *genai.FunctionDeclaration
	Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

// NewLibrary builds a dispatcher over a set of tools, keyed by the
// declared tool name. An unknown name travels back to the model as an
// error response rather than failing the chat.
func NewLibrary[T Function](tools []T) Library {
	byName := make(map[string]Function, len(tools))
	for _, tool := range tools {
		byName[tool.Declaration().Name] = tool
	}
	return func(ctx context.Context, call *genai.FunctionCall) *genai.FunctionResponse {
		tool, ok := byName[call.Name]
		if !ok {
			return &genai.FunctionResponse{
				ID:   call.ID,
				Name: call.Name,
				Response: map[string]any{
					"error": fmt.Sprintf("unknown function %s", call.Name),
				},
			}
		}
		return tool.Call(ctx, call.ID, call.Args)
	}
}

// NewDeclaration collects the schemas of a set of tools for an
// expert's Tools config.
func NewDeclaration[T Function](tools []T) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		decls = append(decls, tool.Declaration())
	}
	return decls
}
