package agent

import (
	"context"
	"testing"

	"google.golang.org/genai"
)

func echoTool(name string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{Name: name},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			return &genai.FunctionResponse{
				ID: id, Name: name,
				Response: map[string]any{"output": args["q"]},
			}
		},
	}
}

func TestLibraryDispatch(t *testing.T) {
	lib := NewLibrary([]*Func{echoTool("latest_nav"), echoTool("search_schemes")})

	resp := lib(context.Background(), &genai.FunctionCall{
		ID:   "call-1",
		Name: "search_schemes",
		Args: map[string]any{"q": "midcap"},
	})
	if resp.Name != "search_schemes" || resp.ID != "call-1" {
		t.Errorf("dispatched to (%s, %s) want (search_schemes, call-1)", resp.Name, resp.ID)
	}
	if got := resp.Response["output"]; got != "midcap" {
		t.Errorf("output = %v want midcap", got)
	}

	resp = lib(context.Background(), &genai.FunctionCall{Name: "no_such_tool"})
	if _, ok := resp.Response["error"]; !ok {
		t.Error("unknown tool: expected an error response")
	}
}

func TestNewDeclaration(t *testing.T) {
	decls := NewDeclaration([]*Func{echoTool("a"), echoTool("b")})
	if len(decls) != 2 || decls[0].Name != "a" || decls[1].Name != "b" {
		t.Errorf("declarations = %v want [a b]", decls)
	}
}
