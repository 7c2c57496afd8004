package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/lsp"
)

func TestFindDefinitionUnstartedClient(t *testing.T) {
	client := lsp.NewClient()
	params, _ := json.Marshal(positionParams{Path: "/tmp/a.go", Line: 1, Character: 2})

	_, err := handleFindDefinition(client)(context.Background(), params)
	if !errors.Is(err, lsp.ErrNotStarted) {
		t.Fatalf("expected ErrNotStarted, got %v", err)
	}
}

func TestGetDiagnosticsEmptyWithoutServer(t *testing.T) {
	client := lsp.NewClient()
	params, _ := json.Marshal(pathParams{Path: "/tmp/a.go"})

	result, err := handleGetDiagnostics(client)(context.Background(), params)
	if err != nil {
		t.Fatalf("handleGetDiagnostics: %v", err)
	}
	diags, ok := result.([]lsp.Diagnostic)
	if !ok {
		t.Fatalf("result type = %T, want []lsp.Diagnostic", result)
	}
	if len(diags) != 0 {
		t.Errorf("diags = %v, want empty", diags)
	}
}

func TestRegisterNavigationToolsBindsAllToolNames(t *testing.T) {
	disp := dispatcher.New(nil)
	client := lsp.NewClient()
	RegisterNavigationTools(disp, client)

	params, _ := json.Marshal(pathParams{Path: "/tmp/a.go"})
	for _, name := range []string{
		"find_definition", "find_type_definition", "find_implementations",
		"find_references", "get_document_symbols", "search_workspace_symbols",
		"get_hover", "get_signature_help", "get_diagnostics", "get_code_actions",
		"organize_imports", "format_document", "format_range",
	} {
		_, err := disp.Dispatch(context.Background(), name, params)
		var unknown *dispatcher.UnknownToolError
		if errors.As(err, &unknown) {
			t.Errorf("tool %q was not registered", name)
		}
	}
}
