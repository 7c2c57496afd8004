package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/dshills/refactorengine/internal/dispatcher"
	"github.com/dshills/refactorengine/internal/lsp"
)

// RegisterNavigationTools binds the read-only LSP query surface directly
// against a running *lsp.Client: definitions, references, symbols, hover,
// signature help, diagnostics, code actions, and formatting. These report
// locations and protocol data rather than plan.EditPlan edits, so they sit
// alongside RegisterLSPTools instead of going through *lspadapter.Adapter.
// Call this only when lspClient is non-nil and started.
func RegisterNavigationTools(disp *dispatcher.Dispatcher, client *lsp.Client) {
	disp.Register("find_definition", handleFindDefinition(client))
	disp.Register("find_type_definition", handleFindTypeDefinition(client))
	disp.Register("find_implementations", handleFindImplementations(client))
	disp.Register("find_references", handleFindReferences(client))
	disp.Register("get_document_symbols", handleGetDocumentSymbols(client))
	disp.Register("search_workspace_symbols", handleSearchWorkspaceSymbols(client))
	disp.Register("get_hover", handleGetHover(client))
	disp.Register("get_signature_help", handleGetSignatureHelp(client))
	disp.Register("get_diagnostics", handleGetDiagnostics(client))
	disp.Register("get_code_actions", handleGetCodeActions(client))
	disp.Register("organize_imports", handleOrganizeImports(client))
	disp.Register("format_document", handleFormatDocument(client))
	disp.Register("format_range", handleFormatRange(client))
}

type positionParams struct {
	Path      string `json:"path"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

func (p positionParams) pos() lsp.Position {
	return lsp.Position{Line: p.Line, Character: p.Character}
}

func handleFindDefinition(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.GoToDefinition(ctx, params.Path, params.pos())
	}
}

func handleFindTypeDefinition(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.GoToTypeDefinition(ctx, params.Path, params.pos())
	}
}

func handleFindImplementations(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.GoToImplementation(ctx, params.Path, params.pos())
	}
}

func handleFindReferences(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.FindReferences(ctx, params.Path, params.pos())
	}
}

type pathParams struct {
	Path string `json:"path"`
}

func handleGetDocumentSymbols(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params pathParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.DocumentSymbolTree(ctx, params.Path)
	}
}

type workspaceSymbolParams struct {
	Query      string `json:"query"`
	LanguageID string `json:"language_id,omitempty"`
}

func handleSearchWorkspaceSymbols(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params workspaceSymbolParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.WorkspaceSymbols(ctx, params.Query, params.LanguageID)
	}
}

func handleGetHover(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.Hover(ctx, params.Path, params.pos())
	}
}

func handleGetSignatureHelp(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params positionParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.SignatureHelp(ctx, params.Path, params.pos())
	}
}

func handleGetDiagnostics(client *lsp.Client) dispatcher.HandlerFunc {
	return func(_ context.Context, raw json.RawMessage) (any, error) {
		var params pathParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.Diagnostics(params.Path), nil
	}
}

type rangeParams struct {
	Path      string `json:"path"`
	StartLine int    `json:"start_line"`
	StartChar int    `json:"start_character"`
	EndLine   int    `json:"end_line"`
	EndChar   int    `json:"end_character"`
}

func (p rangeParams) rng() lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: p.StartLine, Character: p.StartChar},
		End:   lsp.Position{Line: p.EndLine, Character: p.EndChar},
	}
}

func handleGetCodeActions(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params rangeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		diags := client.Diagnostics(params.Path)
		return client.CodeActions(ctx, params.Path, params.rng(), diags)
	}
}

func handleOrganizeImports(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params pathParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.OrganizeImports(ctx, params.Path)
	}
}

func handleFormatDocument(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params pathParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.Format(ctx, params.Path)
	}
}

func handleFormatRange(client *lsp.Client) dispatcher.HandlerFunc {
	return func(ctx context.Context, raw json.RawMessage) (any, error) {
		var params rangeParams
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, err
		}
		return client.FormatRange(ctx, params.Path, params.rng())
	}
}
