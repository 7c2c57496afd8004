package lspadapter

import (
	"strings"

	"github.com/dshills/refactorengine/internal/lsp"
)

// Adapter wraps an *lsp.Client and converts between its protocol types and
// this module's plan package.
type Adapter struct {
	client *lsp.Client
}

// New builds an Adapter around an already-initialized LSP client.
func New(client *lsp.Client) *Adapter {
	return &Adapter{client: client}
}

func uriToPath(uri lsp.DocumentURI) string {
	return strings.TrimPrefix(string(uri), "file://")
}

func pathToURI(path string) lsp.DocumentURI {
	if strings.HasPrefix(path, "file://") {
		return lsp.DocumentURI(path)
	}
	return lsp.DocumentURI("file://" + path)
}
