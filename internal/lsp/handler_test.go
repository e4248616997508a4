package lsp_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flowc/internal/ir"
	"flowc/internal/lsp"
)

func uriFor(t *testing.T, relPath string) string {
	t.Helper()
	absPath, err := filepath.Abs(relPath)
	require.NoError(t, err)
	return "file://" + filepath.ToSlash(absPath)
}

// A document that lowers cleanly never reaches the notify path, so a
// zero-value glsp.Context is safe here.
func TestTextDocumentDidOpenValidDocument(t *testing.T) {
	handler := lsp.NewFlowHandler(ir.NopEvaluator{})
	uri := uriFor(t, filepath.Join("testdata", "sample.flow"))

	err := handler.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri},
	})
	require.NoError(t, err)
}

func TestTextDocumentSemanticTokensFullReturnsTokensForValidDocument(t *testing.T) {
	handler := lsp.NewFlowHandler(ir.NopEvaluator{})
	uri := uriFor(t, filepath.Join("testdata", "sample.flow"))

	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotNil(t, tokens)
	require.NotEmpty(t, tokens.Data)
	require.Zero(t, len(tokens.Data)%5)
}

func TestTextDocumentDidCloseForgetsDocument(t *testing.T) {
	handler := lsp.NewFlowHandler(ir.NopEvaluator{})
	uri := uriFor(t, filepath.Join("testdata", "sample.flow"))

	require.NoError(t, handler.TextDocumentDidOpen(&glsp.Context{}, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri},
	}))
	require.NoError(t, handler.TextDocumentDidClose(&glsp.Context{}, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))

	// After close, semantic tokens must reparse from disk rather than serve
	// stale cached content; the file still exists, so this still succeeds.
	tokens, err := handler.TextDocumentSemanticTokensFull(&glsp.Context{}, &protocol.SemanticTokensParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	require.NotEmpty(t, tokens.Data)
}
