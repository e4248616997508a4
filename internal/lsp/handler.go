package lsp

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"flowc/grammar"
	"flowc/internal/ir"
	"flowc/internal/parser"
)

// SemanticTokenTypes is the set of token types advertised to the client.
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"function",
	"variable",
	"parameter",
	"property",
	"number",
}

// SemanticTokenModifiers is the set of token modifiers advertised to the
// client.
var SemanticTokenModifiers = []string{
	"declaration",
	"definition",
	"readonly",
}

// FlowHandler implements the LSP server handlers for the demonstration
// composition DSL: it parses a document into a grammar.Program, lowers
// it with ir.Builder, and republishes any lowering failure as a
// diagnostic. It does not implement a type checker or semantic analyzer
// of its own — the lowering pass IS the analysis.
type FlowHandler struct {
	mu        sync.RWMutex
	content   map[string]string
	graphs    map[string]*ir.LGraph
	evaluator ir.PartialEvaluator
}

// NewFlowHandler creates a FlowHandler. evaluator resolves closed member
// chains during lowering; pass ir.NopEvaluator{} if the
// frontend pre-folds every closed access itself.
func NewFlowHandler(evaluator ir.PartialEvaluator) *FlowHandler {
	return &FlowHandler{
		content:   make(map[string]string),
		graphs:    make(map[string]*ir.LGraph),
		evaluator: evaluator,
	}
}

// Initialize responds to the LSP client's initialize request and
// advertises the server's capabilities.
func (h *FlowHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Println("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

// Initialized is called after the client receives the server's
// capabilities and completes initialization.
func (h *FlowHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Println("flowc LSP Initialized")
	return nil
}

// Shutdown handles the LSP shutdown request.
func (h *FlowHandler) Shutdown(ctx *glsp.Context) error {
	log.Println("flowc LSP Shutdown")
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor.
func (h *FlowHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Printf("Opened file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateGraph(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to lower document: %w", err)
	}

	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

// TextDocumentDidClose handles file close notifications from the editor.
func (h *FlowHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Printf("Closed file: %s\n", params.TextDocument.URI)

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.content, path)
	delete(h.graphs, path)

	return nil
}

// TextDocumentDidChange handles file change notifications from the editor.
func (h *FlowHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Printf("Changed file: %s\n", params.TextDocument.URI)

	diagnostics, err := h.updateGraph(params.TextDocument.URI)
	if err != nil {
		return fmt.Errorf("failed to lower document: %w", err)
	}

	if diagnostics != nil {
		sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
	}
	return nil
}

// TextDocumentCompletion handles completion requests. The DSL has no
// context-sensitive completions yet, so this always returns an empty list.
func (h *FlowHandler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        []protocol.CompletionItem{},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the
// entire document.
func (h *FlowHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", params.TextDocument.URI, err)
	}

	h.mu.RLock()
	content, ok := h.content[path]
	h.mu.RUnlock()
	if !ok {
		diagnostics, err := h.updateGraph(params.TextDocument.URI)
		if err != nil {
			return nil, err
		}
		if diagnostics != nil {
			sendDiagnosticNotification(ctx, params.TextDocument.URI, diagnostics)
		}

		h.mu.RLock()
		content = h.content[path]
		h.mu.RUnlock()
	}

	program, err := grammar.ParseString(path, content)
	if err != nil {
		// A document that fails to parse has no tokens to offer; the
		// diagnostic already reported the syntax error.
		return &protocol.SemanticTokens{}, nil
	}

	tokens := collectSemanticTokens(program)

	var data []uint32
	var prevLine, prevStart uint32
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{Data: data}, nil
}

// updateGraph reparses and relowers the document at rawURI (read from
// disk), caching its content and graph on success. It returns the
// diagnostics for a parse or lowering failure, and nil diagnostics on
// success.
func (h *FlowHandler) updateGraph(rawURI protocol.DocumentUri) ([]protocol.Diagnostic, error) {
	path, err := uriToPath(rawURI)
	if err != nil {
		return nil, fmt.Errorf("failed to convert URI %s: %w", rawURI, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	graph, parseErr := parser.ParseString(path, string(content))
	if parseErr != nil {
		return ConvertParseError(parseErr), nil
	}

	builder := ir.NewBuilder(h.evaluator)
	if buildErr := builder.Build(graph); buildErr != nil {
		return ConvertLoweringError(buildErr), nil
	}

	h.mu.Lock()
	h.content[path] = string(content)
	h.graphs[path] = graph
	h.mu.Unlock()

	return nil, nil
}

func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	diagnosticsJSON, err := json.MarshalIndent(diagnostics, "", "  ")
	if err != nil {
		log.Println("Failed to marshal diagnostics:", err)
		return
	}
	log.Println("Sending diagnostics:", string(diagnosticsJSON))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
