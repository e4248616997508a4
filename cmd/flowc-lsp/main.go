// SPDX-License-Identifier: Apache-2.0
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"flowc/internal/ir"
	"flowc/internal/lsp"
)

const lsName = "flowc"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	flowHandler := lsp.NewFlowHandler(ir.NewIntrinsicEvaluator())

	handler = protocol.Handler{
		Initialize:                     flowHandler.Initialize,
		Initialized:                    flowHandler.Initialized,
		Shutdown:                       flowHandler.Shutdown,
		TextDocumentDidOpen:            flowHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           flowHandler.TextDocumentDidClose,
		TextDocumentDidChange:          flowHandler.TextDocumentDidChange,
		TextDocumentCompletion:         flowHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: flowHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Printf("Starting flowc LSP server (%s)...\n", version)

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting flowc LSP server:", err)
		os.Exit(1)
	}
}
