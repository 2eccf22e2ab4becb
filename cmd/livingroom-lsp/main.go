// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"livingroom/internal/lsp"
)

const lsName = "livingroom"

var (
	version = "0.1.0"
	handler protocol.Handler
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	logFile := flag.String("log", "", "write logs to this file instead of stderr")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr or a file
	verbosity := 1
	if *verbose {
		verbosity = 2
	}
	var path *string
	if *logFile != "" {
		path = logFile
	}
	commonlog.Configure(verbosity, path)

	h := lsp.NewHandler(lsName, version)

	handler = protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting livingroom LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting livingroom LSP server:", err)
		os.Exit(1)
	}
}
