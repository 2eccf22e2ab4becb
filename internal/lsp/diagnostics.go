package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"livingroom/internal/errors"
)

// collectDiagnostics reports the lexical error of every line that failed.
func collectDiagnostics(doc *document) []protocol.Diagnostic {
	diagnostics := []protocol.Diagnostic{}

	for n, l := range doc.lines {
		if l.err == nil {
			continue
		}
		diagnostics = append(diagnostics, convertParseError(n, l.text, l.err.Diagnostic))
	}

	return diagnostics
}

// convertParseError turns a lexer diagnostic on line n into an LSP
// diagnostic. The scanner counts columns in runes; LSP wants UTF-16 units.
func convertParseError(n int, text string, d errors.Diagnostic) protocol.Diagnostic {
	offset := min(d.Position.Offset, len(text))
	start := utf16Len(text[:offset])

	end := start + 1
	rest := []rune(text[offset:])
	if length := min(max(d.Length, 1), len(rest)); length > 0 {
		end = start + utf16Len(string(rest[:length]))
	}

	diagnostic := protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(n), Character: start},
			End:   protocol.Position{Line: uint32(n), Character: end},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &protocol.IntegerOrString{Value: d.Code},
		Source:   ptrString("livingroom-lexer"),
		Message:  d.Message,
	}
	if d.HelpText != "" {
		diagnostic.Message += " (help: " + d.HelpText + ")"
	}
	return diagnostic
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
