package lsp

import (
	"errors"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/havoc/idl/parser"
)

const diagnosticSource = "havoc"

// Diagnose parses text and converts the first error, if any, into a
// diagnostic. The result is never nil so it can be published as-is to
// clear earlier diagnostics.
func Diagnose(text []byte, file string) []protocol.Diagnostic {
	_, err := parser.Parse(text, parser.WithFile(file))
	if err == nil {
		return []protocol.Diagnostic{}
	}
	return []protocol.Diagnostic{errorDiagnostic(text, err)}
}

func errorDiagnostic(text []byte, err error) protocol.Diagnostic {
	var rng protocol.Range
	var lexErr *parser.LexicalError
	var syntaxErr *parser.SyntaxError
	switch {
	case errors.As(err, &lexErr):
		rng = spanRange(text, lexErr.Span)
	case errors.As(err, &syntaxErr):
		rng = spanRange(text, syntaxErr.Found.Span)
	}

	severity := protocol.DiagnosticSeverityError
	source := diagnosticSource
	return protocol.Diagnostic{
		Range:    rng,
		Severity: &severity,
		Source:   &source,
		Message:  err.Error(),
	}
}

func spanRange(text []byte, span parser.Span) protocol.Range {
	return protocol.Range{
		Start: toPosition(text, span.Start),
		End:   toPosition(text, span.End),
	}
}

// toPosition converts a lexer position, which counts bytes, into an LSP
// position, which counts UTF-16 code units.
func toPosition(text []byte, pos parser.Position) protocol.Position {
	if pos.Line < 1 {
		return protocol.Position{}
	}
	offset := min(pos.Offset, len(text))
	lineStart := max(offset-(pos.Column-1), 0)

	var units int
	for rest := text[lineStart:offset]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		if r >= 0x10000 {
			units += 2
		} else {
			units++
		}
		rest = rest[size:]
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(units),
	}
}
