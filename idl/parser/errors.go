package parser

import (
	"fmt"
	"strings"
)

// LexicalError reports the first piece of input the lexer could not turn
// into a token.
type LexicalError struct {
	Reason  string
	Span    Span
	Literal string
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("%s: %s %q at bytes %d..%d",
		e.Span.Start, e.Reason, e.Literal, e.Span.Start.Offset, e.Span.End.Offset)
}

// SyntaxError reports the first token that does not fit the grammar.
// Cursor is the index of Found in the token stream.
type SyntaxError struct {
	Message  string
	Expected []TokenKind
	Found    Token
	Cursor   int
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(e.Found.Span.Start.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if len(e.Expected) > 0 {
		b.WriteString(": expected ")
		b.WriteString(describeKinds(e.Expected))
		b.WriteString(", found ")
	} else {
		b.WriteString(": ")
	}
	b.WriteString(e.Found.Describe())
	fmt.Fprintf(&b, " (token %d)", e.Cursor)
	return b.String()
}

func describeKinds(kinds []TokenKind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		switch k {
		case TokenIdent:
			parts[i] = "identifier"
		case TokenIntLiteral:
			parts[i] = "number"
		case TokenStringLiteral:
			parts[i] = "string"
		case TokenEOF:
			parts[i] = "end of input"
		default:
			parts[i] = "'" + k.String() + "'"
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
