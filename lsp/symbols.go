package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/havoc/idl/parser"
)

// Symbols outlines a token stream that parsed without errors: services
// with their methods and messages with their fields.
func Symbols(text []byte, tokens []parser.Token) []protocol.DocumentSymbol {
	symbols := []protocol.DocumentSymbol{}
	for i := 0; i < len(tokens); i++ {
		switch tokens[i].Kind {
		case parser.TokenService, parser.TokenMessage:
			sym, end := blockSymbol(text, tokens, i)
			symbols = append(symbols, sym)
			i = end
		}
	}
	return symbols
}

// blockSymbol builds the symbol of the service or message starting at
// tokens[start] and returns the index of its closing brace.
func blockSymbol(text []byte, tokens []parser.Token, start int) (protocol.DocumentSymbol, int) {
	name := tokens[start+1]
	sym := protocol.DocumentSymbol{
		Name:           name.Literal,
		Kind:           protocol.SymbolKindClass,
		SelectionRange: spanRange(text, name.Span),
		Children:       []protocol.DocumentSymbol{},
	}
	isService := tokens[start].Kind == parser.TokenService
	if isService {
		sym.Kind = protocol.SymbolKindInterface
	} else {
		sym.Kind = protocol.SymbolKindStruct
	}

	i := start + 3
	for i < len(tokens) && tokens[i].Kind != parser.TokenRBrace {
		end := i
		for end < len(tokens) && tokens[end].Kind != parser.TokenSemicolon {
			end++
		}
		if end >= len(tokens) {
			break
		}
		if isService {
			sym.Children = append(sym.Children, methodSymbol(text, tokens[i:end+1]))
		} else {
			sym.Children = append(sym.Children, fieldSymbol(text, tokens[i:end+1]))
		}
		i = end + 1
	}

	last := min(i, len(tokens)-1)
	sym.Range = protocol.Range{
		Start: toPosition(text, tokens[start].Span.Start),
		End:   toPosition(text, tokens[last].Span.End),
	}
	return sym, last
}

// methodSymbol expects: rpc Name ( Req ) returns ( Resp ) ;
func methodSymbol(text []byte, stmt []parser.Token) protocol.DocumentSymbol {
	name := stmt[1]
	detail := "(" + stmt[3].Literal + ") returns (" + stmt[7].Literal + ")"
	return protocol.DocumentSymbol{
		Name:           name.Literal,
		Detail:         &detail,
		Kind:           protocol.SymbolKindMethod,
		Range:          statementRange(text, stmt),
		SelectionRange: spanRange(text, name.Span),
	}
}

// fieldSymbol expects: [repeated] Type name = N ;
func fieldSymbol(text []byte, stmt []parser.Token) protocol.DocumentSymbol {
	n := len(stmt)
	name := stmt[n-4]
	detail := stmt[n-5].Literal
	if stmt[0].Kind == parser.TokenRepeated {
		detail = "repeated " + detail
	}
	detail += " = " + stmt[n-2].Literal
	return protocol.DocumentSymbol{
		Name:           name.Literal,
		Detail:         &detail,
		Kind:           protocol.SymbolKindField,
		Range:          statementRange(text, stmt),
		SelectionRange: spanRange(text, name.Span),
	}
}

func statementRange(text []byte, stmt []parser.Token) protocol.Range {
	return protocol.Range{
		Start: toPosition(text, stmt[0].Span.Start),
		End:   toPosition(text, stmt[len(stmt)-1].Span.End),
	}
}
