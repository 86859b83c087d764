package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/havoc/idl/parser"
)

func pos(line, char int) protocol.Position {
	return protocol.Position{Line: protocol.UInteger(line), Character: protocol.UInteger(char)}
}

func TestDiagnoseClean(t *testing.T) {
	diags := Diagnose([]byte(`message M { string a = 1; }`), "m.proto")
	require.NotNil(t, diags)
	assert.Empty(t, diags)
}

func TestDiagnoseErrors(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		start    protocol.Position
		end      protocol.Position
		contains string
	}{
		{
			name:     "lexical",
			text:     "message M @ {}",
			start:    pos(0, 10),
			end:      pos(0, 11),
			contains: "unrecognized input",
		},
		{
			name:     "syntax on second line",
			text:     "message M {\n  string = 1;\n}",
			start:    pos(1, 9),
			end:      pos(1, 10),
			contains: "field name",
		},
		{
			name:     "end of input",
			text:     "message M {",
			start:    pos(0, 11),
			end:      pos(0, 11),
			contains: "end of input",
		},
		{
			name:     "wide characters before error",
			text:     `option x = "😀"; @`,
			start:    pos(0, 17),
			end:      pos(0, 18),
			contains: "unrecognized input",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Diagnose([]byte(tt.text), "test.proto")
			require.Len(t, diags, 1)

			d := diags[0]
			assert.Equal(t, tt.start, d.Range.Start)
			assert.Equal(t, tt.end, d.Range.End)
			assert.Contains(t, d.Message, tt.contains)
			require.NotNil(t, d.Severity)
			assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
			assert.Equal(t, "havoc", *d.Source)
		})
	}
}

const outlineText = `syntax = "proto3";

service AuthService {
  rpc Login (LoginRequest) returns (LoginResponse);
}

message LoginRequest {
  string username = 1;
  repeated string scopes = 2;
}
`

func TestSymbols(t *testing.T) {
	tokens, err := parser.Tokenize([]byte(outlineText))
	require.NoError(t, err)

	symbols := Symbols([]byte(outlineText), tokens)
	require.Len(t, symbols, 2)

	svc := symbols[0]
	assert.Equal(t, "AuthService", svc.Name)
	assert.Equal(t, protocol.SymbolKindInterface, svc.Kind)
	assert.Equal(t, protocol.Range{Start: pos(2, 0), End: pos(4, 1)}, svc.Range)
	assert.Equal(t, protocol.Range{Start: pos(2, 8), End: pos(2, 19)}, svc.SelectionRange)
	require.Len(t, svc.Children, 1)
	assert.Equal(t, "Login", svc.Children[0].Name)
	assert.Equal(t, protocol.SymbolKindMethod, svc.Children[0].Kind)
	assert.Equal(t, "(LoginRequest) returns (LoginResponse)", *svc.Children[0].Detail)
	assert.Equal(t, protocol.Range{Start: pos(3, 2), End: pos(3, 51)}, svc.Children[0].Range)

	msg := symbols[1]
	assert.Equal(t, "LoginRequest", msg.Name)
	assert.Equal(t, protocol.SymbolKindStruct, msg.Kind)
	require.Len(t, msg.Children, 2)
	assert.Equal(t, "username", msg.Children[0].Name)
	assert.Equal(t, "string = 1", *msg.Children[0].Detail)
	assert.Equal(t, "scopes", msg.Children[1].Name)
	assert.Equal(t, "repeated string = 2", *msg.Children[1].Detail)
	assert.Equal(t, protocol.SymbolKindField, msg.Children[1].Kind)
}

func TestSymbolsEmptyBlocks(t *testing.T) {
	text := []byte("message Empty {} service Nothing {}")
	tokens, err := parser.Tokenize(text)
	require.NoError(t, err)

	symbols := Symbols(text, tokens)
	require.Len(t, symbols, 2)
	assert.Empty(t, symbols[0].Children)
	assert.Empty(t, symbols[1].Children)
}

func TestDocumentSymbolsInvalid(t *testing.T) {
	assert.Empty(t, documentSymbols([]byte("service S { rpc }"), "s.proto"))
	assert.Empty(t, documentSymbols([]byte("service S @"), "s.proto"))
}

type recorder struct {
	published []protocol.PublishDiagnosticsParams
}

func (r *recorder) context() *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			if method == protocol.ServerTextDocumentPublishDiagnostics {
				r.published = append(r.published, params.(protocol.PublishDiagnosticsParams))
			}
		},
	}
}

func (r *recorder) last() protocol.PublishDiagnosticsParams {
	return r.published[len(r.published)-1]
}

func TestServerLifecycle(t *testing.T) {
	ls := NewLSPServer("test")
	rec := &recorder{}
	ctx := rec.context()
	uri := protocol.DocumentUri("file:///tmp/auth.proto")

	require.NoError(t, ls.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "proto", Text: "message M {"},
	}))
	require.Len(t, rec.published, 1)
	assert.Equal(t, uri, rec.last().URI)
	require.Len(t, rec.last().Diagnostics, 1)
	assert.Contains(t, rec.last().Diagnostics[0].Message, "/tmp/auth.proto:1:12")

	require.NoError(t, ls.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: outlineText}},
	}))
	require.Len(t, rec.published, 2)
	assert.NotNil(t, rec.last().Diagnostics)
	assert.Empty(t, rec.last().Diagnostics)

	result, err := ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Len(t, symbols, 2)

	require.NoError(t, ls.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, rec.published, 3)
	assert.Empty(t, rec.last().Diagnostics)

	require.NoError(t, ls.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}))
	require.Len(t, rec.published, 4)
	assert.Empty(t, rec.last().Diagnostics)

	result, err = ls.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestURIToPath(t *testing.T) {
	assert.Equal(t, "/tmp/a b.proto", uriToPath("file:///tmp/a%20b.proto"))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
}
