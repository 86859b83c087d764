package parser

import (
	"errors"
	"strings"
	"testing"
)

func kindsOf(t *testing.T, input string) []TokenKind {
	t.Helper()
	tokens, err := Tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Tokenize(%q) error: %v", input, err)
	}
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("message M {}"), "test.proto")
	pos := lexer.Position()

	if pos.File != "test.proto" {
		t.Errorf("File = %q, want %q", pos.File, "test.proto")
	}
	if pos.Line != 1 || pos.Column != 1 || pos.Offset != 0 {
		t.Errorf("Position = %+v, want line 1 column 1 offset 0", pos)
	}
}

func TestLexerKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"message", TokenMessage},
		{"service", TokenService},
		{"rpc", TokenRPC},
		{"returns", TokenReturns},
		{"option", TokenOption},
		{"repeated", TokenRepeated},
		{"package", TokenPackage},
		{"import", TokenImport},
		{"syntax", TokenSyntax},
		{"int32", TokenInt32},
		{"int64", TokenInt64},
		{"uint32", TokenUint32},
		{"uint64", TokenUint64},
		{"sint32", TokenSint32},
		{"sint64", TokenSint64},
		{"fixed32", TokenFixed32},
		{"fixed64", TokenFixed64},
		{"sfixed32", TokenSfixed32},
		{"sfixed64", TokenSfixed64},
		{"bool", TokenBool},
		{"string", TokenString},
		{"bytes", TokenBytes},
		{"double", TokenDouble},
		{"float", TokenFloat},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			lexer := NewLexer([]byte(tt.input), "test.proto")
			tok, err := lexer.NextToken()
			if err != nil {
				t.Fatalf("NextToken error: %v", err)
			}
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerIdentifiers(t *testing.T) {
	tests := []string{
		"foo",
		"Bar",
		"_private",
		"camelCase",
		"SCREAMING_CASE",
		"with123Numbers",
		"messages",
		"int32x",
		"Service",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			lexer := NewLexer([]byte(input), "test.proto")
			tok, err := lexer.NextToken()
			if err != nil {
				t.Fatalf("NextToken error: %v", err)
			}
			if tok.Kind != TokenIdent {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenIdent)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerPunctuation(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"{", TokenLBrace},
		{"}", TokenRBrace},
		{"(", TokenLParen},
		{")", TokenRParen},
		{";", TokenSemicolon},
		{",", TokenComma},
		{".", TokenDot},
		{"=", TokenAssign},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kindsOf(t, tt.input)
			if len(got) != 2 || got[0] != tt.kind || got[1] != TokenEOF {
				t.Errorf("kinds = %v, want [%v EOF]", got, tt.kind)
			}
		})
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"   \n\t ", []TokenKind{TokenEOF}},
		{"// only a comment", []TokenKind{TokenEOF}},
		{"/* block */", []TokenKind{TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"123abc", []TokenKind{TokenIntLiteral, TokenIdent, TokenEOF}},
		{`"hello"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{`"with \" quote"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"// comment\nmessage", []TokenKind{TokenMessage, TokenEOF}},
		{"/* a */ message /* b */", []TokenKind{TokenMessage, TokenEOF}},
		{"/* not /* nested */ rpc", []TokenKind{TokenRPC, TokenEOF}},
		{"package my.pkg;", []TokenKind{TokenPackage, TokenIdent, TokenDot, TokenIdent, TokenSemicolon, TokenEOF}},
		{
			`import "auth.proto"; option java_package = "com.example";`,
			[]TokenKind{
				TokenImport, TokenStringLiteral, TokenSemicolon,
				TokenOption, TokenIdent, TokenAssign, TokenStringLiteral, TokenSemicolon,
				TokenEOF,
			},
		},
		{
			"message User { string name = 1; int32 age = 2; }",
			[]TokenKind{
				TokenMessage, TokenIdent, TokenLBrace,
				TokenString, TokenIdent, TokenAssign, TokenIntLiteral, TokenSemicolon,
				TokenInt32, TokenIdent, TokenAssign, TokenIntLiteral, TokenSemicolon,
				TokenRBrace, TokenEOF,
			},
		},
		{
			"service Auth { rpc Login (LoginRequest) returns (LoginResponse); }",
			[]TokenKind{
				TokenService, TokenIdent, TokenLBrace,
				TokenRPC, TokenIdent, TokenLParen, TokenIdent, TokenRParen,
				TokenReturns, TokenLParen, TokenIdent, TokenRParen, TokenSemicolon,
				TokenRBrace, TokenEOF,
			},
		},
		{
			"message Post { repeated string tags = 1; }",
			[]TokenKind{
				TokenMessage, TokenIdent, TokenLBrace,
				TokenRepeated, TokenString, TokenIdent, TokenAssign, TokenIntLiteral, TokenSemicolon,
				TokenRBrace, TokenEOF,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := kindsOf(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tt.expected), tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerStringValue(t *testing.T) {
	tokens, err := Tokenize([]byte(`"a\"b\\n"`))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}
	if got, want := tokens[0].Value(), `a\"b\\n`; got != want {
		t.Errorf("Value() = %q, want %q", got, want)
	}
}

func TestLexerPositions(t *testing.T) {
	input := "syntax = \"proto3\";\n\nmessage M {}\n"
	tokens, err := Tokenize([]byte(input), WithFile("pos.proto"))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	msg := tokens[4]
	if msg.Kind != TokenMessage {
		t.Fatalf("tokens[4] = %v, want message", msg.Kind)
	}
	if msg.Span.Start.Line != 3 || msg.Span.Start.Column != 1 {
		t.Errorf("message starts at %d:%d, want 3:1", msg.Span.Start.Line, msg.Span.Start.Column)
	}
	if msg.Span.Start.File != "pos.proto" {
		t.Errorf("File = %q, want pos.proto", msg.Span.Start.File)
	}
	for _, tok := range tokens[:len(tokens)-1] {
		if got := input[tok.Span.Start.Offset:tok.Span.End.Offset]; got != tok.Literal {
			t.Errorf("span slice %q != literal %q", got, tok.Literal)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		start   int
		end     int
		literal string
	}{
		{"unknown symbol", "message M @ {}", 10, 11, "@"},
		{"unterminated string", `import "abc`, 7, 11, `"abc`},
		{"string ending in backslash", `import "abc\`, 7, 12, `"abc\`},
		{"unterminated block comment", "rpc /* open", 4, 11, "/* open"},
		{"lone slash", "a / b", 2, 3, "/"},
		{"non ascii", "message Ä {}", 8, 10, "Ä"},
		{"minus sign", "x = -1;", 4, 5, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tokenize([]byte(tt.input))
			var lexErr *LexicalError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error = %v, want *LexicalError", err)
			}
			if lexErr.Span.Start.Offset != tt.start || lexErr.Span.End.Offset != tt.end {
				t.Errorf("span = %d..%d, want %d..%d",
					lexErr.Span.Start.Offset, lexErr.Span.End.Offset, tt.start, tt.end)
			}
			if lexErr.Literal != tt.literal {
				t.Errorf("Literal = %q, want %q", lexErr.Literal, tt.literal)
			}
			if tt.input[tt.start:tt.end] != lexErr.Literal {
				t.Errorf("literal does not match input slice")
			}
		})
	}
}

func TestLexerSkipIdempotence(t *testing.T) {
	compact := `syntax="proto3";package a.b;message M{repeated string x=1;}service S{rpc R(M)returns(M);}`
	spaced := "syntax = \"proto3\" ;\n// header\npackage a . b ;\n" +
		"/* doc */ message M {\n\trepeated string x = 1; // trailing\n}\n" +
		"service S { rpc R ( M ) returns ( M ) ; }\n"

	a, err := Tokenize([]byte(compact))
	if err != nil {
		t.Fatalf("compact: %v", err)
	}
	b, err := Tokenize([]byte(spaced))
	if err != nil {
		t.Fatalf("spaced: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("token counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Kind != b[i].Kind || a[i].Literal != b[i].Literal {
			t.Errorf("token %d: %v %q vs %v %q", i, a[i].Kind, a[i].Literal, b[i].Kind, b[i].Literal)
		}
	}
}

func TestLexerRoundTrip(t *testing.T) {
	input := `
		syntax = "proto3";
		package test.v1; // pkg
		option go_package = "example.com/x";
		/* messages */
		message Req { string id = 1; repeated int64 ids = 2; Other o = 3; }
		service S { rpc Get (Req) returns (Req); }
	`
	first, err := Tokenize([]byte(input))
	if err != nil {
		t.Fatalf("Tokenize error: %v", err)
	}

	var literals []string
	for _, tok := range first {
		if tok.Kind != TokenEOF {
			literals = append(literals, input[tok.Span.Start.Offset:tok.Span.End.Offset])
		}
	}
	second, err := Tokenize([]byte(strings.Join(literals, " ")))
	if err != nil {
		t.Fatalf("re-lex error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Kind != second[i].Kind || first[i].Literal != second[i].Literal {
			t.Errorf("token %d: %v %q vs %v %q", i, first[i].Kind, first[i].Literal, second[i].Kind, second[i].Literal)
		}
	}
}

func TestTokenKindString(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenEOF, "EOF"},
		{TokenIdent, "Identifier"},
		{TokenIntLiteral, "IntLiteral"},
		{TokenStringLiteral, "StringLiteral"},
		{TokenMessage, "message"},
		{TokenSfixed64, "sfixed64"},
		{TokenLBrace, "{"},
		{TokenAssign, "="},
		{TokenKind(9999), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("TokenKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestLookupKeyword(t *testing.T) {
	for word, kind := range keywords {
		if got := LookupKeyword(word); got != kind {
			t.Errorf("LookupKeyword(%q) = %v, want %v", word, got, kind)
		}
		if !kind.IsKeyword() {
			t.Errorf("%v.IsKeyword() = false", kind)
		}
		if kind.String() != word {
			t.Errorf("%v.String() = %q, want %q", kind, kind.String(), word)
		}
	}
	if got := LookupKeyword("Message"); got != TokenIdent {
		t.Errorf("LookupKeyword(Message) = %v, want Identifier", got)
	}
}
