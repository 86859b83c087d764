package parser

import "fmt"

type Position struct {
	File   string `json:"file,omitempty"`
	Offset int    `json:"offset"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

type TokenKind int

const (
	TokenEOF TokenKind = iota

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenStringLiteral

	// Keywords
	TokenMessage
	TokenService
	TokenRPC
	TokenReturns
	TokenOption
	TokenRepeated
	TokenPackage
	TokenImport
	TokenSyntax

	// Scalar type keywords
	TokenInt32
	TokenInt64
	TokenUint32
	TokenUint64
	TokenSint32
	TokenSint64
	TokenFixed32
	TokenFixed64
	TokenSfixed32
	TokenSfixed64
	TokenBool
	TokenString
	TokenBytes
	TokenDouble
	TokenFloat

	// Punctuation
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenSemicolon
	TokenComma
	TokenDot
	TokenAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenMessage:       "message",
	TokenService:       "service",
	TokenRPC:           "rpc",
	TokenReturns:       "returns",
	TokenOption:        "option",
	TokenRepeated:      "repeated",
	TokenPackage:       "package",
	TokenImport:        "import",
	TokenSyntax:        "syntax",
	TokenInt32:         "int32",
	TokenInt64:         "int64",
	TokenUint32:        "uint32",
	TokenUint64:        "uint64",
	TokenSint32:        "sint32",
	TokenSint64:        "sint64",
	TokenFixed32:       "fixed32",
	TokenFixed64:       "fixed64",
	TokenSfixed32:      "sfixed32",
	TokenSfixed64:      "sfixed64",
	TokenBool:          "bool",
	TokenString:        "string",
	TokenBytes:         "bytes",
	TokenDouble:        "double",
	TokenFloat:         "float",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenAssign:        "=",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

func (k TokenKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsScalar reports whether k is one of the scalar type keywords.
func (k TokenKind) IsScalar() bool {
	return k >= TokenInt32 && k <= TokenFloat
}

// IsKeyword reports whether k is a reserved word, scalar types included.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenMessage && k <= TokenFloat
}

type Token struct {
	Kind    TokenKind `json:"kind"`
	Span    Span      `json:"span"`
	Literal string    `json:"literal,omitempty"`
}

// Value returns the text between the quotes of a string literal, escapes
// left as written. For every other kind it returns the literal.
func (t Token) Value() string {
	if t.Kind == TokenStringLiteral && len(t.Literal) >= 2 {
		return t.Literal[1 : len(t.Literal)-1]
	}
	return t.Literal
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return fmt.Sprintf("identifier %q", t.Literal)
	case TokenIntLiteral:
		return fmt.Sprintf("number %s", t.Literal)
	case TokenStringLiteral:
		return fmt.Sprintf("string %s", t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Kind)
}

var keywords = map[string]TokenKind{
	"message":  TokenMessage,
	"service":  TokenService,
	"rpc":      TokenRPC,
	"returns":  TokenReturns,
	"option":   TokenOption,
	"repeated": TokenRepeated,
	"package":  TokenPackage,
	"import":   TokenImport,
	"syntax":   TokenSyntax,
	"int32":    TokenInt32,
	"int64":    TokenInt64,
	"uint32":   TokenUint32,
	"uint64":   TokenUint64,
	"sint32":   TokenSint32,
	"sint64":   TokenSint64,
	"fixed32":  TokenFixed32,
	"fixed64":  TokenFixed64,
	"sfixed32": TokenSfixed32,
	"sfixed64": TokenSfixed64,
	"bool":     TokenBool,
	"string":   TokenString,
	"bytes":    TokenBytes,
	"double":   TokenDouble,
	"float":    TokenFloat,
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}
