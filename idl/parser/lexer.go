package parser

import (
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// NextToken returns the next significant token. Whitespace and comments are
// consumed silently. At end of input it keeps returning TokenEOF.
func (l *Lexer) NextToken() (Token, error) {
	if err := l.skipTrivia(); err != nil {
		return Token{}, err
	}

	start := l.Position()
	if l.atEnd() {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}, nil
	}

	ch := l.peek()
	switch {
	case isLetter(ch):
		return l.scanIdentOrKeyword(start), nil
	case isDigit(ch):
		return l.scanNumber(start), nil
	case ch == '"':
		return l.scanStringLiteral(start)
	}
	return l.scanPunctuation(start)
}

// skipTrivia consumes whitespace, line comments and block comments.
func (l *Lexer) skipTrivia() error {
	for !l.atEnd() {
		ch := l.peek()
		switch {
		case isWhitespace(ch):
			l.advance()
		case ch == '/' && l.peekN(1) == '/':
			l.advanceN(2)
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
		case ch == '/' && l.peekN(1) == '*':
			start := l.Position()
			l.advanceN(2)
			closed := false
			for !l.atEnd() {
				if l.peek() == '*' && l.peekN(1) == '/' {
					l.advanceN(2)
					closed = true
					break
				}
				l.advance()
			}
			if !closed {
				return l.errorFrom(start, "unterminated block comment")
			}
		default:
			return nil
		}
	}
	return nil
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isLetter(l.peek()) || isDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])
	return Token{
		Kind:    LookupKeyword(literal),
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) (Token, error) {
	l.advance()
	for !l.atEnd() {
		switch l.peek() {
		case '\\':
			l.advance()
			if l.atEnd() {
				return Token{}, l.errorFrom(start, "unterminated string literal")
			}
			l.advance()
		case '"':
			l.advance()
			return l.token(TokenStringLiteral, start), nil
		default:
			l.advance()
		}
	}
	return Token{}, l.errorFrom(start, "unterminated string literal")
}

func (l *Lexer) scanPunctuation(start Position) (Token, error) {
	var kind TokenKind
	switch l.peek() {
	case '{':
		kind = TokenLBrace
	case '}':
		kind = TokenRBrace
	case '(':
		kind = TokenLParen
	case ')':
		kind = TokenRParen
	case ';':
		kind = TokenSemicolon
	case ',':
		kind = TokenComma
	case '.':
		kind = TokenDot
	case '=':
		kind = TokenAssign
	default:
		_, size := utf8.DecodeRune(l.input[l.pos:])
		l.advanceN(size)
		return Token{}, l.errorFrom(start, "unrecognized input")
	}
	l.advance()
	return l.token(kind, start), nil
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// errorFrom reports everything between start and the current position.
func (l *Lexer) errorFrom(start Position, reason string) *LexicalError {
	end := l.Position()
	return &LexicalError{
		Reason:  reason,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

// Tokenize lexes src completely. The returned slice always ends with a
// TokenEOF token.
func Tokenize(src []byte, opts ...Option) ([]Token, error) {
	p := newParser(opts...)
	lexer := NewLexer(src, p.file)
	var tokens []Token
	for {
		tok, err := lexer.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
