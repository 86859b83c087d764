package parser

import (
	"strconv"

	"github.com/dhamidi/havoc/idl"
)

type Option func(*Parser)

// WithFile sets the file name recorded in token positions.
func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

type Parser struct {
	file   string
	tokens []Token
	pos    int
}

func newParser(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse lexes and parses src into a document. The first lexical or
// syntax error aborts the parse and no document is returned.
func Parse(src []byte, opts ...Option) (*idl.Document, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens, opts...)
}

// ParseTokens parses an already lexed token stream. The stream need not end
// with TokenEOF; running off its end is reported as end of input.
func ParseTokens(tokens []Token, opts ...Option) (*idl.Document, error) {
	p := newParser(opts...)
	p.tokens = tokens
	return p.parseDocument()
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.eof()
	}
	return p.tokens[p.pos]
}

func (p *Parser) eof() Token {
	if n := len(p.tokens); n > 0 {
		end := p.tokens[n-1].Span.End
		return Token{Kind: TokenEOF, Span: Span{Start: end, End: end}}
	}
	start := Position{File: p.file, Line: 1, Column: 1}
	return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) expect(kind TokenKind, context string) (Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return tok, p.errorf(context, kind)
	}
	p.advance()
	return tok, nil
}

func (p *Parser) errorf(message string, expected ...TokenKind) *SyntaxError {
	return &SyntaxError{
		Message:  message,
		Expected: expected,
		Found:    p.peek(),
		Cursor:   p.pos,
	}
}

func (p *Parser) parseDocument() (*idl.Document, error) {
	doc := idl.NewDocument()
	for !p.check(TokenEOF) {
		var err error
		switch p.peek().Kind {
		case TokenPackage:
			err = p.parsePackage(doc)
		case TokenSyntax:
			err = p.parseSyntax(doc)
		case TokenImport:
			err = p.parseImport(doc)
		case TokenOption:
			err = p.parseOption(doc)
		case TokenMessage:
			var msg *idl.Message
			if msg, err = p.parseMessage(); err == nil {
				doc.Messages = append(doc.Messages, msg)
			}
		case TokenService:
			var svc *idl.Service
			if svc, err = p.parseService(); err == nil {
				doc.Services = append(doc.Services, svc)
			}
		default:
			err = p.errorf("unexpected token",
				TokenPackage, TokenSyntax, TokenImport, TokenOption, TokenMessage, TokenService)
		}
		if err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (p *Parser) parsePackage(doc *idl.Document) error {
	p.advance()
	name, err := p.parseDottedIdent()
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "package statement"); err != nil {
		return err
	}
	doc.Package = name
	return nil
}

func (p *Parser) parseDottedIdent() (string, error) {
	first, err := p.expect(TokenIdent, "package name")
	if err != nil {
		return "", err
	}
	parts := []string{first.Literal}
	for p.check(TokenDot) {
		p.advance()
		part, err := p.expect(TokenIdent, "package name after '.'")
		if err != nil {
			return "", err
		}
		parts = append(parts, part.Literal)
	}
	return joinDotted(parts), nil
}

func joinDotted(parts []string) string {
	n := len(parts) - 1
	for _, part := range parts {
		n += len(part)
	}
	buf := make([]byte, 0, n)
	for i, part := range parts {
		if i > 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, part...)
	}
	return string(buf)
}

func (p *Parser) parseSyntax(doc *idl.Document) error {
	p.advance()
	if _, err := p.expect(TokenAssign, "syntax statement"); err != nil {
		return err
	}
	value, err := p.expect(TokenStringLiteral, "syntax statement")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "syntax statement"); err != nil {
		return err
	}
	doc.Syntax = value.Value()
	return nil
}

func (p *Parser) parseImport(doc *idl.Document) error {
	p.advance()
	path, err := p.expect(TokenStringLiteral, "import statement")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "import statement"); err != nil {
		return err
	}
	doc.Imports = append(doc.Imports, path.Value())
	return nil
}

func (p *Parser) parseOption(doc *idl.Document) error {
	p.advance()
	name, err := p.expect(TokenIdent, "option name")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenAssign, "option statement"); err != nil {
		return err
	}
	value, err := p.expect(TokenStringLiteral, "option value")
	if err != nil {
		return err
	}
	if _, err := p.expect(TokenSemicolon, "option statement"); err != nil {
		return err
	}
	doc.SetOption(name.Literal, value.Value())
	return nil
}

func (p *Parser) parseMessage() (*idl.Message, error) {
	p.advance()
	name, err := p.expect(TokenIdent, "message name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace, "message body"); err != nil {
		return nil, err
	}

	msg := &idl.Message{Name: name.Literal}
	for !p.check(TokenRBrace) {
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		msg.Fields = append(msg.Fields, field)
	}
	p.advance()
	return msg, nil
}

func (p *Parser) parseField() (*idl.Field, error) {
	field := &idl.Field{}
	if p.check(TokenRepeated) {
		p.advance()
		field.Repeated = true
	}

	typ := p.peek()
	switch {
	case typ.Kind.IsScalar():
		field.Type = scalarOf(typ.Kind).String()
	case typ.Kind == TokenIdent:
		field.Type = typ.Literal
	default:
		if field.Repeated {
			return nil, p.errorf("field type", TokenIdent)
		}
		return nil, p.errorf("unexpected token in message body", TokenRepeated, TokenIdent, TokenRBrace)
	}
	p.advance()

	name, err := p.expect(TokenIdent, "field name")
	if err != nil {
		return nil, err
	}
	field.Name = name.Literal

	if _, err := p.expect(TokenAssign, "field declaration"); err != nil {
		return nil, err
	}

	number, err := p.expect(TokenIntLiteral, "field number")
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.ParseUint(number.Literal, 10, 32)
	if convErr != nil {
		return nil, &SyntaxError{
			Message: "field number out of range",
			Found:   number,
			Cursor:  p.pos - 1,
		}
	}
	field.Number = uint32(n)

	if _, err := p.expect(TokenSemicolon, "field declaration"); err != nil {
		return nil, err
	}
	return field, nil
}

func (p *Parser) parseService() (*idl.Service, error) {
	p.advance()
	name, err := p.expect(TokenIdent, "service name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace, "service body"); err != nil {
		return nil, err
	}

	svc := idl.NewService(name.Literal)
	for !p.check(TokenRBrace) {
		if !p.check(TokenRPC) {
			return nil, p.errorf("unexpected token in service body", TokenRPC, TokenRBrace)
		}
		start := p.pos
		method, err := p.parseRPC()
		if err != nil {
			return nil, err
		}
		if !svc.AddMethod(method) {
			return nil, &SyntaxError{
				Message: "duplicate RPC method " + method.Name + " in service " + svc.Name,
				Found:   p.tokens[start+1],
				Cursor:  start + 1,
			}
		}
	}
	p.advance()
	return svc, nil
}

func (p *Parser) parseRPC() (*idl.Method, error) {
	p.advance()
	name, err := p.expect(TokenIdent, "rpc name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "rpc request"); err != nil {
		return nil, err
	}
	req, err := p.expect(TokenIdent, "rpc request type")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "rpc request"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenReturns, "rpc declaration"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLParen, "rpc response"); err != nil {
		return nil, err
	}
	resp, err := p.expect(TokenIdent, "rpc response type")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenRParen, "rpc response"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenSemicolon, "rpc declaration"); err != nil {
		return nil, err
	}
	return &idl.Method{
		Name:         name.Literal,
		RequestType:  req.Literal,
		ResponseType: resp.Literal,
	}, nil
}

func scalarOf(kind TokenKind) idl.Scalar {
	switch kind {
	case TokenInt32:
		return idl.Int32
	case TokenInt64:
		return idl.Int64
	case TokenUint32:
		return idl.Uint32
	case TokenUint64:
		return idl.Uint64
	case TokenSint32:
		return idl.Sint32
	case TokenSint64:
		return idl.Sint64
	case TokenFixed32:
		return idl.Fixed32
	case TokenFixed64:
		return idl.Fixed64
	case TokenSfixed32:
		return idl.Sfixed32
	case TokenSfixed64:
		return idl.Sfixed64
	case TokenBool:
		return idl.Bool
	case TokenString:
		return idl.String
	case TokenBytes:
		return idl.Bytes
	case TokenDouble:
		return idl.Double
	case TokenFloat:
		return idl.Float
	}
	panic("parser: scalarOf called with non-scalar token " + kind.String())
}
