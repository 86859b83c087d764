// Package parser turns IDL source text into an idl.Document.
//
// Lexing and parsing are separate passes. Tokenize produces the full token
// stream, ending with TokenEOF, and ParseTokens consumes it with a
// recursive-descent parser. Parse runs both. Errors are *LexicalError or
// *SyntaxError and carry source positions; only the first error is reported.
package parser
