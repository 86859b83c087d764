// Package idl holds the in-memory model of an interface definition: a small
// proto-like language with packages, imports, options, messages and services.
//
// # Overview
//
// Sources are turned into a Document by the idl/parser package:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Source    │────▶│   Lexer     │────▶│   Parser    │────▶ *Document
//	│  (bytes)    │     │  (tokens)   │     │ (recursive) │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// A Document is passive data. It is built once by a single parse call and
// never changed afterwards, so it can be shared between goroutines without
// locking.
//
// # Type references
//
// Field types, request types and response types are plain strings. A field
// type is either one of the scalar keywords (see Scalar) or the name of a
// message. The parser never checks that a referenced message exists; that
// lookup happens in Resolve:
//
//	res, err := doc.Resolve("AuthService", "Login", "", "")
//	// res.RequestFields are the fields of LoginRequest, in declared order
//
// Resolve fails with a *ResolutionError wrapping ErrServiceNotFound,
// ErrMethodNotFound or ErrMessageNotFound.
//
// # Uniqueness
//
// Method names are unique within a service; the parser rejects duplicates.
// Message names and field numbers are not checked during parsing. Check
// reports them for callers that want stricter validation.
//
// # Grammar
//
// The accepted language is described by the EBNF in grammar.ebnf, available
// at run time through GrammarSource and Grammar.
package idl
