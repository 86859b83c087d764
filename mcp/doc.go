// Package mcp exposes the IDL toolchain as Model Context Protocol tools
// over stdio.
//
// Tools:
//
//	parse_idl         {source}                         document summary
//	resolve_endpoint  {source, service, method,
//	                   request_type?, response_type?}  resolved types and fields
//	map_type          {framework, type}                framework type name
//
// Lexical, syntax and resolution failures are reported as tool errors
// carrying a JSON description; malformed arguments are protocol errors.
package mcp
