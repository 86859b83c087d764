package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dhamidi/havoc/framework"
	"github.com/dhamidi/havoc/idl"
	"github.com/dhamidi/havoc/idl/parser"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602
	ErrorCodeInternalError = -32603
)

// sourceName labels inline sources in error positions.
const sourceName = "<source>"

func (s *Server) handleParseIDL(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	source, err := requireString(args, "source", true)
	if err != nil {
		return nil, err
	}

	doc, err := s.cache.Parse(sourceName, []byte(source))
	if err != nil {
		log.Debugf("parse_idl: %v", err)
		return mcp.NewToolResultError(formatJSON(describeError(err))), nil
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "encode document", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleResolveEndpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	source, err := requireString(args, "source", true)
	if err != nil {
		return nil, err
	}
	service, err := requireString(args, "service", true)
	if err != nil {
		return nil, err
	}
	method, err := requireString(args, "method", true)
	if err != nil {
		return nil, err
	}
	requestType, err := requireString(args, "request_type", false)
	if err != nil {
		return nil, err
	}
	responseType, err := requireString(args, "response_type", false)
	if err != nil {
		return nil, err
	}

	doc, err := s.cache.Parse(sourceName, []byte(source))
	if err != nil {
		return mcp.NewToolResultError(formatJSON(describeError(err))), nil
	}
	res, err := doc.Resolve(service, method, requestType, responseType)
	if err != nil {
		log.Debugf("resolve_endpoint: %v", err)
		return mcp.NewToolResultError(formatJSON(describeError(err))), nil
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "encode resolution", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) handleMapType(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}
	name, err := requireString(args, "framework", true)
	if err != nil {
		return nil, err
	}
	typ, err := requireString(args, "type", true)
	if err != nil {
		return nil, err
	}
	fw, err := framework.Parse(name)
	if err != nil {
		return nil, newMCPError(ErrorCodeInvalidParams, err.Error(), map[string]interface{}{
			"param":  "framework",
			"reason": "unsupported",
		})
	}
	repeated := getBoolDefault(args, "repeated", false)
	_, scalar := idl.ParseScalar(typ)

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"framework": fw.String(),
		"type":      typ,
		"scalar":    scalar,
		"repeated":  repeated,
		"mapped":    fw.MapFieldType(typ, repeated),
	})), nil
}

// describeError turns parse and resolution failures into the payload of a
// tool error.
func describeError(err error) map[string]interface{} {
	out := map[string]interface{}{"error": err.Error()}

	var lexErr *parser.LexicalError
	var synErr *parser.SyntaxError
	var resErr *idl.ResolutionError
	switch {
	case errors.As(err, &lexErr):
		out["kind"] = "lexical"
		out["reason"] = lexErr.Reason
		out["span"] = lexErr.Span
	case errors.As(err, &synErr):
		out["kind"] = "syntax"
		out["message"] = synErr.Message
		out["found"] = synErr.Found
		out["cursor"] = synErr.Cursor
		if len(synErr.Expected) > 0 {
			out["expected"] = synErr.Expected
		}
	case errors.As(err, &resErr):
		out["kind"] = "resolution"
		out["name"] = resErr.Name
		if resErr.Service != "" {
			out["service"] = resErr.Service
		}
	}
	return out
}

func requireString(args map[string]interface{}, key string, required bool) (string, error) {
	raw, present := args[key]
	if !present || raw == nil {
		if required {
			return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
				"param":  key,
				"reason": "missing",
			})
		}
		return "", nil
	}
	val, ok := raw.(string)
	if !ok {
		return "", newMCPError(ErrorCodeInvalidParams, key+" must be a string", map[string]interface{}{
			"param":  key,
			"reason": fmt.Sprintf("got %T", raw),
		})
	}
	if required && val == "" {
		return "", newMCPError(ErrorCodeInvalidParams, key+" parameter is required", map[string]interface{}{
			"param":  key,
			"reason": "empty",
		})
	}
	return val, nil
}

// newMCPError creates a protocol error; the framework handles encoding.
func newMCPError(code int, message string, data interface{}) error {
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}
