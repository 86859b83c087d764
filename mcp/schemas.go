package mcp

import (
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dhamidi/havoc/framework"
)

func parseIDLTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_idl",
		Description: "Parse IDL source text and summarize its package, options, imports, services and messages",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "IDL source text",
				},
			},
			Required: []string{"source"},
		},
	}
}

func resolveEndpointTool() mcp.Tool {
	return mcp.Tool{
		Name:        "resolve_endpoint",
		Description: "Resolve the request and response messages of an RPC method, with their fields in declared order",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "IDL source text",
				},
				"service": map[string]interface{}{
					"type":        "string",
					"description": "Service name",
				},
				"method": map[string]interface{}{
					"type":        "string",
					"description": "RPC method name",
				},
				"request_type": map[string]interface{}{
					"type":        "string",
					"description": "Request message overriding the method's declared request",
				},
				"response_type": map[string]interface{}{
					"type":        "string",
					"description": "Response message overriding the method's declared response",
				},
			},
			Required: []string{"source", "service", "method"},
		},
	}
}

func mapTypeTool() mcp.Tool {
	names := make([]interface{}, 0, len(framework.All()))
	for _, f := range framework.All() {
		names = append(names, f.String())
	}
	return mcp.Tool{
		Name:        "map_type",
		Description: "Map an IDL field type to the type used by a target framework",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"framework": map[string]interface{}{
					"type":        "string",
					"description": "Target framework",
					"enum":        names,
				},
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Scalar keyword or message name, e.g. " + strings.Join([]string{"int64", "bytes", "User"}, ", "),
				},
				"repeated": map[string]interface{}{
					"type":        "boolean",
					"description": "Wrap the type in the framework's list type",
					"default":     false,
				},
			},
			Required: []string{"framework", "type"},
		},
	}
}
