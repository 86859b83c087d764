package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/havoc/config"
)

const (
	ServerName = "havoc"

	// parseCacheSize bounds the documents kept between tool calls; clients
	// tend to send the same source to several tools in a row.
	parseCacheSize = 32
)

var log = commonlog.GetLogger("havoc.mcp")

type Server struct {
	mcp   *server.MCPServer
	cache *config.ParseCache
}

func NewServer(version string) *Server {
	s := &Server{
		mcp:   server.NewMCPServer(ServerName, version),
		cache: config.NewParseCache(parseCacheSize),
	}
	s.registerTools()
	return s
}

// Serve runs the server on stdio until the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	log.Info("serving on stdio")
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerTools() {
	s.mcp.AddTool(parseIDLTool(), s.handleParseIDL)
	s.mcp.AddTool(resolveEndpointTool(), s.handleResolveEndpoint)
	s.mcp.AddTool(mapTypeTool(), s.handleMapType)
}
