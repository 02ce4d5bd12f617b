package mcp

import (
	"context"

	"pollscape/internal/session"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// Server exposes one explorer session as MCP tools.
type Server struct {
	session             *session.Session
	enableMermaidCharts bool
	server              *sdk.Server
}

// Options configure the MCP server.
type Options struct {
	Version             string
	EnableMermaidCharts bool
}

// NewServer creates a new MCP server backed by sess.
func NewServer(sess *session.Session, opts Options) *Server {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	s := &Server{
		session:             sess,
		enableMermaidCharts: opts.EnableMermaidCharts,
		server: sdk.NewServer(&sdk.Implementation{
			Name:    "pollscape",
			Version: opts.Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Serve runs the MCP protocol over stdio until the client disconnects or
// ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	log.Info().Msg("MCP server listening on stdio")
	return s.server.Run(ctx, &sdk.StdioTransport{})
}

// Connect attaches the server to an arbitrary transport.
func (s *Server) Connect(ctx context.Context, t sdk.Transport) (*sdk.ServerSession, error) {
	return s.server.Connect(ctx, t, nil)
}
