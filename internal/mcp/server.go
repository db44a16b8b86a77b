package mcp

import (
	"io/fs"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/route"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes route resolution tools.
type Server struct {
	index    *pages.Index
	opts     route.Options
	partials fs.FS
	md       *converter.Converter
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server over the given page index. partials
// may be nil, in which case read_page reports every page as missing.
func NewServer(index *pages.Index, opts route.Options, partials fs.FS) *Server {
	s := &Server{
		index:    index,
		opts:     opts,
		partials: partials,
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}

	s.mcp = server.NewMCPServer(
		"iodocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(resolveRouteTool, s.handleResolveRoute)
	s.mcp.AddTool(listPagesTool, s.handleListPages)
	s.mcp.AddTool(readPageTool, s.handleReadPage)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
