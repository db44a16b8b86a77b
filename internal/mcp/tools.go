package mcp

import "github.com/mark3labs/mcp-go/mcp"

var resolveRouteTool = mcp.NewTool("resolve_route",
	mcp.WithDescription("Resolve a documentation route fragment such as \"!/core/streams\" to its section, page, title and partial path."),
	mcp.WithString("fragment",
		mcp.Description("Route fragment starting with '!'. Leave empty to resolve the default start page."),
	),
)

var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List the documentation page index, optionally restricted to one section."),
	mcp.WithString("section",
		mcp.Description("Section id to list, e.g. \"core\" or \"api\""),
	),
)

var readPageTool = mcp.NewTool("read_page",
	mcp.WithDescription("Read the content of the documentation page a route fragment resolves to, as Markdown."),
	mcp.WithString("fragment",
		mcp.Required(),
		mcp.Description("Route fragment starting with '!', e.g. \"!/core/streams\""),
	),
)
