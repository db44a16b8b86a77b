package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/route"
)

// resolveResult is the JSON payload of resolve_route.
type resolveResult struct {
	Fragment     string `json:"fragment"`
	SectionID    string `json:"section_id"`
	PartialID    string `json:"partial_id,omitempty"`
	PartialTitle string `json:"partial_title"`
	PartialPath  string `json:"partial_path"`
	URL          string `json:"url,omitempty"`
}

// resolve runs fragment through a fresh resolver. An empty fragment
// resolves the default start page.
func (s *Server) resolve(raw string) (*route.Resolver, string, error) {
	fragment := strings.TrimPrefix(strings.TrimSpace(raw), "#")

	res := route.New(s.index, s.opts)
	if fragment == "" {
		return res, res.Initialize(""), nil
	}
	if !strings.HasPrefix(fragment, route.Marker) {
		return nil, "", fmt.Errorf("%q is not a route: fragments must start with %q", fragment, route.Marker)
	}
	res.OnFragmentChanged(fragment)
	return res, fragment, nil
}

// handleResolveRoute resolves a fragment with a fresh resolver.
func (s *Server) handleResolveRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, fragment, err := s.resolve(request.GetString("fragment", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st := res.State()
	out := resolveResult{
		Fragment:     fragment,
		SectionID:    st.SectionID,
		PartialID:    st.PartialID,
		PartialTitle: st.PartialTitle,
		PartialPath:  res.CurrentPartialPath(),
	}
	if st.Found() {
		out.URL = "#" + fragment
	}
	return jsonResult(out)
}

// handleListPages returns the page index or one section of it.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	list := s.index.All()
	if section := request.GetString("section", ""); section != "" {
		list = s.index.Section(section)
		if len(list) == 0 {
			return mcp.NewToolResultError(fmt.Sprintf("no pages in section %q; known sections: %s",
				section, strings.Join(s.index.Sections(), ", "))), nil
		}
	}
	return jsonResult(list)
}

// handleReadPage returns the partial behind a fragment as Markdown.
func (s *Server) handleReadPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := request.RequireString("fragment")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, fragment, err := s.resolve(fragment)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	st := res.State()
	if !st.Found() {
		return mcp.NewToolResultError(fmt.Sprintf("no page for %q", fragment)), nil
	}

	text, err := s.readPartial(st.SectionID, st.PartialID)
	if errors.Is(err, fs.ErrNotExist) {
		return mcp.NewToolResultError(fmt.Sprintf("page %q (%s) has no content file", st.PartialTitle, fragment)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("reading page: %v", err)), nil
	}
	return mcp.NewToolResultText("# " + st.PartialTitle + "\n\n" + text), nil
}

// readPartial loads a partial and converts HTML partials to Markdown.
func (s *Server) readPartial(section, id string) (string, error) {
	if s.partials == nil {
		return "", fs.ErrNotExist
	}
	name, err := pages.FindPartial(s.partials, section, id)
	if err != nil {
		return "", err
	}
	src, err := fs.ReadFile(s.partials, name)
	if err != nil {
		return "", err
	}
	if path.Ext(name) != ".html" {
		return string(src), nil
	}
	md, err := s.md.ConvertString(string(src))
	if err != nil {
		return "", fmt.Errorf("converting %s: %w", name, err)
	}
	return md, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
