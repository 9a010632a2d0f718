// Package mcpserver exposes the dashboard to LLM clients over the Model
// Context Protocol (stdio transport).
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/portal/internal/apperr"
	"github.com/starford/portal/internal/dashboard"
	"github.com/starford/portal/internal/projects"
)

const (
	formatURI   = "portal://project-format"
	overviewURI = "portal://overview"
)

// Deps are the services exposed as tools.
type Deps struct {
	Links      *dashboard.Links
	Categories *dashboard.Categories
	Settings   *dashboard.Settings
	Projects   *projects.Service
}

// Server wraps the MCP server with dashboard tools.
type Server struct {
	mcp *server.MCPServer
	Deps
}

// New creates an MCP server with every tool and resource registered.
func New(d Deps, version string) *Server {
	s := &Server{Deps: d}

	s.mcp = server.NewMCPServer(
		"Portal",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_links",
		mcp.WithDescription("List dashboard links. Optionally restrict to one category."),
		mcp.WithNumber("category_id", mcp.Description("Only links in this category")),
	), s.listLinks)

	s.mcp.AddTool(mcp.NewTool("add_link",
		mcp.WithDescription("Add a link to the dashboard."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Display name")),
		mcp.WithString("url", mcp.Required(), mcp.Description("Target URL")),
		mcp.WithNumber("category_id", mcp.Description("Category id; omit for uncategorized")),
	), s.addLink)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List link categories in display order."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("list_projects",
		mcp.WithDescription("List project note names."),
	), s.listProjects)

	s.mcp.AddTool(mcp.NewTool("read_project",
		mcp.WithDescription("Read the Markdown content of a project note."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Note name, with or without .md")),
	), s.readProject)

	s.mcp.AddTool(mcp.NewTool("write_project",
		mcp.WithDescription("Create or overwrite a project note. See "+formatURI+" for the layout."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Note name, with or without .md")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content")),
	), s.writeProject)

	s.mcp.AddTool(mcp.NewTool("search_projects",
		mcp.WithDescription("Full-text search over project titles, tags and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 20)")),
	), s.searchProjects)

	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Project Note Format",
			mcp.WithResourceDescription("Layout of project notes and how they are indexed."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readFormat,
	)
	s.mcp.AddResource(
		mcp.NewResource(overviewURI, "Dashboard Overview",
			mcp.WithResourceDescription("Site title, homepage message and link/category/project counts."),
			mcp.WithMIMEType("application/json"),
		),
		s.readOverview,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func errorResult(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(apperr.Message(err, err.Error()))
}

// optionalID reads a numeric argument, nil when absent.
func optionalID(req mcp.CallToolRequest, key string) *int {
	v, ok := req.GetArguments()[key]
	if !ok {
		return nil
	}
	return dashboard.CoerceCategoryID(v)
}

func (s *Server) listLinks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	links := s.Links.List(ctx)
	if cat := optionalID(req, "category_id"); cat != nil {
		filtered := links[:0]
		for _, l := range links {
			if l.CategoryID != nil && *l.CategoryID == *cat {
				filtered = append(filtered, l)
			}
		}
		links = filtered
	}
	return jsonResult(links)
}

func (s *Server) addLink(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	link, err := s.Links.Create(ctx, dashboard.LinkInput{
		Name:       name,
		URL:        url,
		CategoryID: optionalID(req, "category_id"),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(link)
}

func (s *Server) listCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.Categories.List(ctx))
}

func (s *Server) listProjects(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names, err := s.Projects.List(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	if len(names) == 0 {
		return mcp.NewToolResultText("no projects"), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) readProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.Projects.Read(ctx, name)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(p.Content), nil
}

func (s *Server) writeProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	saved, err := s.Projects.Write(ctx, name, content)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", saved)), nil
}

func (s *Server) searchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.Projects.Search(ctx, query, req.GetInt("limit", 20))
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(results)
}

func (s *Server) readFormat(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: formatURI, MIMEType: "text/markdown", Text: ProjectFormat},
	}, nil
}

// Overview is the body of the overview resource.
type Overview struct {
	SiteTitle       string `json:"siteTitle"`
	HomepageMessage string `json:"homepageMessage"`
	Links           int    `json:"links"`
	Categories      int    `json:"categories"`
	Projects        int    `json:"projects"`
	ChatProvider    string `json:"chatProvider"`
}

func (s *Server) overview(ctx context.Context) (Overview, error) {
	names, err := s.Projects.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		SiteTitle:       s.Settings.SiteTitle(ctx),
		HomepageMessage: s.Settings.HomepageMessage(ctx),
		Links:           len(s.Links.List(ctx)),
		Categories:      len(s.Categories.List(ctx)),
		Projects:        len(names),
		ChatProvider:    s.Settings.ChatConfig(ctx).Provider,
	}, nil
}

func (s *Server) readOverview(ctx context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	ov, err := s.overview(ctx)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(ov)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{URI: overviewURI, MIMEType: "application/json", Text: string(out)},
	}, nil
}
