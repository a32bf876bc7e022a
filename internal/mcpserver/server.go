// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the photo catalog to LLM consumers via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dipdaga/patina/internal/catalog"
	"github.com/dipdaga/patina/internal/filter"
	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/tagindex"
	"github.com/dipdaga/patina/internal/viewstate"
)

const defaultSearchLimit = 20

// Server wraps the MCP server with catalog tools.
type Server struct {
	mcp       *server.MCPServer
	records   []models.Record
	index     *tagindex.Index
	curated   []string
	chipCount int
}

// New creates an MCP server over the loaded catalog. chipCount bounds
// the list_tags chip strip; values below 1 fall back to the search limit.
func New(records []models.Record, curated []string, chipCount int) *Server {
	if chipCount < 1 {
		chipCount = defaultSearchLimit
	}
	s := &Server{
		records:   records,
		index:     tagindex.Build(records),
		curated:   curated,
		chipCount: chipCount,
	}

	s.mcp = server.NewMCPServer(
		"Patina",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_catalog",
		mcp.WithDescription("Search the photo catalog. Matching is recall-biased: "+
			"any query term hitting the title or any tag includes the record."),
		mcp.WithString("query", mcp.Description("Free-text search terms")),
		mcp.WithString("tags", mcp.Description("Comma-joined tag selection (OR-combined)")),
	), s.searchCatalog)

	s.mcp.AddTool(mcp.NewTool("get_record",
		mcp.WithDescription("Fetch one catalog record by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Record id")),
	), s.getRecord)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List the tag chip strip: curated tags first, then the "+
			"most frequent non-numeric tags, with occurrence counts."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("share_view",
		mcp.WithDescription("Build the shareable address-bar query string for a "+
			"gallery view (tags, query, open record)."),
		mcp.WithString("tags", mcp.Description("Comma-joined tag selection")),
		mcp.WithString("query", mcp.Description("Free-text search")),
		mcp.WithString("open", mcp.Description("Record id to open in the detail modal")),
	), s.shareView)

	// Resource: catalog record contract.
	s.mcp.AddResource(
		mcp.NewResource("patina://catalog-format", "Catalog Record Contract",
			mcp.WithResourceDescription("Normalized catalog record shape and matching rules."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readCatalogFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := ""
	if q, err := req.RequireString("query"); err == nil {
		query = q
	}
	var selected []string
	if t, err := req.RequireString("tags"); err == nil && t != "" {
		for _, tag := range strings.Split(t, ",") {
			if tag != "" {
				selected = append(selected, tag)
			}
		}
	}

	results := filter.Apply(s.records, selected, query)
	if len(results) > defaultSearchLimit {
		results = results[:defaultSearchLimit]
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getRecord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rec, err := catalog.FindByID(s.records, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(rec, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags := s.index.TopTags(s.chipCount, s.curated)
	var b strings.Builder
	for _, tag := range tags {
		fmt.Fprintf(&b, "%s (%d)\n", tag, s.index.Count(tag))
	}
	if b.Len() == 0 {
		return mcp.NewToolResultText("no tags in catalog"), nil
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (s *Server) shareView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var state viewstate.State
	if t, err := req.RequireString("tags"); err == nil && t != "" {
		for _, tag := range strings.Split(t, ",") {
			if tag != "" {
				state.SelectedTags = append(state.SelectedTags, tag)
			}
		}
	}
	if q, err := req.RequireString("query"); err == nil {
		state.Query = q
	}
	if open, err := req.RequireString("open"); err == nil && open != "" {
		if _, findErr := catalog.FindByID(s.records, open); findErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", open)), nil
		}
		state.OpenID = open
	}
	return mcp.NewToolResultText("?" + state.Encode()), nil
}

func (s *Server) readCatalogFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "patina://catalog-format",
			MIMEType: "text/markdown",
			Text:     CatalogFormatContract,
		},
	}, nil
}
