// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes Dagaz daily-note tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/dagaz/internal/calendar"
	"github.com/starford/dagaz/internal/capture"
	"github.com/starford/dagaz/internal/dateid"
	"github.com/starford/dagaz/internal/journal"
)

// Server wraps the MCP server with Dagaz tools.
type Server struct {
	mcp      *server.MCPServer
	journal  *journal.Journal
	resolver *capture.Resolver
	bridge   *calendar.Bridge
}

// New creates a new MCP server with all Dagaz tools registered.
func New(j *journal.Journal, resolver *capture.Resolver) *Server {
	s := &Server{journal: j, resolver: resolver, bridge: calendar.New(j)}

	s.mcp = server.NewMCPServer(
		"Dagaz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_dailies",
		mcp.WithDescription("List all daily notes in chronological order."),
	), s.listDailies)

	s.mcp.AddTool(mcp.NewTool("read_daily",
		mcp.WithDescription("Read the full content of the daily note for a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date in YYYY-MM-DD form")),
	), s.readDaily)

	s.mcp.AddTool(mcp.NewTool("capture_daily",
		mcp.WithDescription("Create the daily note for a date if it does not exist and append "+
			"templated content to it. The note is seeded with a '#+title: YYYY-MM-DD' line. "+
			"Set goto_only to resolve the file without inserting a template."),
		mcp.WithString("date", mcp.Description("Calendar date in YYYY-MM-DD form (defaults to today)")),
		mcp.WithString("template", mcp.Description("Template key to insert (defaults to the configured default)")),
		mcp.WithBoolean("goto_only", mcp.Description("Only resolve/create the file, insert nothing")),
	), s.captureDaily)

	s.mcp.AddTool(mcp.NewTool("calendar_marks",
		mcp.WithDescription("Return the dates in a range that have daily notes."),
		mcp.WithString("from", mcp.Required(), mcp.Description("Range start, YYYY-MM-DD, inclusive")),
		mcp.WithString("to", mcp.Required(), mcp.Description("Range end, YYYY-MM-DD, inclusive")),
	), s.calendarMarks)

	// Resource: daily-note format contract.
	s.mcp.AddResource(
		mcp.NewResource("dagaz://daily-format", "Daily Note Format",
			mcp.WithResourceDescription("Canonical format of date-named daily notes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readDailyFormatResource,
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

func (s *Server) listDailies(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.journal.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type item struct {
		Date string `json:"date"`
		Path string `json:"path"`
	}
	items := make([]item, len(notes))
	for i, n := range notes {
		items[i] = item{Date: n.ID.String(), Path: n.Path}
	}
	out, _ := json.MarshalIndent(items, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := dateid.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, found, err := s.journal.Find(id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !found {
		return mcp.NewToolResultError(fmt.Sprintf("no note for %s", id)), nil
	}
	data, err := os.ReadFile(note.Path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) captureDaily(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at := time.Now()
	if raw := req.GetString("date", ""); raw != "" {
		id, err := dateid.Parse(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		at = id.Time()
	}
	note, created, err := s.resolver.EnsureAndCapture(ctx, capture.Options{
		Time:        at,
		GoToOnly:    req.GetBool("goto_only", false),
		TemplateKey: req.GetString("template", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.Marshal(map[string]any{
		"date":    note.ID.String(),
		"path":    note.Path,
		"created": created,
	})
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) calendarMarks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	from, err := requireDate(req, "from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := requireDate(req, "to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var marks []string
	if err := s.bridge.MarkRange(from, to, func(d dateid.Identity) {
		marks = append(marks, d.String())
	}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.Marshal(marks)
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDailyFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "dagaz://daily-format",
			MIMEType: "text/markdown",
			Text:     DailyFormatContract,
		},
	}, nil
}

func requireDate(req mcp.CallToolRequest, key string) (dateid.Identity, error) {
	raw, err := req.RequireString(key)
	if err != nil {
		return dateid.Identity{}, err
	}
	return dateid.Parse(raw)
}
