// Package mcp exposes progression state and schedule generation as MCP
// tools, so a coaching assistant can inspect a player's ladder and produce
// new training blocks conversationally.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("velosched", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Throwing velocity training scheduler. Inspect player progression, generate periodized weekly schedules, and advance training phases. Players are identified by UUID; use list_players to find them."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPlayers, Handler: h.listPlayers},
		server.ServerTool{Tool: toolGetProgression, Handler: h.getProgression},
		server.ServerTool{Tool: toolGetLatestSchedule, Handler: h.getLatestSchedule},
		server.ServerTool{Tool: toolGenerateSchedule, Handler: h.generateSchedule},
		server.ServerTool{Tool: toolTransitionPhase, Handler: h.transitionPhase},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRoster, Handler: h.roster},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

var resRoster = mcp.NewResource(
	"velosched://roster",
	"Player Roster",
	mcp.WithResourceDescription("All registered players with name, age, and ID"),
	mcp.WithMIMEType("application/json"),
)
