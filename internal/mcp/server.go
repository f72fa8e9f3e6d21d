package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Grease the Groove", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Personal training log with a rule-based progression engine. Log sets, query history, and ask for the computed next target per exercise."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetLogs, Handler: h.getLogs},
		server.ServerTool{Tool: toolLogSet, Handler: h.logSet},
		server.ServerTool{Tool: toolGetNextTarget, Handler: h.getNextTarget},
		server.ServerTool{Tool: toolGetExerciseStats, Handler: h.getExerciseStats},
		server.ServerTool{Tool: toolGetTrainingWeek, Handler: h.getTrainingWeek},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resExercises, Handler: h.exercisesResource},
		server.ServerResource{Resource: resWeeklySummary, Handler: h.weeklySummaryResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resExercises = mcp.NewResource(
	"gtg://exercises",
	"Exercises",
	mcp.WithResourceDescription("All configured exercises with their progression settings"),
	mcp.WithMIMEType("application/json"),
)

var resWeeklySummary = mcp.NewResource(
	"gtg://weekly_summary",
	"Weekly Summary",
	mcp.WithResourceDescription("Per-exercise volume for the current and previous rolling week, with pain flags"),
	mcp.WithMIMEType("application/json"),
)
