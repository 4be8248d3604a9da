package mcp

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	moodflow "github.com/unowned-ai/moodflow/pkg"
	"github.com/unowned-ai/moodflow/pkg/journal"
)

type MoodflowMCPServer struct {
	mcpServer *server.MCPServer
	journal   *journal.Journal
	now       func() time.Time
}

// NewMoodflowMCPServer wraps j in an MCP server. now supplies the reference
// time for statistics; its location decides which day is "today".
func NewMoodflowMCPServer(j *journal.Journal, now func() time.Time) *MoodflowMCPServer {
	if now == nil {
		now = time.Now
	}

	s := server.NewMCPServer(
		"MoodFlow MCP Server",
		moodflow.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
		server.WithRecovery(),
	)

	return &MoodflowMCPServer{
		mcpServer: s,
		journal:   j,
		now:       now,
	}
}

// RegisterTools adds every moodflow tool to the server.
func (s *MoodflowMCPServer) RegisterTools() {
	RegisterPingTool(s.mcpServer)
	RegisterAddEntryTool(s.mcpServer, s.journal, s.now)
	RegisterListEntriesTool(s.mcpServer, s.journal)
	RegisterDeleteEntryTool(s.mcpServer, s.journal)
	RegisterStatsTool(s.mcpServer, s.journal, s.now)
	RegisterWeeklyTool(s.mcpServer, s.journal, s.now)
	RegisterMonthlyTool(s.mcpServer, s.journal, s.now)
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
// Transport errors go to the default logger so stdout stays reserved for
// JSON-RPC.
func (s *MoodflowMCPServer) Start() error {
	errLog := log.Default().StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
	return server.ServeStdio(s.mcpServer, server.WithErrorLogger(errLog))
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *MoodflowMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
