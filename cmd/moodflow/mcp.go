package main

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MoodFlow MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes the mood journal and its
statistics as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\moodflow\moodflow.db
- macOS: ~/Library/Application Support/moodflow/moodflow.db
- Linux: ~/.local/share/moodflow/moodflow.db

Example:
  moodflow mcp
  moodflow mcp --db moods.db --timezone Europe/Berlin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		now, err := clock()
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		srv := mcp.NewMoodflowMCPServer(b.journal, now)
		srv.RegisterTools()

		// Logs go to stderr so we don't contaminate the JSON-RPC stream on stdout.
		log.Info("MoodFlow MCP server started", "storage", b.source, "timezone", cfg.Timezone)
		log.Info("Available tools: " + strings.Join(mcp.ToolNames, ", "))
		log.Info("Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
