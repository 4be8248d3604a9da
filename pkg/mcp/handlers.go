package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
	"github.com/unowned-ai/moodflow/pkg/stats"
)

// ToolNames lists the tools registered by RegisterTools, in registration order.
var ToolNames = []string{
	"ping",
	"add_mood_entry",
	"list_mood_entries",
	"delete_mood_entry",
	"get_mood_stats",
	"get_weekly_mood",
	"get_monthly_mood",
}

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the MoodFlow MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_moodflow"), nil
}

// RegisterAddEntryTool registers the add_mood_entry tool.
func RegisterAddEntryTool(s *server.MCPServer, j *journal.Journal, now func() time.Time) {
	addTool := mcp.NewTool("add_mood_entry",
		mcp.WithDescription("Records how the user feels right now."),
		mcp.WithString("mood", mcp.Required(), mcp.Enum("happy", "neutral", "sad"), mcp.Description("The current mood.")),
		mcp.WithString("activities", mcp.Description("Optional comma-separated list of activities, e.g. 'exercise, reading'.")),
		mcp.WithString("notes", mcp.Description("Optional free-form notes.")),
	)
	s.AddTool(addTool, addEntryHandler(j, now))
}

func addEntryHandler(j *journal.Journal, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		mood, err := request.RequireString("mood")
		if err != nil {
			return mcp.NewToolResultError("'mood' parameter is required and must be one of happy, neutral or sad."), nil
		}
		activities := request.GetString("activities", "")
		notes := request.GetString("notes", "")

		entry, err := j.Add(ctx, mood, activities, notes, now())
		if errors.Is(err, moods.ErrInvalidMood) {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown mood %q. Use happy, neutral or sad.", mood)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to save entry: %v", err)), nil
		}
		return jsonResult(entry)
	}
}

// RegisterListEntriesTool registers the list_mood_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, j *journal.Journal) {
	listTool := mcp.NewTool("list_mood_entries",
		mcp.WithDescription("Lists recorded mood entries, newest first."),
		mcp.WithNumber("limit", mcp.Description("Optional maximum number of entries to return. 0 or absent returns all.")),
	)
	s.AddTool(listTool, listEntriesHandler(j))
}

func listEntriesHandler(j *journal.Journal) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := request.GetInt("limit", 0)
		if limit < 0 {
			return mcp.NewToolResultError("'limit' must not be negative."), nil
		}

		entries, err := j.ListNewestFirst(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		return jsonResult(entries)
	}
}

// RegisterDeleteEntryTool registers the delete_mood_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, j *journal.Journal) {
	deleteTool := mcp.NewTool("delete_mood_entry",
		mcp.WithDescription("Deletes a mood entry by its id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Id of the entry, as returned by list_mood_entries.")),
		mcp.WithDestructiveHintAnnotation(true),
	)
	s.AddTool(deleteTool, deleteEntryHandler(j))
}

func deleteEntryHandler(j *journal.Journal) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireInt("id")
		if err != nil {
			return mcp.NewToolResultError("'id' parameter is required and must be a number."), nil
		}

		err = j.Delete(ctx, int64(id))
		if errors.Is(err, journal.ErrEntryNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("Entry %d not found, nothing to delete.", id)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry %d: %v", id, err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Entry %d deleted successfully.", id)), nil
	}
}

// RegisterStatsTool registers the get_mood_stats tool.
func RegisterStatsTool(s *server.MCPServer, j *journal.Journal, now func() time.Time) {
	statsTool := mcp.NewTool("get_mood_stats",
		mcp.WithDescription("Returns the dashboard summary: entry count, day streak, happy percentage, mood distribution, the last seven days and the current month."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(statsTool, statsHandler(j, now))
}

func statsHandler(j *journal.Journal, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary, err := j.Summary(ctx, now())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to compute statistics: %v", err)), nil
		}
		return jsonResult(summary)
	}
}

// RegisterWeeklyTool registers the get_weekly_mood tool.
func RegisterWeeklyTool(s *server.MCPServer, j *journal.Journal, now func() time.Time) {
	weeklyTool := mcp.NewTool("get_weekly_mood",
		mcp.WithDescription("Returns the mood of each of the last seven days, oldest first. Days without an entry have no mood."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(weeklyTool, weeklyHandler(j, now))
}

func weeklyHandler(j *journal.Journal, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := j.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		return jsonResult(stats.WeeklyWindow(entries, now()))
	}
}

// RegisterMonthlyTool registers the get_monthly_mood tool.
func RegisterMonthlyTool(s *server.MCPServer, j *journal.Journal, now func() time.Time) {
	monthlyTool := mcp.NewTool("get_monthly_mood",
		mcp.WithDescription("Returns a calendar of the current month. Leading nulls pad the first week so it starts on Sunday."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.AddTool(monthlyTool, monthlyHandler(j, now))
}

type monthlyResult struct {
	Month    string           `json:"month"`
	Weekdays [7]string        `json:"weekdays"`
	Days     []*stats.DayCell `json:"days"`
}

func monthlyHandler(j *journal.Journal, now func() time.Time) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := j.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}
		t := now()
		return jsonResult(monthlyResult{
			Month:    stats.MonthLabel(t),
			Weekdays: stats.WeekdayHeaders,
			Days:     stats.MonthlyGrid(entries, t),
		})
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
