package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/journal"
	"github.com/unowned-ai/moodflow/pkg/moods"
)

var (
	moodFlag       string
	activitiesFlag string
	notesFlag      string
	limitFlag      int
	jsonFlag       bool
)

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "Manage mood entries",
	Long:  `Add, list, show and delete mood entries.`,
}

var addEntryCmd = &cobra.Command{
	Use:   "add",
	Short: "Record how you feel right now",
	Long:  `Record a new entry with a mood (happy, neutral or sad), optional comma-separated activities and optional notes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if moodFlag == "" {
			return errors.New("please select a mood with --mood (happy, neutral or sad)")
		}

		now, err := clock()
		if err != nil {
			return err
		}
		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		entry, err := b.journal.Add(cmd.Context(), moodFlag, activitiesFlag, notesFlag, now())
		if errors.Is(err, moods.ErrInvalidMood) {
			return fmt.Errorf("unknown mood %q (use happy, neutral or sad)", moodFlag)
		}
		if err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Entry saved!")
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	},
}

var getEntryCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Show an entry by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryID(args[0])
		if err != nil {
			return err
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		entry, err := b.journal.Get(cmd.Context(), entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		if jsonFlag {
			return writeJSON(cmd.OutOrStdout(), entry)
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if limitFlag < 0 {
			return errors.New("--limit must not be negative")
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		entries, err := b.journal.ListNewestFirst(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}
		if limitFlag > 0 && len(entries) > limitFlag {
			entries = entries[:limitFlag]
		}

		out := cmd.OutOrStdout()
		if jsonFlag {
			return writeJSON(out, entries)
		}
		if len(entries) == 0 {
			fmt.Fprintln(out, "No entries yet.")
			return nil
		}

		fmt.Fprintln(out, "ID | Date | Mood | Activities | Notes")
		fmt.Fprintln(out, "------------------------------------------------------------")
		for _, e := range entries {
			fmt.Fprintf(out, "%d | %s | %s | %s | %s\n",
				e.ID, moods.FormatDate(e.Date), e.Mood.Style().Name, formatActivities(e.Activities), e.Notes)
		}
		return nil
	},
}

var deleteEntryCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently remove an entry from the collection.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := parseEntryID(args[0])
		if err != nil {
			return err
		}

		b, err := openBackend(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		err = b.journal.Delete(cmd.Context(), entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Entry deleted successfully!")
		return nil
	},
}

func initEntriesCmd() {
	addEntryCmd.Flags().StringVar(&moodFlag, "mood", "", "Mood: happy, neutral or sad")
	addEntryCmd.Flags().StringVar(&activitiesFlag, "activities", "", "Comma-separated activities, e.g. \"exercise, reading\"")
	addEntryCmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	addEntryCmd.MarkFlagRequired("mood")

	listEntriesCmd.Flags().IntVar(&limitFlag, "limit", 0, "Maximum number of entries to show (0 shows all)")
	listEntriesCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of a table")
	getEntryCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print JSON instead of text")

	entriesCmd.AddCommand(addEntryCmd, getEntryCmd, listEntriesCmd, deleteEntryCmd)
}

func parseEntryID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entry ID: %w", err)
	}
	return id, nil
}

func printEntry(out io.Writer, entry moods.Entry) {
	date := moods.FormatDate(entry.Date)
	if t, err := entry.Time(); err == nil {
		date += " " + t.Format("15:04")
	}
	style := entry.Mood.Style()

	fmt.Fprintln(out, "Entry Details:")
	fmt.Fprintf(out, "ID:         %d\n", entry.ID)
	fmt.Fprintf(out, "Date:       %s\n", date)
	fmt.Fprintf(out, "Mood:       %s %s\n", style.Emoji, style.Name)
	fmt.Fprintf(out, "Activities: %s\n", formatActivities(entry.Activities))
	fmt.Fprintln(out, "\nNotes:")
	fmt.Fprintln(out, "------------------------------------------------------------")
	fmt.Fprintln(out, entry.Notes)
	fmt.Fprintln(out, "------------------------------------------------------------")
}

func formatActivities(activities []string) string {
	if len(activities) == 0 {
		return "-"
	}
	return strings.Join(activities, ", ")
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
