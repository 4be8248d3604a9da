package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/stats"
)

var statsJSONFlag bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show mood statistics",
	Long:  `Show the dashboard statistics: totals, streak, happiness, distribution, the last seven days and the current month.`,
}

var statsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show totals, streak, happiness and mood distribution",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := loadSummary(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if statsJSONFlag {
			return writeJSON(out, summary)
		}

		fmt.Fprintf(out, "Total entries: %d\n", summary.Totals.Count)
		fmt.Fprintf(out, "Day streak:    %d\n", summary.Streak)
		fmt.Fprintf(out, "Happiness:     %d%%\n", summary.HappyPercentage)
		fmt.Fprintln(out, "\nMood distribution:")
		for _, share := range summary.Distribution {
			fmt.Fprintf(out, "  %s %-8s %3.0f%% (%d)\n", share.Mood.Style().Emoji, share.Name, share.Percent, share.Count)
		}
		return nil
	},
}

var statsWeekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show the mood of each of the last seven days",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := loadSummary(cmd)
		if err != nil {
			return err
		}
		if statsJSONFlag {
			return writeJSON(cmd.OutOrStdout(), summary.Week)
		}
		printWeek(cmd.OutOrStdout(), summary.Week)
		return nil
	},
}

var statsMonthCmd = &cobra.Command{
	Use:   "month",
	Short: "Show a calendar of the current month",
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := loadSummary(cmd)
		if err != nil {
			return err
		}
		if statsJSONFlag {
			return writeJSON(cmd.OutOrStdout(), summary.Month)
		}
		printMonth(cmd.OutOrStdout(), summary.MonthLabel, summary.Month)
		return nil
	},
}

func initStatsCmd() {
	statsCmd.PersistentFlags().BoolVar(&statsJSONFlag, "json", false, "Print JSON instead of text")
	statsCmd.AddCommand(statsSummaryCmd, statsWeekCmd, statsMonthCmd)
}

func loadSummary(cmd *cobra.Command) (stats.Summary, error) {
	now, err := clock()
	if err != nil {
		return stats.Summary{}, err
	}
	b, err := openBackend(cmd.Context())
	if err != nil {
		return stats.Summary{}, err
	}
	defer b.Close()

	summary, err := b.journal.Summary(cmd.Context(), now())
	if err != nil {
		return stats.Summary{}, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return summary, nil
}

// moodMark is the one-character symbol used in text calendars.
func moodMark(cell stats.DayCell) string {
	if !cell.Recorded() {
		return "·"
	}
	return cell.Mood.Style().Emoji
}

func printWeek(out io.Writer, week []stats.DayCell) {
	for _, day := range week {
		mood := "-"
		if day.Recorded() {
			mood = day.Mood.Style().Name
		}
		fmt.Fprintf(out, "%s %s  %s %s\n", day.Weekday, day.Date, moodMark(day), mood)
	}
}

func printMonth(out io.Writer, label string, month []*stats.DayCell) {
	fmt.Fprintln(out, label)
	headers := make([]string, 0, len(stats.WeekdayHeaders))
	for _, h := range stats.WeekdayHeaders {
		headers = append(headers, fmt.Sprintf("%4s", h))
	}
	fmt.Fprintln(out, strings.Join(headers, ""))

	var row strings.Builder
	for i, cell := range month {
		if cell == nil {
			row.WriteString("    ")
		} else {
			row.WriteString(fmt.Sprintf("%2d%s ", cell.DayNumber, moodMark(*cell)))
		}
		if i%7 == 6 {
			fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
			row.Reset()
		}
	}
	if row.Len() > 0 {
		fmt.Fprintln(out, strings.TrimRight(row.String(), " "))
	}
}
