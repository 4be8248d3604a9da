package main

import (
	"github.com/spf13/cobra"

	"github.com/unowned-ai/moodflow/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Show the interactive dashboard",
	Long:  `Open the terminal dashboard with statistics, the entry list and the new entry form.`,
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

		return tui.ShowTUI(b.journal, now, b.source)
	},
}
