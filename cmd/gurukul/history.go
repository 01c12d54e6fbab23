package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rahul/gurukul/internal/store"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent learning plan runs",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runs, err := store.NewRunStore(cfg.Memory.Path)
			if err != nil {
				return err
			}
			defer runs.Close()

			entries, err := runs.ListRuns(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No runs recorded yet.")
				return nil
			}
			for _, run := range entries {
				fmt.Printf("#%-4d %-20s %-12s %4dh  %-9s  %s\n",
					run.ID, run.Technology, run.Level, run.DurationHours,
					run.Status, run.CreatedAt.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of runs to show")
	return cmd
}
