package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/moriverguide/river-conditions-service/internal/aggregator"
	"github.com/moriverguide/river-conditions-service/internal/store"
)

var (
	snapshotsDB    string
	snapshotsRiver string
	snapshotsLimit int
)

var snapshotsCmd = &cobra.Command{
	Use:     "snapshots",
	Short:   "List snapshots stored by 'fetch --snapshot-db'",
	Example: `  gaugectl snapshots --db readings.db --river current-river --limit 5`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := store.Open(snapshotsDB)
		if err != nil {
			return err
		}
		defer db.Close()

		snaps, err := db.Snapshots(snapshotsRiver, snapshotsLimit)
		if err != nil {
			return fmt.Errorf("reading snapshots: %w", err)
		}
		total, err := db.Count()
		if err != nil {
			return fmt.Errorf("reading store stats: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Store: %s (%d snapshots total)\n\n", db.Path(), total)

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Taken At", "Stations", "Flagged"})
		for _, snap := range snaps {
			var rc aggregator.RiverConditions
			if err := json.Unmarshal(snap.Payload, &rc); err != nil {
				continue
			}
			flagged := ""
			if rc.Error != "" {
				flagged = rc.Error
			}
			table.Append([]string{
				snap.TakenAt.Local().Format(time.RFC3339),
				fmt.Sprintf("%d", len(rc.Stations)),
				flagged,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().StringVar(&snapshotsDB, "db", "", "bbolt snapshot file")
	snapshotsCmd.Flags().StringVar(&snapshotsRiver, "river", "", "river id")
	snapshotsCmd.Flags().IntVar(&snapshotsLimit, "limit", 10, "max snapshots to show")
	_ = snapshotsCmd.MarkFlagRequired("db")
	_ = snapshotsCmd.MarkFlagRequired("river")
	rootCmd.AddCommand(snapshotsCmd)
}
