package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/moriverguide/river-conditions-service/internal/domain"
)

var stationsRiver string

var stationsCmd = &cobra.Command{
	Use:     "stations",
	Short:   "List the monitoring station registry",
	Example: `  gaugectl stations
  gaugectl stations --river current-river`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		rivers := domain.Rivers()
		if stationsRiver != "" {
			river, ok := domain.RiverByID(stationsRiver)
			if !ok {
				return fmt.Errorf("unknown river: %s", stationsRiver)
			}
			rivers = []domain.River{river}
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"River", "Station", "Site ID", "Location", "Stages (A/MF/F ft)", "Optimal (ft)"})
		table.SetAutoWrapText(false)
		for _, river := range rivers {
			for _, st := range river.Stations {
				table.Append([]string{
					river.Name,
					st.Name,
					st.ID,
					st.Location,
					formatStages(st),
					formatOptimal(st),
				})
			}
		}
		table.Render()
		return nil
	},
}

func init() {
	stationsCmd.Flags().StringVar(&stationsRiver, "river", "", "limit to one river id")
	rootCmd.AddCommand(stationsCmd)
}

func formatStages(st domain.Station) string {
	if st.ActionStage == nil && st.MinorFloodStage == nil && st.FloodStage == nil {
		return "-"
	}
	return fmt.Sprintf("%s / %s / %s",
		formatStage(st.ActionStage), formatStage(st.MinorFloodStage), formatStage(st.FloodStage))
}

func formatStage(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptimal(st domain.Station) string {
	if st.OptimalRange == nil {
		return "-"
	}
	return fmt.Sprintf("%s-%s",
		strconv.FormatFloat(st.OptimalRange.Low, 'f', -1, 64),
		strconv.FormatFloat(st.OptimalRange.High, 'f', -1, 64))
}
