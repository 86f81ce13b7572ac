package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moriverguide/river-conditions-service/internal/domain"
)

var (
	classifyRiver   string
	classifyStation string
	classifyCFS     float64
)

var classifyCmd = &cobra.Command{
	Use:   "classify <gage-height-ft>",
	Short: "Classify a gage height (and optionally a discharge) offline",
	Example: `  gaugectl classify 5.0 --river current-river --station 07067000
  gaugectl classify 12.5 --river current-river --cfs 3400`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := strconv.ParseFloat(args[0], 64)
		if err != nil || math.IsNaN(height) || math.IsInf(height, 0) {
			return fmt.Errorf("invalid gage height: %q", args[0])
		}

		result := domain.ClassifyGageHeight(height, classifyRiver, classifyStation)
		fmt.Fprintf(cmd.OutOrStdout(), "status:      %s\n", result.Status)
		fmt.Fprintf(cmd.OutOrStdout(), "color:       %s\n", result.Color)
		fmt.Fprintf(cmd.OutOrStdout(), "description: %s\n", result.Description)

		if cmd.Flags().Changed("cfs") {
			flow := domain.ValidateFlowRate(classifyCFS, classifyRiver)
			fmt.Fprintf(cmd.OutOrStdout(), "flow:        %s (normal=%t)\n", flow.Description, flow.IsNormal)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&classifyRiver, "river", "", "river id for generic thresholds")
	classifyCmd.Flags().StringVar(&classifyStation, "station", "", "station id for site-specific thresholds")
	classifyCmd.Flags().Float64Var(&classifyCFS, "cfs", 0, "discharge in CFS for the flow check")
	_ = classifyCmd.MarkFlagRequired("river")
	rootCmd.AddCommand(classifyCmd)
}
