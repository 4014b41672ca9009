package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bucketlist/server/pkg/geo"
)

// Flag parsing is off so negative coordinates are not read as shorthand flags.
var distanceCmd = &cobra.Command{
	Use:                "distance LAT1 LON1 LAT2 LON2",
	Short:              "Great-circle distance in miles, rounded to one decimal",
	DisableFlagParsing: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			if a == "-h" || a == "--help" {
				return cmd.Help()
			}
		}
		if err := cobra.ExactArgs(4)(cmd, args); err != nil {
			return err
		}

		var v [4]float64
		for i, a := range args {
			f, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("argument %d: %w", i+1, err)
			}
			v[i] = f
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%.1f\n", geo.DistanceMiles(v[0], v[1], v[2], v[3]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(distanceCmd)
}
