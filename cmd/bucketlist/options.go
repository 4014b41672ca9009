package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
)

var optionsCategory string

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "Show the filter options offered for a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, ok := activity.ParseCategory(optionsCategory)
		if !ok {
			return fmt.Errorf("unknown category %q", optionsCategory)
		}
		opts := filter.OptionsFor(c)
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Category: %s\n", opts.Category)
		printOptions(cmd, "Difficulty", opts.Difficulty)
		printOptions(cmd, "Stream type", opts.StreamType)
		printOptions(cmd, "Distance", opts.Distance)
		printOptions(cmd, "Length", opts.Length)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optionsCmd)
	optionsCmd.Flags().StringVarP(&optionsCategory, "category", "c", string(activity.DefaultCategory), "Category")
}

func printOptions(cmd *cobra.Command, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", label, strings.Join(values, ", "))
}
