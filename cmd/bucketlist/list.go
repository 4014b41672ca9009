package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/bucketlist/server/pkg/catalog"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog activities matching a category, search and filters",
	Long:  "Evaluates a query against the embedded catalog. Runs offline, so nothing is ever completed.",
	RunE:  runList,
}

var (
	listCategory   string
	listSearch     string
	listDifficulty []string
	listDistance   []string
	listLength     []string
	listStreamType []string
	listJSON       bool
)

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listCategory, "category", "c", string(activity.DefaultCategory), "Category (Hikes, Fly Fishing, National Parks, Ski Resorts)")
	listCmd.Flags().StringVarP(&listSearch, "q", "q", "", "Case-insensitive search on name or location")
	listCmd.Flags().StringArrayVar(&listDifficulty, "difficulty", nil, "Difficulty label, repeatable")
	listCmd.Flags().StringArrayVar(&listDistance, "distance", nil, `Distance band, e.g. "0-25 miles", repeatable`)
	listCmd.Flags().StringArrayVar(&listLength, "length", nil, `Length band, e.g. "Short (< 5 miles)", repeatable`)
	listCmd.Flags().StringArrayVar(&listStreamType, "stream-type", nil, "Stream type, repeatable")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON instead of a table")
}

func runList(cmd *cobra.Command, args []string) error {
	c, ok := activity.ParseCategory(listCategory)
	if !ok {
		return fmt.Errorf("unknown category %q", listCategory)
	}
	records, err := catalog.Seed()
	if err != nil {
		return err
	}

	q := filter.Query{
		Category: c,
		Search:   listSearch,
		Filters:  filter.NewSelection(listDifficulty, listDistance, listLength, listStreamType),
	}
	visible := filter.Apply(records, q, nil)

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(visible)
	}

	if len(visible) == 0 {
		fmt.Fprintln(out, filter.EmptyMessage(q))
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tMILES\tDETAIL")
	for _, r := range visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n", r.ID, r.Name, r.Location, r.DistanceFromBoulder, detail(r))
	}
	return tw.Flush()
}

// detail is the category-specific column.
func detail(r *activity.Record) string {
	switch {
	case r.Category.HasLength() && r.Length != "":
		return r.Difficulty + ", " + r.Length
	case r.Category.HasStreamType():
		return r.StreamType
	default:
		return r.Difficulty
	}
}
