package filter

import (
	"fmt"
	"strings"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Options lists the labels a client can offer for each dimension of a category.
// Dimensions that do not apply are omitted.
type Options struct {
	Category   activity.Category `json:"category"`
	Difficulty []string          `json:"difficulty,omitempty"`
	StreamType []string          `json:"streamType,omitempty"`
	Distance   []string          `json:"distance"`
	Length     []string          `json:"length,omitempty"`
}

// OptionsFor returns the filter options shown for category c.
func OptionsFor(c activity.Category) Options {
	opts := Options{
		Category: c,
		Distance: Labels(DistanceBands),
	}
	if c.HasDifficulty() {
		opts.Difficulty = append([]string(nil), activity.DifficultyOptions...)
	}
	if c.HasStreamType() {
		opts.StreamType = append([]string(nil), activity.StreamTypeOptions...)
	}
	if c.HasLength() {
		opts.Length = Labels(LengthBands)
	}
	return opts
}

// EmptyMessage is the notice shown when a query yields no records.
func EmptyMessage(q Query) string {
	if q.CompletedOnly {
		return "No completed activities found."
	}
	return fmt.Sprintf("No %s match your search or filter criteria.", strings.ToLower(string(q.Category)))
}
