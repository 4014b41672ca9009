package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Completions answers whether an activity is completed for the current user.
// completion.Snapshot and completion.Store both satisfy it.
type Completions interface {
	IsCompleted(id string) bool
}

type noCompletions struct{}

func (noCompletions) IsCompleted(string) bool { return false }

// Query is everything that decides which records are visible.
type Query struct {
	Category      activity.Category
	Search        string
	Filters       Selection
	CompletedOnly bool
}

// Apply returns the records passing every predicate of q, sorted by name.
// Neither records nor completions are modified.
func Apply(records []*activity.Record, q Query, completions Completions) []*activity.Record {
	if completions == nil {
		completions = noCompletions{}
	}
	search := strings.ToLower(q.Search)

	out := make([]*activity.Record, 0)
	for _, r := range records {
		if r != nil && matches(r, q, search, completions) {
			out = append(out, r)
		}
	}
	SortByName(out)
	return out
}

// Matches evaluates q against a single record.
func Matches(r *activity.Record, q Query, completions Completions) bool {
	if completions == nil {
		completions = noCompletions{}
	}
	return matches(r, q, strings.ToLower(q.Search), completions)
}

func matches(r *activity.Record, q Query, search string, completions Completions) bool {
	if r.Category != q.Category {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(r.Name), search) &&
		!strings.Contains(strings.ToLower(r.Location), search) {
		return false
	}
	if q.Category.HasDifficulty() && len(q.Filters.Difficulty) > 0 && !q.Filters.Difficulty.Has(r.Difficulty) {
		return false
	}
	if q.Category.HasStreamType() && len(q.Filters.StreamType) > 0 && !q.Filters.StreamType.Has(r.StreamType) {
		return false
	}
	if len(q.Filters.Distance) > 0 {
		// No coordinates means no distance, so no band can hold it.
		if !r.HasCoordinates() || !inAnyBand(DistanceBands, q.Filters.Distance, r.DistanceFromBoulder) {
			return false
		}
	}
	if q.Category.HasLength() && len(q.Filters.Length) > 0 && !inAnyBand(LengthBands, q.Filters.Length, r.LengthMiles()) {
		return false
	}
	if q.CompletedOnly && !completions.IsCompleted(r.ID) {
		return false
	}
	return true
}

// SortByName orders records by name using English collation, then by id.
func SortByName(records []*activity.Record) {
	// A Collator keeps internal buffers and is not safe for concurrent use.
	c := collate.New(language.English)
	slices.SortStableFunc(records, func(a, b *activity.Record) int {
		if n := c.CompareString(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}
