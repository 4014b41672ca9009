package filter

import (
	"fmt"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Mode is the presentation mode of a view.
type Mode string

const (
	ModeList Mode = "list"
	ModeMap  Mode = "map"
)

// View is the per-user browsing state: category, search, filters, the
// completed-only toggle and the list/map mode. It is not safe for concurrent use.
type View struct {
	category      activity.Category
	search        string
	filters       Selection
	completedOnly bool
	mode          Mode
}

func NewView() *View {
	return &View{category: activity.DefaultCategory, mode: ModeList}
}

// SelectCategory switches category and starts a fresh context: filters and
// search are cleared and the mode returns to the list. Completed-only is kept.
func (v *View) SelectCategory(c activity.Category) error {
	if !c.Valid() {
		return fmt.Errorf("%w: unknown category %q", activity.ErrMalformedInput, c)
	}
	v.category = c
	v.search = ""
	v.filters = Selection{}
	v.mode = ModeList
	return nil
}

func (v *View) ToggleFilter(d Dimension, label string) error {
	return v.filters.Toggle(d, label)
}

func (v *View) SetSearch(term string) {
	v.search = term
}

func (v *View) SetCompletedOnly(on bool) {
	v.completedOnly = on
}

// ShowMap switches between map and list mode.
func (v *View) ShowMap(on bool) {
	if on {
		v.mode = ModeMap
	} else {
		v.mode = ModeList
	}
}

func (v *View) Category() activity.Category { return v.category }
func (v *View) Mode() Mode                   { return v.mode }

// Query snapshots the view as an engine query. The selection is copied so
// later toggles do not affect it.
func (v *View) Query() Query {
	return Query{
		Category:      v.category,
		Search:        v.search,
		Filters:       v.filters.Clone(),
		CompletedOnly: v.completedOnly,
	}
}
