package filter

import (
	"reflect"
	"testing"

	"github.com/bucketlist/server/pkg/catalog"
	"github.com/bucketlist/server/pkg/completion"
	"github.com/bucketlist/server/pkg/domain/activity"
)

func fixture() []*activity.Record {
	recs := []*activity.Record{
		{ID: "zirkel", Category: activity.CategoryHikes, Name: "Zirkel Circle Trail", Location: "Steamboat Springs", Difficulty: "Difficult", Length: "10.8 miles (loop)", Latitude: 40.8, Longitude: -106.7},
		{ID: "arthurs", Category: activity.CategoryHikes, Name: "Arthur's Rock Trail", Location: "Fort Collins", Difficulty: "Moderate", Length: "3.2 miles (round trip)", Latitude: 40.5576, Longitude: -105.1601},
		{ID: "emerald", Category: activity.CategoryHikes, Name: "Emerald Lake Trail", Location: "Rocky Mountain National Park", Difficulty: "Easy", Length: "3.6 miles (round trip)", Latitude: 40.3129, Longitude: -105.6429},
		{ID: "unmapped", Category: activity.CategoryHikes, Name: "Mystery Trail", Location: "Somewhere", Difficulty: "Easy", Length: "about a day"},
		{ID: "south-platte", Category: activity.CategoryFlyFishing, Name: "South Platte River", Location: "Deckers", StreamType: "Tailwater", Latitude: 39.25, Longitude: -105.22},
		{ID: "frying-pan", Category: activity.CategoryFlyFishing, Name: "Frying Pan River", Location: "Basalt", StreamType: "Tailwater", Latitude: 39.36, Longitude: -106.82},
		{ID: "vail", Category: activity.CategorySkiResorts, Name: "Vail", Location: "Vail", Latitude: 39.6403, Longitude: -106.3742},
		{ID: "mesa-verde", Category: activity.CategoryNationalParks, Name: "Mesa Verde", Location: "Montezuma County", Difficulty: "Easy to Moderate", Latitude: 37.2309, Longitude: -108.4618},
	}
	out := make([]*activity.Record, len(recs))
	for i, r := range recs {
		out[i] = r.WithDistance()
	}
	return out
}

func ids(records []*activity.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestApply(t *testing.T) {
	records := fixture()
	done := completion.Snapshot{"emerald": true, "frying-pan": true}

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "category only, sorted by name",
			query: Query{Category: activity.CategoryHikes},
			want:  []string{"arthurs", "emerald", "unmapped", "zirkel"},
		},
		{
			name:  "search matches name case-insensitively",
			query: Query{Category: activity.CategoryHikes, Search: "EMERALD"},
			want:  []string{"emerald"},
		},
		{
			name:  "search matches location",
			query: Query{Category: activity.CategoryHikes, Search: "fort coll"},
			want:  []string{"arthurs"},
		},
		{
			name:  "difficulty OR within dimension",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Difficulty: NewSet("Easy", "Difficult")}},
			want:  []string{"emerald", "unmapped", "zirkel"},
		},
		{
			name:  "difficulty is vacuous for fly fishing",
			query: Query{Category: activity.CategoryFlyFishing, Filters: Selection{Difficulty: NewSet("Expert")}},
			want:  []string{"frying-pan", "south-platte"},
		},
		{
			name:  "difficulty is vacuous for ski resorts",
			query: Query{Category: activity.CategorySkiResorts, Filters: Selection{Difficulty: NewSet("Easy")}},
			want:  []string{"vail"},
		},
		{
			name:  "compound difficulty unreachable by filter",
			query: Query{Category: activity.CategoryNationalParks, Filters: Selection{Difficulty: NewSet("Easy", "Moderate")}},
			want:  []string{},
		},
		{
			name:  "stream type",
			query: Query{Category: activity.CategoryFlyFishing, Filters: Selection{StreamType: NewSet("Freestone")}},
			want:  []string{},
		},
		{
			name:  "stream type ignored outside fly fishing",
			query: Query{Category: activity.CategoryHikes, Search: "arthur", Filters: Selection{StreamType: NewSet("Freestone")}},
			want:  []string{"arthurs"},
		},
		{
			name:  "distance band excludes records without coordinates",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Distance: NewSet("0-25 miles")}},
			want:  []string{},
		},
		{
			name:  "distance bands OR",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Distance: NewSet("25-50 miles", "50-100 miles")}},
			want:  []string{"arthurs", "emerald", "zirkel"},
		},
		{
			name:  "unknown band label matches nothing",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Distance: NewSet("far away")}},
			want:  []string{},
		},
		{
			name:  "unparseable length counts as short",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Length: NewSet("Short (< 5 miles)")}},
			want:  []string{"arthurs", "emerald", "unmapped"},
		},
		{
			name:  "length AND distance",
			query: Query{Category: activity.CategoryHikes, Filters: Selection{Length: NewSet("Short (< 5 miles)"), Distance: NewSet("25-50 miles")}},
			want:  []string{"arthurs", "emerald"},
		},
		{
			name:  "length ignored outside hikes",
			query: Query{Category: activity.CategorySkiResorts, Filters: Selection{Length: NewSet("Long (> 10 miles)")}},
			want:  []string{"vail"},
		},
		{
			name:  "completed only",
			query: Query{Category: activity.CategoryHikes, CompletedOnly: true},
			want:  []string{"emerald"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Apply(records, tt.query, done))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	records := fixture()
	q := Query{Category: activity.CategoryHikes, Filters: Selection{Length: NewSet("Short (< 5 miles)")}}

	once := Apply(records, q, nil)
	twice := Apply(once, q, nil)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Errorf("Apply twice = %v, want %v", ids(twice), ids(once))
	}
}

func TestApply_EmptySetIsNoConstraint(t *testing.T) {
	records := fixture()
	for _, c := range activity.Categories {
		without := Apply(records, Query{Category: c}, nil)
		with := Apply(records, Query{Category: c, Filters: NewSelection(nil, nil, nil, nil)}, nil)
		if !reflect.DeepEqual(ids(without), ids(with)) {
			t.Errorf("%s: empty selection = %v, want %v", c, ids(with), ids(without))
		}
	}
}

func TestApply_CategoryPartition(t *testing.T) {
	records, err := catalog.Seed()
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	seen := map[string]activity.Category{}
	for _, c := range activity.Categories {
		for _, r := range Apply(records, Query{Category: c}, nil) {
			if r.Category != c {
				t.Errorf("record %s (%s) returned for %s", r.ID, r.Category, c)
			}
			if prev, dup := seen[r.ID]; dup {
				t.Errorf("record %s returned for both %s and %s", r.ID, prev, c)
			}
			seen[r.ID] = c
		}
	}
	if len(seen) != len(records) {
		t.Errorf("partition covered %d records, want %d", len(seen), len(records))
	}
}

func TestApply_CompletedOnlyWithEmptyStore(t *testing.T) {
	records := fixture()
	store := completion.NewStore()
	for _, c := range activity.Categories {
		got := Apply(records, Query{Category: c, CompletedOnly: true}, store)
		if len(got) != 0 {
			t.Errorf("%s: Apply() = %v, want empty", c, ids(got))
		}
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := fixture()
	before := ids(records)
	Apply(records, Query{Category: activity.CategoryHikes}, nil)
	if !reflect.DeepEqual(ids(records), before) {
		t.Errorf("input reordered to %v", ids(records))
	}
}

func TestSortByName(t *testing.T) {
	records := []*activity.Record{
		{ID: "b", Name: "Zirkel Circle Trail"},
		{ID: "a", Name: "Arthur's Rock Trail"},
		{ID: "d", Name: "lily Mountain"},
		{ID: "c", Name: "Lily Lake"},
		{ID: "f", Name: "Same"},
		{ID: "e", Name: "Same"},
	}
	SortByName(records)

	want := []string{"a", "c", "d", "e", "f", "b"}
	if got := ids(records); !reflect.DeepEqual(got, want) {
		t.Errorf("SortByName() = %v, want %v", got, want)
	}
}

func TestBand_Contains(t *testing.T) {
	tests := []struct {
		label string
		v     float64
		want  bool
	}{
		{"0-25 miles", 0, true},
		{"0-25 miles", 24.9, true},
		{"0-25 miles", 25, false},
		{"25-50 miles", 25, true},
		{"100+ miles", 100, true},
		{"100+ miles", 5000, true},
		{"Short (< 5 miles)", 4.9, true},
		{"Medium (5-10 miles)", 5, true},
		{"Medium (5-10 miles)", 10, false},
		{"Long (> 10 miles)", 10, true},
	}
	for _, tt := range tests {
		b, ok := FindBand(append(append([]Band{}, DistanceBands...), LengthBands...), tt.label)
		if !ok {
			t.Fatalf("FindBand(%q) not found", tt.label)
		}
		if got := b.Contains(tt.v); got != tt.want {
			t.Errorf("%s.Contains(%v) = %v, want %v", tt.label, tt.v, got, tt.want)
		}
	}
}
