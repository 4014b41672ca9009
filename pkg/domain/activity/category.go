package activity

import "strings"

// Category partitions the catalog. Values are the stored display names.
type Category string

const (
	CategoryHikes         Category = "Hikes"
	CategoryFlyFishing    Category = "Fly Fishing"
	CategoryNationalParks Category = "National Parks"
	CategorySkiResorts    Category = "Ski Resorts"
)

// Categories lists every category in navigation order.
var Categories = []Category{
	CategoryHikes,
	CategoryFlyFishing,
	CategoryNationalParks,
	CategorySkiResorts,
}

// DefaultCategory is the category a fresh view opens on.
const DefaultCategory = CategoryHikes

var categoryAliases = map[string]Category{
	"hikes":          CategoryHikes,
	"hike":           CategoryHikes,
	"flyfishing":     CategoryFlyFishing,
	"fly-fishing":    CategoryFlyFishing,
	"fly_fishing":    CategoryFlyFishing,
	"nationalparks":  CategoryNationalParks,
	"national-parks": CategoryNationalParks,
	"national_parks": CategoryNationalParks,
	"skiresorts":     CategorySkiResorts,
	"ski-resorts":    CategorySkiResorts,
	"ski_resorts":    CategorySkiResorts,
}

// ParseCategory accepts the stored display name (any case) or a compact alias
// such as "flyfishing". The bool is false for unknown input.
func ParseCategory(input string) (Category, bool) {
	trimmed := strings.TrimSpace(input)

	// Exact display name (fast path)
	for _, c := range Categories {
		if string(c) == trimmed {
			return c, true
		}
	}

	lower := strings.ToLower(trimmed)
	for _, c := range Categories {
		if strings.ToLower(string(c)) == lower {
			return c, true
		}
	}

	if c, ok := categoryAliases[lower]; ok {
		return c, true
	}
	return "", false
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// HasDifficulty reports whether the difficulty axis means anything for c.
// Fly fishing spots and ski resorts are never filtered by difficulty.
func (c Category) HasDifficulty() bool {
	return c != CategoryFlyFishing && c != CategorySkiResorts
}

// HasStreamType is true only for fly fishing.
func (c Category) HasStreamType() bool {
	return c == CategoryFlyFishing
}

// HasLength is true only for hikes.
func (c Category) HasLength() bool {
	return c == CategoryHikes
}

// DifficultyOptions are offered for every category with a difficulty axis.
// The ski-style levels are kept even though no seeded record uses them.
var DifficultyOptions = []string{"Easy", "Moderate", "Difficult", "Beginner", "Intermediate", "Advanced", "Expert"}

// StreamTypeOptions are the fly fishing water classifications.
var StreamTypeOptions = []string{"Freestone", "Tailwater", "Spring Creek", "Freestone/Tailwater"}
