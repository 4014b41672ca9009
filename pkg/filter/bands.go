package filter

import "math"

// Band is a labelled half-open interval [Min, Max).
type Band struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"-"`
}

// Contains reports whether v falls in [Min, Max).
func (b Band) Contains(v float64) bool {
	return v >= b.Min && v < b.Max
}

// Unbounded is true for the open-ended top band.
func (b Band) Unbounded() bool {
	return math.IsInf(b.Max, 1)
}

// DistanceBands group records by miles from Boulder.
var DistanceBands = []Band{
	{Label: "0-25 miles", Min: 0, Max: 25},
	{Label: "25-50 miles", Min: 25, Max: 50},
	{Label: "50-100 miles", Min: 50, Max: 100},
	{Label: "100+ miles", Min: 100, Max: math.Inf(1)},
}

// LengthBands group hikes by parsed trail length.
var LengthBands = []Band{
	{Label: "Short (< 5 miles)", Min: 0, Max: 5},
	{Label: "Medium (5-10 miles)", Min: 5, Max: 10},
	{Label: "Long (> 10 miles)", Min: 10, Max: math.Inf(1)},
}

// FindBand looks a band up by its exact label.
func FindBand(bands []Band, label string) (Band, bool) {
	for _, b := range bands {
		if b.Label == label {
			return b, true
		}
	}
	return Band{}, false
}

// inAnyBand is true when v falls in at least one band named by labels.
// Labels that name no band contribute nothing.
func inAnyBand(bands []Band, labels Set, v float64) bool {
	for label := range labels {
		if b, ok := FindBand(bands, label); ok && b.Contains(v) {
			return true
		}
	}
	return false
}

// Labels returns the band labels in display order.
func Labels(bands []Band) []string {
	out := make([]string, len(bands))
	for i, b := range bands {
		out[i] = b.Label
	}
	return out
}
