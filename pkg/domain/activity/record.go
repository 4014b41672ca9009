package activity

import (
	"errors"
	"fmt"
	"math"

	"github.com/bucketlist/server/pkg/geo"
)

// ErrMalformedInput marks record data that cannot be used as-is.
var ErrMalformedInput = errors.New("malformed input")

// Record is one catalog entry. Category-specific fields are empty when they do
// not apply and are then omitted from every serialized form.
type Record struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Description string   `json:"description"`

	// Hikes and National Parks
	Difficulty string `json:"difficulty,omitempty"`
	// Fly Fishing
	StreamType string `json:"streamType,omitempty"`
	// Hikes, e.g. "3.2 miles (round trip)"
	Length        string `json:"length,omitempty"`
	ElevationGain string `json:"elevationGain,omitempty"`

	// Image is an absolute URI, a gs:// URI or an opaque object name.
	Image string `json:"image,omitempty"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// DistanceFromBoulder is derived from the coordinates; see WithDistance.
	DistanceFromBoulder float64 `json:"distanceFromBoulder"`
}

// HasCoordinates reports whether the record can be placed on a map. A zero
// coordinate is treated as missing.
func (r *Record) HasCoordinates() bool {
	if math.IsNaN(r.Latitude) || math.IsNaN(r.Longitude) {
		return false
	}
	return r.Latitude != 0 && r.Longitude != 0
}

// WithDistance returns a copy with DistanceFromBoulder recomputed from the
// coordinates. Records without coordinates get 0 and never match a distance band.
func (r Record) WithDistance() *Record {
	if r.HasCoordinates() {
		r.DistanceFromBoulder = geo.FromBoulder(r.Latitude, r.Longitude)
	} else {
		r.DistanceFromBoulder = 0
	}
	return &r
}

// LengthMiles is the numeric length of a hike, 0 when absent or unparseable.
func (r *Record) LengthMiles() float64 {
	return ParseLengthMiles(r.Length)
}

// Validate checks the category-specific field rules. Coordinates may be
// missing but must be in range when present.
func (r *Record) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("%w: record has no id", ErrMalformedInput)
	}
	if !r.Category.Valid() {
		return fmt.Errorf("%w: record %s has unknown category %q", ErrMalformedInput, r.ID, r.Category)
	}
	if r.Name == "" {
		return fmt.Errorf("%w: record %s has no name", ErrMalformedInput, r.ID)
	}
	if r.Difficulty != "" && !r.Category.HasDifficulty() {
		return fmt.Errorf("%w: record %s: difficulty not allowed for %s", ErrMalformedInput, r.ID, r.Category)
	}
	if r.StreamType != "" && !r.Category.HasStreamType() {
		return fmt.Errorf("%w: record %s: stream type not allowed for %s", ErrMalformedInput, r.ID, r.Category)
	}
	if r.Length != "" && !r.Category.HasLength() {
		return fmt.Errorf("%w: record %s: length not allowed for %s", ErrMalformedInput, r.ID, r.Category)
	}
	if r.HasCoordinates() {
		if r.Latitude < -90 || r.Latitude > 90 || r.Longitude < -180 || r.Longitude > 180 {
			return fmt.Errorf("%w: record %s: coordinates out of range (%v, %v)", ErrMalformedInput, r.ID, r.Latitude, r.Longitude)
		}
	}
	return nil
}
