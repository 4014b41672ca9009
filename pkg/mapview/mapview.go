// Package mapview projects visible activities onto map markers.
package mapview

import (
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/geo"
)

// DefaultZoom frames the Front Range around Boulder.
const DefaultZoom = 8

type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DefaultCenter is Boulder.
var DefaultCenter = Point{Latitude: geo.BoulderLat, Longitude: geo.BoulderLon}

// Marker is what a map widget needs to place and describe one record.
type Marker struct {
	ID                  string            `json:"id"`
	Latitude            float64           `json:"latitude"`
	Longitude           float64           `json:"longitude"`
	Name                string            `json:"name"`
	Category            activity.Category `json:"category"`
	Difficulty          string            `json:"difficulty,omitempty"`
	StreamType          string            `json:"streamType,omitempty"`
	Length              string            `json:"length,omitempty"`
	DistanceFromBoulder float64           `json:"distanceFromBoulder"`
	Completed           bool              `json:"completed"`
}

// View is the map payload.
type View struct {
	Center  Point    `json:"center"`
	Zoom    int      `json:"zoom"`
	Markers []Marker `json:"markers"`
}

// Markers places every record that has coordinates; the rest are skipped.
// completed may be nil.
func Markers(records []*activity.Record, completed func(id string) bool) []Marker {
	out := make([]Marker, 0, len(records))
	for _, r := range records {
		if r == nil || !r.HasCoordinates() {
			continue
		}
		m := Marker{
			ID:                  r.ID,
			Latitude:            r.Latitude,
			Longitude:           r.Longitude,
			Name:                r.Name,
			Category:            r.Category,
			StreamType:          r.StreamType,
			Length:              r.Length,
			DistanceFromBoulder: r.DistanceFromBoulder,
		}
		if r.Category.HasDifficulty() {
			m.Difficulty = r.Difficulty
		}
		if completed != nil {
			m.Completed = completed(r.ID)
		}
		out = append(out, m)
	}
	return out
}

// New builds the default-framed map payload for records.
func New(records []*activity.Record, completed func(id string) bool) View {
	return View{
		Center:  DefaultCenter,
		Zoom:    DefaultZoom,
		Markers: Markers(records, completed),
	}
}
