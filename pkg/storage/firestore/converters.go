package firestore

import (
	"github.com/bucketlist/server/pkg/domain/activity"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to get a number from map. Firestore hands back int64 for whole
// numbers written by other clients.
func getFloat(m map[string]interface{}, key string) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return 0
}

// putString sets key only for non-empty values so optional fields stay absent.
func putString(m map[string]interface{}, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// --- Activity Converters ---

func ActivityToFirestore(r *activity.Record) map[string]interface{} {
	m := map[string]interface{}{
		"id":                  r.ID,
		"category":            string(r.Category),
		"name":                r.Name,
		"location":            r.Location,
		"description":         r.Description,
		"latitude":            r.Latitude,
		"longitude":           r.Longitude,
		"distanceFromBoulder": r.DistanceFromBoulder,
	}
	putString(m, "difficulty", r.Difficulty)
	putString(m, "streamType", r.StreamType)
	putString(m, "length", r.Length)
	putString(m, "elevationGain", r.ElevationGain)
	putString(m, "image", r.Image)
	return m
}

// FirestoreToActivity prefers the document id over a stored "id" field. The
// stored distance is ignored; stores recompute it from the coordinates.
func FirestoreToActivity(id string, m map[string]interface{}) *activity.Record {
	if id == "" {
		id = getString(m, "id")
	}
	return &activity.Record{
		ID:            id,
		Category:      activity.Category(getString(m, "category")),
		Name:          getString(m, "name"),
		Location:      getString(m, "location"),
		Description:   getString(m, "description"),
		Difficulty:    getString(m, "difficulty"),
		StreamType:    getString(m, "streamType"),
		Length:        getString(m, "length"),
		ElevationGain: getString(m, "elevationGain"),
		Image:         getString(m, "image"),
		Latitude:      getFloat(m, "latitude"),
		Longitude:     getFloat(m, "longitude"),
	}
}

// --- Completion Converters ---

// Completion is one completedActivities document.
type Completion struct {
	ActivityID string
	Completed  bool
}

func CompletionToFirestore(c *Completion) map[string]interface{} {
	return map[string]interface{}{
		"completed": c.Completed,
	}
}

func FirestoreToCompletion(id string, m map[string]interface{}) *Completion {
	return &Completion{
		ActivityID: id,
		Completed:  getBool(m, "completed"),
	}
}

// CompletionMap folds completion documents into the snapshot form.
// Documents with completed=false are dropped.
func CompletionMap(docs []*Completion) map[string]bool {
	out := make(map[string]bool, len(docs))
	for _, d := range docs {
		if d != nil && d.Completed {
			out[d.ActivityID] = true
		}
	}
	return out
}
