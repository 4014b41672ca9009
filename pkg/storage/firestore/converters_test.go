package firestore

import (
	"reflect"
	"testing"

	"github.com/bucketlist/server/pkg/domain/activity"
)

func TestActivityToFirestore_OmitsEmptyOptionals(t *testing.T) {
	m := ActivityToFirestore(&activity.Record{
		ID:         "south-platte",
		Category:   activity.CategoryFlyFishing,
		Name:       "South Platte River",
		StreamType: "Tailwater",
		Latitude:   39.25,
		Longitude:  -105.22,
	})

	for _, key := range []string{"difficulty", "length", "elevationGain", "image"} {
		if _, ok := m[key]; ok {
			t.Errorf("ActivityToFirestore() wrote empty %q", key)
		}
	}
	if m["streamType"] != "Tailwater" {
		t.Errorf("streamType = %v, want Tailwater", m["streamType"])
	}
	if m["category"] != "Fly Fishing" {
		t.Errorf("category = %v, want Fly Fishing", m["category"])
	}
}

func TestFirestoreToActivity(t *testing.T) {
	tests := []struct {
		name string
		id   string
		data map[string]interface{}
		want *activity.Record
	}{
		{
			name: "document id wins",
			id:   "emerald-lake-trail",
			data: map[string]interface{}{
				"id":                  "stale",
				"category":            "Hikes",
				"name":                "Emerald Lake Trail",
				"difficulty":          "Moderate",
				"length":              "3.6 miles (round trip)",
				"latitude":            40.3129,
				"longitude":           -105.6429,
				"distanceFromBoulder": 99.9,
			},
			want: &activity.Record{
				ID:         "emerald-lake-trail",
				Category:   activity.CategoryHikes,
				Name:       "Emerald Lake Trail",
				Difficulty: "Moderate",
				Length:     "3.6 miles (round trip)",
				Latitude:   40.3129,
				Longitude:  -105.6429,
			},
		},
		{
			name: "integer coordinates and stored id",
			data: map[string]interface{}{
				"id":        "grid",
				"category":  "Ski Resorts",
				"name":      "Grid",
				"latitude":  int64(40),
				"longitude": int64(-105),
			},
			want: &activity.Record{
				ID:        "grid",
				Category:  activity.CategorySkiResorts,
				Name:      "Grid",
				Latitude:  40,
				Longitude: -105,
			},
		},
		{
			name: "wrong types degrade to zero values",
			id:   "odd",
			data: map[string]interface{}{"name": 7, "latitude": "north"},
			want: &activity.Record{ID: "odd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirestoreToActivity(tt.id, tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FirestoreToActivity() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCompletionMap(t *testing.T) {
	docs := []*Completion{
		FirestoreToCompletion("a", map[string]interface{}{"completed": true}),
		FirestoreToCompletion("b", map[string]interface{}{"completed": false}),
		FirestoreToCompletion("c", map[string]interface{}{}),
		nil,
	}
	got := CompletionMap(docs)
	want := map[string]bool{"a": true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompletionMap() = %v, want %v", got, want)
	}

	if m := CompletionToFirestore(&Completion{ActivityID: "a", Completed: true}); m["completed"] != true {
		t.Errorf("CompletionToFirestore() = %v", m)
	}
}
