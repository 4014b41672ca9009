package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/bucketlist/server/pkg/domain/activity"
)

// Colorado activities shipped with the service. Distances are not stored in
// the file; they are computed at load.
//
//go:embed data/activities.json
var seedJSON []byte

var (
	seedOnce    sync.Once
	seedRecords []*activity.Record
	seedErr     error
)

// Seed returns the static dataset with distances computed. The slice is shared;
// callers must not mutate the records.
func Seed() ([]*activity.Record, error) {
	seedOnce.Do(func() {
		var raw []activity.Record
		if err := json.Unmarshal(seedJSON, &raw); err != nil {
			seedErr = fmt.Errorf("decode seed catalog: %w", err)
			return
		}
		records := make([]*activity.Record, 0, len(raw))
		for _, r := range raw {
			records = append(records, r.WithDistance())
		}
		if _, err := New(records); err != nil {
			seedErr = fmt.Errorf("seed catalog: %w", err)
			return
		}
		seedRecords = records
	})
	return seedRecords, seedErr
}

// SeedStore is a loaded Store over the static dataset, for offline use.
func SeedStore() (*Store, error) {
	records, err := Seed()
	if err != nil {
		return nil, err
	}
	return New(records)
}
