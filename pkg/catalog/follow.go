package catalog

import (
	"context"
	"log/slog"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
)

// Follow keeps store equal to the latest catalog snapshot from source until ctx
// is done. The first empty snapshot triggers seeding once when seeder is set;
// the store is then left unloaded until the seeded snapshot arrives. applied,
// when non-nil, runs after every snapshot written to store.
func Follow(ctx context.Context, source shared.CatalogSource, store *Store, seeder *Seeder, logger *slog.Logger, applied func()) error {
	if logger == nil {
		logger = slog.Default()
	}
	seeded := false

	return source.WatchActivities(ctx, func(records []*activity.Record) error {
		metrics.SnapshotsTotal.WithLabelValues("catalog").Inc()

		if len(records) == 0 && seeder != nil && !seeded {
			seeded = true
			res, err := seeder.SeedEmptySnapshot(ctx)
			if err != nil {
				// Seeding failures are not fatal; the catalog simply stays empty.
				logger.Error("Error populating sample data", "error", err)
			} else if res.Written > 0 {
				return nil
			}
		}

		store.Replace(records)
		logger.Debug("Catalog snapshot applied", "count", len(records))
		if applied != nil {
			applied()
		}
		return nil
	})
}
