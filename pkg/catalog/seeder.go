package catalog

import (
	"context"
	"fmt"
	"log/slog"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
)

// SeedResult summarizes a SeedIfEmpty run.
type SeedResult struct {
	// AlreadySeeded is true when the remote catalog had documents and nothing was written.
	AlreadySeeded bool `json:"alreadySeeded"`
	Written       int  `json:"written"`
	// Existing counts create-only writes that found a document already there.
	Existing int `json:"existing"`
}

// Seeder populates an empty remote catalog from the static dataset. It is a
// one-time migration: once any document exists, it only reads.
type Seeder struct {
	source  shared.CatalogSource
	records []*activity.Record
	logger  *slog.Logger
}

func NewSeeder(source shared.CatalogSource, records []*activity.Record, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		source:  source,
		records: records,
		logger:  logger.With("component", "catalog-seeder"),
	}
}

// SeedIfEmpty writes one document per record, keyed by id, when the remote
// catalog is empty. Writes are create-only and never overwrite.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (SeedResult, error) {
	existing, err := s.source.ListActivities(ctx)
	if err != nil {
		return SeedResult{}, fmt.Errorf("list catalog: %w", err)
	}
	if len(existing) > 0 {
		s.logger.Debug("Catalog already populated", "count", len(existing))
		return SeedResult{AlreadySeeded: true}, nil
	}
	return s.writeAll(ctx)
}

// SeedEmptySnapshot is SeedIfEmpty for callers that already hold an empty
// snapshot and want to skip the extra read.
func (s *Seeder) SeedEmptySnapshot(ctx context.Context) (SeedResult, error) {
	return s.writeAll(ctx)
}

func (s *Seeder) writeAll(ctx context.Context) (SeedResult, error) {
	s.logger.Info("No activities found. Populating with sample data...", "count", len(s.records))

	var res SeedResult
	for _, r := range s.records {
		created, err := s.source.CreateActivity(ctx, r)
		if err != nil {
			return res, fmt.Errorf("seed activity %s: %w", r.ID, err)
		}
		if created {
			res.Written++
		} else {
			res.Existing++
		}
	}

	metrics.SeededActivitiesTotal.Add(float64(res.Written))
	s.logger.Info("Sample activities added", "written", res.Written, "existing", res.Existing)
	return res, nil
}
