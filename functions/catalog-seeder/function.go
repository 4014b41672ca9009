package catalogseeder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/catalog"
	"github.com/bucketlist/server/pkg/framework"
	"github.com/bucketlist/server/pkg/types"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("SeedCatalog", SeedCatalog)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		baseSvc, err := bootstrap.NewService(ctx)
		if err != nil {
			slog.Error("Failed to initialize service", "error", err)
			svcErr = err
			return
		}
		svc = baseSvc
	})
	return svc, svcErr
}

// SeedCatalog is the entry point
func SeedCatalog(ctx context.Context, e cloudevents.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %w", err)
	}
	return framework.WrapCloudEvent("catalog-seeder", svc, seedHandler)(ctx, e)
}

// seedHandler writes the embedded catalog into an empty remote catalog.
func seedHandler(ctx context.Context, e cloudevents.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var req types.CatalogSeedRequest
	if err := framework.DecodeMessage(e, &req); err != nil {
		// The trigger payload is informational only.
		fwCtx.Logger.Warn("Ignoring unreadable seed request", "error", err)
	}

	records, err := catalog.Seed()
	if err != nil {
		return nil, fmt.Errorf("load seed catalog: %w", err)
	}

	res, err := catalog.NewSeeder(fwCtx.Service.DB, records, fwCtx.Logger).SeedIfEmpty(ctx)
	if err != nil {
		return nil, err
	}

	status := "seeded"
	if res.AlreadySeeded {
		status = "skipped"
	}
	return map[string]interface{}{
		"status":  status,
		"written": res.Written,
		"skipped": res.Existing,
	}, nil
}
