package bucketlistapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/catalog"
	httputil "github.com/bucketlist/server/pkg/infrastructure/http"
)

var (
	api     *API
	apiOnce sync.Once
	apiErr  error
)

func init() {
	functions.HTTP("BucketListAPI", BucketListAPI)
}

func initAPI(ctx context.Context) (*API, error) {
	if api != nil {
		return api, nil
	}
	apiOnce.Do(func() {
		svc, err := bootstrap.NewService(ctx)
		if err != nil {
			slog.Error("Failed to initialize service", "error", err)
			apiErr = err
			return
		}
		seed, err := catalog.Seed()
		if err != nil {
			// The embedded dataset is broken; serve without seeding.
			slog.Error("Failed to load seed catalog", "error", err)
		}
		api = NewAPI(svc, seed, bootstrap.NewLogger("bucketlist-api"))
	})
	return api, apiErr
}

// BucketListAPI is the entry point
func BucketListAPI(w http.ResponseWriter, r *http.Request) {
	a, err := initAPI(r.Context())
	if err != nil {
		httputil.WriteError(w, fmt.Errorf("%w: %v", shared.ErrInitialization, err))
		return
	}
	a.ServeHTTP(w, r)
}
