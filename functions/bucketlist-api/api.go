package bucketlistapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/bootstrap"
	"github.com/bucketlist/server/pkg/catalog"
	"github.com/bucketlist/server/pkg/completion"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/framework"
	"github.com/bucketlist/server/pkg/infrastructure/identity"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
	httputil "github.com/bucketlist/server/pkg/infrastructure/http"
)

// readyTimeout bounds how long a request waits for the first catalog snapshot.
const readyTimeout = 10 * time.Second

// API serves the catalog, filters, completions and the live stream.
type API struct {
	svc     *bootstrap.Service
	seed    []*activity.Record
	logger  *slog.Logger
	catalog *catalog.Store
	toggler *completion.Toggler
	router  chi.Router

	followCtx  context.Context
	stop       context.CancelFunc
	followOnce sync.Once
	ready      chan struct{}
	readyOnce  sync.Once
}

// NewAPI builds the router. seed may be nil to disable catalog seeding.
func NewAPI(svc *bootstrap.Service, seed []*activity.Record, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Register()

	a := &API{
		svc:     svc,
		seed:    seed,
		logger:  logger,
		catalog: catalog.NewStore(),
		toggler: completion.NewToggler(svc.DB, svc.Pub, logger),
		ready:   make(chan struct{}),
	}
	a.followCtx, a.stop = context.WithCancel(context.Background())
	a.router = a.routes()
	return a
}

func (a *API) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(a.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/filters", a.handleFilters)

	r.Group(func(r chi.Router) {
		r.Use(framework.WithIdentity(&identity.Resolver{Verifier: a.svc.Identity, Logger: a.logger}))

		r.Get("/activities", a.handleList)
		r.Get("/activities/{id}", a.handleGet)
		r.Get("/activities/{id}/image", a.handleImage)
		r.Get("/map", a.handleMap)
		r.Put("/completions/{id}", a.handleComplete(true))
		r.Delete("/completions/{id}", a.handleComplete(false))
		r.Get("/stream", a.handleStream)
	})
	return r
}

func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Close stops following the catalog. The API does not follow again afterwards.
func (a *API) Close() {
	a.followOnce.Do(func() {})
	a.stop()
}

// instrument records request counts and latency per route pattern.
func (a *API) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		metrics.RequestDurationMs.WithLabelValues(route).Observe(float64(time.Since(start).Milliseconds()))
	})
}

// catalogReady starts following the remote catalog on first use and waits for
// the first snapshot.
func (a *API) catalogReady(ctx context.Context) error {
	a.followOnce.Do(func() {
		var seeder *catalog.Seeder
		if a.seed != nil {
			seeder = catalog.NewSeeder(a.svc.DB, a.seed, a.logger)
		}
		go func() {
			err := catalog.Follow(a.followCtx, a.svc.DB, a.catalog, seeder, a.logger, func() {
				a.readyOnce.Do(func() { close(a.ready) })
			})
			if err != nil {
				a.logger.Error("Catalog stream stopped", "error", err)
			}
		}()
	})

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	select {
	case <-a.ready:
		return nil
	case <-a.followCtx.Done():
		return fmt.Errorf("%w: api closed", shared.ErrInitialization)
	case <-ctx.Done():
		return fmt.Errorf("%w: catalog not loaded: %v", shared.ErrInitialization, ctx.Err())
	}
}

func (a *API) userID(r *http.Request) string {
	id, _ := framework.IdentityFrom(r.Context())
	return id.UserID
}

func (a *API) completions(ctx context.Context, userID string) (completion.Snapshot, error) {
	m, err := a.svc.DB.GetCompletions(ctx, userID)
	if err != nil {
		a.logger.Error("Error fetching completed activities", "user_id", userID, "error", err)
		return nil, err
	}
	return completion.Snapshot(m), nil
}

func (a *API) lookup(id string) (*activity.Record, error) {
	rec, ok := a.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: activity %s", shared.ErrNotFound, id)
	}
	return rec, nil
}
