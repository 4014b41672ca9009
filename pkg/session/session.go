// Package session binds one user's browsing state to the live catalog and
// completion streams.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/catalog"
	"github.com/bucketlist/server/pkg/completion"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
)

// Options configures a Session.
type Options struct {
	UserID    string
	Database  shared.Database
	Publisher shared.Publisher
	// Seed is written to an empty remote catalog. Nil disables seeding.
	Seed   []*activity.Record
	Logger *slog.Logger
}

// Session owns one user's catalog snapshot, completion snapshot and view.
// Snapshots arrive on their own goroutines. The stores lock themselves; mu
// guards the view.
type Session struct {
	userID      string
	db          shared.Database
	catalog     *catalog.Store
	completions *completion.Store
	toggler     *completion.Toggler
	seeder      *catalog.Seeder
	logger      *slog.Logger

	mu   sync.RWMutex
	view *filter.View

	ready     chan struct{}
	readyOnce sync.Once
	updates   chan struct{}
	done      chan struct{}

	cancelMu sync.Mutex
	cancel   context.CancelFunc
	closed   bool
}

func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "session", "user_id", opts.UserID)

	s := &Session{
		userID:      opts.UserID,
		db:          opts.Database,
		catalog:     catalog.NewStore(),
		completions: completion.NewStore(),
		toggler:     completion.NewToggler(opts.Database, opts.Publisher, logger),
		logger:      logger,
		view:        filter.NewView(),
		ready:       make(chan struct{}),
		updates:     make(chan struct{}, 1),
		done:        make(chan struct{}),
	}
	if opts.Seed != nil {
		s.seeder = catalog.NewSeeder(opts.Database, opts.Seed, logger)
	}
	return s
}

// Run subscribes to both streams and applies snapshots until ctx is cancelled
// or Close is called. Run must be called at most once. A stream failure stops the other stream and is returned
// wrapped in shared.ErrInitialization.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancelMu.Lock()
	s.cancel = cancel
	if s.closed {
		cancel()
	}
	s.cancelMu.Unlock()
	defer cancel()
	defer close(s.done)
	defer close(s.updates)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := catalog.Follow(gctx, s.db, s.catalog, s.seeder, s.logger, s.catalogApplied); err != nil {
			return fmt.Errorf("catalog stream: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		err := s.db.WatchCompletions(gctx, s.userID, func(snap map[string]bool) error {
			metrics.SnapshotsTotal.WithLabelValues("completions").Inc()
			s.completions.Replace(snap)
			s.notify()
			return nil
		})
		if err != nil {
			return fmt.Errorf("completion stream: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("Session stream failed", "error", err)
		return fmt.Errorf("%w: %v", shared.ErrInitialization, err)
	}
	return nil
}

// Close unsubscribes both streams. Safe to call before Run or more than once.
func (s *Session) Close() {
	s.cancelMu.Lock()
	defer s.cancelMu.Unlock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
}

// WaitReady blocks until the first catalog snapshot has been applied. It fails
// if Run stops first.
func (s *Session) WaitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-s.done:
		select {
		case <-s.ready:
			return nil
		default:
			return fmt.Errorf("%w: session stopped before the catalog loaded", shared.ErrInitialization)
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Updates signals after applied snapshots. Signals coalesce; the channel is
// closed when Run returns.
func (s *Session) Updates() <-chan struct{} {
	return s.updates
}

func (s *Session) notify() {
	select {
	case s.updates <- struct{}{}:
	default:
	}
}

func (s *Session) catalogApplied() {
	s.readyOnce.Do(func() { close(s.ready) })
	s.notify()
}
