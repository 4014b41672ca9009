package bucketlistapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/bucketlist/server/pkg/filter"
	httputil "github.com/bucketlist/server/pkg/infrastructure/http"
	"github.com/bucketlist/server/pkg/session"
)

// handleStream pushes one "activities" event per applied snapshot for the
// requested view until the client goes away.
func (a *API) handleStream(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteError(w, httputil.NewError(http.StatusInternalServerError, "streaming unsupported"))
		return
	}

	s := session.New(session.Options{
		UserID:    a.userID(r),
		Database:  a.svc.DB,
		Publisher: a.svc.Pub,
		Seed:      a.seed,
		Logger:    a.logger,
	})
	if err := applyQuery(s, q); err != nil {
		httputil.WriteError(w, err)
		return
	}

	ctx := r.Context()
	runErr := make(chan error, 1)
	go func() { runErr <- s.Run(ctx) }()
	defer s.Close()

	if err := s.WaitReady(ctx); err != nil {
		if ctx.Err() == nil {
			httputil.WriteError(w, err)
		}
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func() error {
		data, err := json.Marshal(newListResponse(q, s.Visible()))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: activities\ndata: %s\n\n", data); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-runErr:
			if err != nil {
				a.logger.Error("Stream session ended", "user_id", s.UserID(), "error", err)
			}
			return
		case _, open := <-s.Updates():
			if !open {
				return
			}
			if err := send(); err != nil {
				a.logger.Debug("Stream client gone", "error", err)
				return
			}
		}
	}
}

// applyQuery replays q onto a fresh session view.
func applyQuery(s *session.Session, q filter.Query) error {
	if err := s.SelectCategory(q.Category); err != nil {
		return err
	}
	s.SetSearch(q.Search)
	s.SetCompletedOnly(q.CompletedOnly)
	for _, d := range filter.Dimensions {
		for _, label := range q.Filters.Get(d).Sorted() {
			if err := s.ToggleFilter(d, label); err != nil {
				return err
			}
		}
	}
	return nil
}
