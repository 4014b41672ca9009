package bucketlistapi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	shared "github.com/bucketlist/server/pkg"
	"github.com/bucketlist/server/pkg/domain/activity"
	"github.com/bucketlist/server/pkg/filter"
	httputil "github.com/bucketlist/server/pkg/infrastructure/http"
	"github.com/bucketlist/server/pkg/infrastructure/metrics"
	"github.com/bucketlist/server/pkg/mapview"
	"github.com/bucketlist/server/pkg/session"
)

// ListResponse is the body of GET /activities and of each stream event.
type ListResponse struct {
	Category   activity.Category `json:"category"`
	Count      int               `json:"count"`
	Activities []session.Item    `json:"activities"`
	// Message is set only when nothing matched.
	Message string `json:"message,omitempty"`
}

func newListResponse(q filter.Query, items []session.Item) ListResponse {
	resp := ListResponse{Category: q.Category, Count: len(items), Activities: items}
	if len(items) == 0 {
		resp.Message = filter.EmptyMessage(q)
	}
	return resp
}

// parseQuery binds ?category=&q=&difficulty=&distance=&length=&streamType=&completedOnly=.
// Multi-valued dimensions repeat the parameter.
func parseQuery(values url.Values) (filter.Query, error) {
	var (
		category      string
		search        string
		completedOnly bool
		dims          = make(map[filter.Dimension][]string, len(filter.Dimensions))
	)

	if err := runtime.BindQueryParameter("form", true, false, "category", values, &category); err != nil {
		return filter.Query{}, httputil.NewError(http.StatusBadRequest, "category: %v", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", values, &search); err != nil {
		return filter.Query{}, httputil.NewError(http.StatusBadRequest, "q: %v", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "completedOnly", values, &completedOnly); err != nil {
		return filter.Query{}, httputil.NewError(http.StatusBadRequest, "completedOnly: %v", err)
	}
	for _, d := range filter.Dimensions {
		var labels []string
		if err := runtime.BindQueryParameter("form", true, false, string(d), values, &labels); err != nil {
			return filter.Query{}, httputil.NewError(http.StatusBadRequest, "%s: %v", d, err)
		}
		dims[d] = labels
	}

	c := activity.DefaultCategory
	if category != "" {
		parsed, ok := activity.ParseCategory(category)
		if !ok {
			return filter.Query{}, fmt.Errorf("%w: unknown category %q", shared.ErrMalformedInput, category)
		}
		c = parsed
	}

	return filter.Query{
		Category: c,
		Search:   search,
		Filters: filter.NewSelection(
			dims[filter.DimensionDifficulty],
			dims[filter.DimensionDistance],
			dims[filter.DimensionLength],
			dims[filter.DimensionStreamType],
		),
		CompletedOnly: completedOnly,
	}, nil
}

func (a *API) handleFilters(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, filter.OptionsFor(q.Category))
}

func (a *API) handleList(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := a.catalogReady(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	done, err := a.completions(r.Context(), a.userID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	records := filter.Apply(a.catalog.Records(), q, done)
	metrics.VisibleActivities.Observe(float64(len(records)))
	httputil.WriteJSON(w, http.StatusOK, newListResponse(q, session.Items(records, done)))
}

func (a *API) handleGet(w http.ResponseWriter, r *http.Request) {
	if err := a.catalogReady(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	rec, err := a.lookup(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	done, err := a.completions(r.Context(), a.userID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, session.Item{Record: rec, Completed: done.IsCompleted(rec.ID)})
}

func (a *API) handleImage(w http.ResponseWriter, r *http.Request) {
	if err := a.catalogReady(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	rec, err := a.lookup(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	var bucket, object string
	switch activity.ClassifyImage(rec.Image) {
	case activity.ImageURL:
		http.Redirect(w, r, rec.Image, http.StatusFound)
		return
	case activity.ImageGCS:
		bucket, object, _ = activity.ParseGCSURI(rec.Image)
	case activity.ImageObject:
		bucket, object = a.svc.Config.ImageBucket, rec.Image
	}
	if bucket == "" || a.svc.Store == nil {
		httputil.WriteError(w, fmt.Errorf("%w: no image for %s", shared.ErrNotFound, rec.ID))
		return
	}

	data, err := a.svc.Store.Read(r.Context(), bucket, object)
	if err != nil {
		a.logger.Warn("Image read failed", "activity_id", rec.ID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (a *API) handleMap(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := a.catalogReady(r.Context()); err != nil {
		httputil.WriteError(w, err)
		return
	}
	done, err := a.completions(r.Context(), a.userID(r))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records := filter.Apply(a.catalog.Records(), q, done)
	httputil.WriteJSON(w, http.StatusOK, mapview.New(records, done.IsCompleted))
}

func (a *API) handleComplete(completed bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := a.catalogReady(r.Context()); err != nil {
			httputil.WriteError(w, err)
			return
		}
		id := chi.URLParam(r, "id")
		// A removal may name an activity that has since left the catalog.
		if completed {
			if _, err := a.lookup(id); err != nil {
				httputil.WriteError(w, err)
				return
			}
		}
		if err := a.toggler.Toggle(r.Context(), a.userID(r), id, completed); err != nil {
			httputil.WriteError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
