package framework

import (
	"context"
	"errors"
	"net/http"

	"github.com/bucketlist/server/pkg/infrastructure/identity"
	httputil "github.com/bucketlist/server/pkg/infrastructure/http"
)

// AnonymousIDHeader carries the anonymous user id between client and server.
const AnonymousIDHeader = "X-Anonymous-Id"

type identityKey struct{}

// WithIdentity resolves the caller on every request. Anonymous callers get
// their id echoed in AnonymousIDHeader; rejected tokens are answered with 401.
func WithIdentity(resolver *identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := resolver.Resolve(r.Context(), r.Header.Get("Authorization"), r.Header.Get(AnonymousIDHeader))
			if errors.Is(err, identity.ErrInvalidToken) {
				httputil.WriteError(w, httputil.NewError(http.StatusUnauthorized, "invalid or expired ID token"))
				return
			}
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			if id.Anonymous || id.Ephemeral {
				w.Header().Set(AnonymousIDHeader, id.UserID)
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
		})
	}
}

// IdentityFrom returns the identity resolved by WithIdentity.
func IdentityFrom(ctx context.Context) (identity.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(identity.Identity)
	return id, ok
}
