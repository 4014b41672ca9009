// Package identity resolves the user behind a request.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"

	shared "github.com/bucketlist/server/pkg"
)

// ErrInvalidToken means a bearer token was presented and rejected.
var ErrInvalidToken = errors.New("invalid id token")

// FirebaseVerifier checks Firebase ID tokens.
type FirebaseVerifier struct {
	Client *auth.Client
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, token string) (string, error) {
	tok, err := v.Client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return tok.UID, nil
}

// Identity is the resolved user of one request.
type Identity struct {
	UserID string
	// Anonymous is true when no token was presented.
	Anonymous bool
	// Ephemeral is true for a fallback id generated because authentication was
	// unavailable. Completions tied to it will not survive the session.
	Ephemeral bool
}

// Resolver turns request credentials into an Identity.
type Resolver struct {
	// Verifier is nil when the auth backend could not be initialized.
	Verifier shared.IdentityVerifier
	Logger   *slog.Logger
}

// Resolve handles three cases:
//   - a bearer token is verified and its uid used; rejection is ErrInvalidToken
//   - no token: the caller's anonymous id is reused when it is a UUID, else a new one is issued
//   - a token but no verifier: a random ephemeral id is issued
func (r *Resolver) Resolve(ctx context.Context, authorization, anonymousID string) (Identity, error) {
	token := bearerToken(authorization)
	if token == "" {
		if _, err := uuid.Parse(anonymousID); err == nil {
			return Identity{UserID: anonymousID, Anonymous: true}, nil
		}
		return Identity{UserID: uuid.NewString(), Anonymous: true}, nil
	}

	if r.Verifier == nil {
		r.logger().Warn("Authentication unavailable, using a random user id")
		return Identity{UserID: uuid.NewString(), Ephemeral: true}, nil
	}

	uid, err := r.Verifier.VerifyIDToken(ctx, token)
	if err != nil {
		r.logger().Info("ID token rejected", "error", err)
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Identity{UserID: uid}, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func bearerToken(header string) string {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
