// Package session holds the authenticated identity for the client. The
// token is the single piece of durable auth state, stored under one fixed
// key; everything else is derived from it on load.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKey is the fixed key the auth token is persisted under.
const TokenKey = "auth_token"

// KV is the durable key-value store backing the session.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Identity is what the client can read out of the token without verifying
// it. The client has no signing key; a stale token is only detected when
// the server rejects a call.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// Session is the current auth state, threaded explicitly into the API
// client instead of living in a global.
type Session struct {
	token    string
	identity Identity
}

// Token implements the API client's token source. A nil or logged-out
// session yields "", which omits the Authorization header.
func (s *Session) Token() string {
	if s == nil {
		return ""
	}
	return s.token
}

func (s *Session) Identity() Identity {
	if s == nil {
		return Identity{}
	}
	return s.identity
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Store persists the session token.
type Store struct {
	kv KV
}

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Load restores the session from the durable store. A missing token yields
// a logged-out session, not an error.
func (st *Store) Load(ctx context.Context) (*Session, error) {
	token, ok, err := st.kv.Get(ctx, TokenKey)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(token) == "" {
		return &Session{}, nil
	}
	return &Session{token: token, identity: parseIdentity(token)}, nil
}

// Save persists a freshly issued token and returns the resulting session.
func (st *Store) Save(ctx context.Context, token string) (*Session, error) {
	if err := st.kv.Set(ctx, TokenKey, token); err != nil {
		return nil, err
	}
	return &Session{token: token, identity: parseIdentity(token)}, nil
}

// Clear removes the persisted token.
func (st *Store) Clear(ctx context.Context) error {
	return st.kv.Delete(ctx, TokenKey)
}

// parseIdentity reads display claims out of a JWT without verification.
// Opaque or malformed tokens are fine; the identity just stays empty.
func parseIdentity(token string) Identity {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Identity{}
	}

	identity := Identity{}
	if subject, err := claims.GetSubject(); err == nil {
		identity.Subject = subject
	}
	if expires, err := claims.GetExpirationTime(); err == nil && expires != nil {
		identity.ExpiresAt = expires.Time
	}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["displayName"].(string); ok {
		identity.DisplayName = name
	} else if name, ok := claims["name"].(string); ok {
		identity.DisplayName = name
	}
	return identity
}
