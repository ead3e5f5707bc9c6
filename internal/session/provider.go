package session

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Provider builds the backend of the browser behind a request
type Provider interface {
	Backend(w http.ResponseWriter, r *http.Request) Backend
}

// CookieProvider stores everything in cookies
type CookieProvider struct {
	Secure bool
	Prefix string
}

func (p CookieProvider) Backend(w http.ResponseWriter, r *http.Request) Backend {
	return NewCookieBackend(w, r, p.Secure, p.Prefix)
}

// RedisProvider stores values in redis, keyed by a session id cookie
type RedisProvider struct {
	Client *redis.Client
	Secure bool
}

func (p RedisProvider) Backend(w http.ResponseWriter, r *http.Request) Backend {
	return NewRedisBackend(p.Client, w, r, p.Secure)
}

// SharedProvider hands every request the same backend
type SharedProvider struct {
	Shared Backend
}

func (p SharedProvider) Backend(http.ResponseWriter, *http.Request) Backend {
	return p.Shared
}

type contextKey string

const storeContextKey contextKey = "session_store"

// Middleware attaches the browser's Store to the request context
func Middleware(provider Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := NewStore(provider.Backend(w, r))
			next.ServeHTTP(w, r.WithContext(ContextWithStore(r.Context(), store)))
		})
	}
}

// ContextWithStore adds a Store to ctx
func ContextWithStore(ctx context.Context, store *Store) context.Context {
	return context.WithValue(ctx, storeContextKey, store)
}

// FromContext extracts the Store, nil when the middleware did not run
func FromContext(ctx context.Context) *Store {
	store, ok := ctx.Value(storeContextKey).(*Store)
	if !ok {
		return nil
	}
	return store
}
