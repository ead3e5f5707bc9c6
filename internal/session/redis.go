package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sidCookie names the cookie holding the redis session id
const sidCookie = "levelup_sid"

// RedisBackend keeps values in redis under a per-browser session id. Only
// the session id travels in a cookie.
type RedisBackend struct {
	client *redis.Client
	sid    string
	prefix string
}

// NewRedisBackend binds a backend to the browser of r, issuing a new
// session id cookie when the browser has none
func NewRedisBackend(client *redis.Client, w http.ResponseWriter, r *http.Request, secure bool) *RedisBackend {
	sid := ""
	if c, err := r.Cookie(sidCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			sid = c.Value
		}
	}

	if sid == "" {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sidCookie,
			Value:    sid,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		slog.Debug("issued session id", "sid_prefix", sid[:8])
	}

	return &RedisBackend{
		client: client,
		sid:    sid,
		prefix: fmt.Sprintf("levelup:session:%s:", sid),
	}
}

// SessionID returns the browser's session id
func (b *RedisBackend) SessionID() string {
	return b.sid
}

func (b *RedisBackend) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := b.client.Get(ctx, b.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return v, true, nil
}

func (b *RedisBackend) Set(ctx context.Context, key, value string) error {
	if err := b.client.Set(ctx, b.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
