package session

import (
	"context"
	"net/http"
	"time"
)

// cookieMaxAge keeps values around like browser local storage would
const cookieMaxAge = 400 * 24 * time.Hour

// CookieBackend stores values as cookies on one request/response pair.
// Writes are visible to later reads on the same request.
type CookieBackend struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool
	prefix string
	staged map[string]*string
}

// NewCookieBackend creates a backend bound to the current request
func NewCookieBackend(w http.ResponseWriter, r *http.Request, secure bool, prefix string) *CookieBackend {
	return &CookieBackend{
		w:      w,
		r:      r,
		secure: secure,
		prefix: prefix,
		staged: make(map[string]*string),
	}
}

func (b *CookieBackend) Get(_ context.Context, key string) (string, bool, error) {
	if v, ok := b.staged[key]; ok {
		if v == nil {
			return "", false, nil
		}
		return *v, true, nil
	}

	c, err := b.r.Cookie(b.prefix + key)
	if err != nil {
		return "", false, nil
	}
	return c.Value, true, nil
}

func (b *CookieBackend) Set(_ context.Context, key, value string) error {
	b.staged[key] = &value
	http.SetCookie(b.w, &http.Cookie{
		Name:     b.prefix + key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (b *CookieBackend) Delete(_ context.Context, key string) error {
	b.staged[key] = nil
	http.SetCookie(b.w, &http.Cookie{
		Name:     b.prefix + key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
