// Package theme resolves and persists the light/dark colour scheme of a
// browser.
package theme

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/terra-clan/levelup-web/internal/session"
)

// Theme is a colour scheme
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// StorageKey is the backend key holding the saved preference
const StorageKey = "theme"

// HintHeader is the client hint carrying the OS preference
const HintHeader = "Sec-CH-Prefers-Color-Scheme"

// Valid reports whether t is light or dark
func (t Theme) Valid() bool {
	return t == Light || t == Dark
}

// Opposite returns the other theme
func (t Theme) Opposite() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Resolve picks the active theme: a valid stored preference, else the OS
// preference, else light.
func Resolve(stored string, prefersDark bool) Theme {
	if t := Theme(stored); t.Valid() {
		return t
	}
	if prefersDark {
		return Dark
	}
	return Light
}

// PrefersDark reads the OS preference from the client hint
func PrefersDark(r *http.Request) bool {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(HintHeader)), `"`)
	return strings.EqualFold(v, string(Dark))
}

// Controller holds the resolved theme of one browser
type Controller struct {
	backend session.Backend
	current Theme
}

// NewController resolves the initial theme from the backend and the OS
// preference
func NewController(ctx context.Context, backend session.Backend, prefersDark bool) *Controller {
	stored, _, err := backend.Get(ctx, StorageKey)
	if err != nil {
		slog.Warn("failed to read theme preference", "error", err)
		stored = ""
	}
	return &Controller{backend: backend, current: Resolve(stored, prefersDark)}
}

// Current returns the active theme
func (c *Controller) Current() Theme {
	return c.current
}

// Toggle flips the theme and saves the result
func (c *Controller) Toggle(ctx context.Context) (Theme, error) {
	next := c.current.Opposite()
	if err := c.backend.Set(ctx, StorageKey, string(next)); err != nil {
		return c.current, fmt.Errorf("failed to save theme: %w", err)
	}
	c.current = next
	slog.Debug("theme toggled", "theme", next)
	return next, nil
}

type contextKey string

const controllerContextKey contextKey = "theme_controller"

// Middleware resolves the theme of every request and asks browsers to
// send the colour scheme hint. session.Middleware must run first.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Accept-CH", HintHeader)
		w.Header().Set("Critical-CH", HintHeader)
		w.Header().Add("Vary", HintHeader)

		store := session.FromContext(r.Context())
		if store == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctrl := NewController(r.Context(), store.Backend(), PrefersDark(r))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), controllerContextKey, ctrl)))
	})
}

// FromContext returns the request's controller, nil when the middleware
// did not run
func FromContext(ctx context.Context) *Controller {
	ctrl, ok := ctx.Value(controllerContextKey).(*Controller)
	if !ok {
		return nil
	}
	return ctrl
}

// Of returns the active theme of the request, light when unknown
func Of(ctx context.Context) Theme {
	if ctrl := FromContext(ctx); ctrl != nil {
		return ctrl.Current()
	}
	return Light
}
