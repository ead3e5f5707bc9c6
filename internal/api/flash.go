package api

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/terra-clan/levelup-web/internal/dashboard"
)

const (
	flashCookie = "levelup_flash"
	flashMaxAge = 60 // seconds
)

// setFlash queues a message for the next page rendered for this browser
func setFlash(w http.ResponseWriter, msg dashboard.Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.Error("failed to encode flash", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   flashMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// redirectWithFlash queues msg and redirects with 303 See Other
func redirectWithFlash(w http.ResponseWriter, r *http.Request, to string, msg dashboard.Message) {
	setFlash(w, msg)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// flashMiddleware consumes the pending flash message, if any. A message is
// shown once.
func (s *Server) flashMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie(flashCookie)
		if err != nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})

		var msg dashboard.Message
		raw, err := base64.RawURLEncoding.DecodeString(c.Value)
		if err != nil || json.Unmarshal(raw, &msg) != nil || msg.Text == "" {
			slog.Debug("discarding malformed flash cookie")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(ContextWithFlash(r.Context(), &msg)))
	})
}
