package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/terra-clan/levelup-web/internal/guard"
	"github.com/terra-clan/levelup-web/internal/session"
)

// requireSession is the JSON counterpart of guard.Middleware: instead of
// redirecting it answers 401 with the login page to use
func requireSession(req guard.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.FromContext(r.Context())
			if store == nil {
				writeAuthError(w, http.StatusInternalServerError, "session unavailable", "", "")
				return
			}

			decision := guard.Check(r.Context(), req, store)
			if !decision.Allowed {
				slog.Warn("api access denied",
					"path", r.URL.Path,
					"required", req.String(),
					"remote_addr", r.RemoteAddr,
				)
				writeAuthError(w, http.StatusUnauthorized, "not authenticated",
					"login required: "+req.String(), decision.Redirect)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AuthError represents an authentication error response
type AuthError struct {
	Error    string `json:"error"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// writeAuthError writes JSON error response
func writeAuthError(w http.ResponseWriter, status int, error, message, redirect string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(AuthError{
		Error:    error,
		Message:  message,
		Redirect: redirect,
	})
}
