package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/theme"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", s.page(r, "", nil))
}

func (s *Server) handleFAQ(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "faq", s.page(r, "FAQ", s.catalog.FAQ()))
}

// handleContact acknowledges the FAQ contact form. Messages are logged
// only; there is no mailbox behind it.
func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	message := strings.TrimSpace(r.FormValue("message"))
	if email == "" || message == "" {
		redirectWithFlash(w, r, "/faq", dashboard.Message{Level: dashboard.LevelError, Text: "Preencha todos os campos"})
		return
	}

	slog.Info("contact message received", "email", email, "length", len(message))
	redirectWithFlash(w, r, "/faq", dashboard.Message{Level: dashboard.LevelSuccess, Text: "Mensagem enviada! Responderemos em breve."})
}

func (s *Server) handleTeam(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "integrantes", s.page(r, "Integrantes", s.catalog.Team()))
}

func (s *Server) handleThemeToggle(w http.ResponseWriter, r *http.Request) {
	next := safeRedirect(r.FormValue("next"))

	ctrl := theme.FromContext(r.Context())
	if ctrl == nil {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}

	if _, err := ctrl.Toggle(r.Context()); err != nil {
		slog.Error("failed to toggle theme", "error", err)
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// safeRedirect keeps redirects on this origin
func safeRedirect(path string) string {
	if path == "" || !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return "/"
	}
	return path
}
