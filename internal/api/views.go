package api

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/internal/theme"
)

//go:embed views/*.html
var viewFS embed.FS

//go:embed static
var staticFS embed.FS

var pageNames = []string{
	"home",
	"login_choice",
	"login",
	"cadastro",
	"dashboard_empresa",
	"dashboard_usuario",
	"desafios",
	"faq",
	"integrantes",
	"error",
}

var viewFuncs = template.FuncMap{
	"difficultyLabel": difficultyLabel,
	"initials":        initials,
}

type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	rd := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(viewFuncs).ParseFS(viewFS, "views/layout.html", "views/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", name, err)
		}
		rd.pages[name] = tmpl
	}
	return rd, nil
}

type navLink struct {
	Path   string
	Label  string
	Active bool
}

// pageData is what every view receives
type pageData struct {
	Title string
	Theme theme.Theme
	Role  models.Role
	Path  string
	Nav   []navLink
	Flash *dashboard.Message
	Data  any
}

func (s *Server) page(r *http.Request, title string, data any) pageData {
	role := models.RoleNone
	if store := session.FromContext(r.Context()); store != nil {
		role = store.Role(r.Context())
	}

	return pageData{
		Title: title,
		Theme: theme.Of(r.Context()),
		Role:  role,
		Path:  r.URL.Path,
		Nav:   navFor(role, r.URL.Path),
		Flash: FlashFromContext(r.Context()),
		Data:  data,
	}
}

func navFor(role models.Role, current string) []navLink {
	var links []navLink
	switch role {
	case models.RoleCompany, models.RoleEmployee:
		links = []navLink{
			{Path: "/", Label: "Home"},
			{Path: role.DashboardPath(), Label: "Dashboard"},
			{Path: "/desafios", Label: "Desafios"},
			{Path: "/integrantes", Label: "Integrantes"},
			{Path: "/faq", Label: "FAQ"},
		}
	default:
		links = []navLink{
			{Path: "/", Label: "Home"},
			{Path: "/login", Label: "Login"},
			{Path: "/cadastro", Label: "Cadastro"},
			{Path: "/integrantes", Label: "Integrantes"},
			{Path: "/faq", Label: "FAQ"},
		}
	}
	for i := range links {
		links[i].Active = links[i].Path == current
	}
	return links
}

// render writes a full page. The page is rendered to a buffer first so a
// template error never leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	tmpl, ok := s.views.pages[name]
	if !ok {
		slog.Error("unknown page", "page", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("failed to render page", "page", name, "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("failed to write page", "page", name, "error", err)
	}
}

type errorPage struct {
	Status  int
	Message string
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", s.page(r, http.StatusText(status), errorPage{Status: status, Message: message}))
}

func difficultyLabel(d models.Difficulty) string {
	switch d {
	case models.DifficultyEasy:
		return "Fácil"
	case models.DifficultyMedium:
		return "Médio"
	case models.DifficultyHard:
		return "Difícil"
	default:
		return string(d)
	}
}

func initials(name string) string {
	var letters []rune
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		if len(r) <= 2 {
			continue
		}
		letters = append(letters, r[0])
		if len(letters) == 2 {
			break
		}
	}
	return strings.ToUpper(string(letters))
}
