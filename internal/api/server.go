package api

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/terra-clan/levelup-web/internal/catalog"
	"github.com/terra-clan/levelup-web/internal/config"
	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/guard"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/internal/theme"
	"github.com/terra-clan/levelup-web/internal/warmup"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// Server serves the LevelUp Work pages and the JSON API
type Server struct {
	config   config.ServerConfig
	router   *chi.Mux
	backend  *client.Client
	catalog  *catalog.Catalog
	sessions session.Provider
	warmer   *warmup.Warmer
	employee *dashboard.Employee
	company  *dashboard.Company
	views    *renderer
}

// NewServer creates a new server. warmer may be nil.
func NewServer(
	cfg config.ServerConfig,
	backend *client.Client,
	cat *catalog.Catalog,
	sessions session.Provider,
	warmer *warmup.Warmer,
) (*Server, error) {
	views, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to parse views: %w", err)
	}

	s := &Server{
		config:   cfg,
		backend:  backend,
		catalog:  cat,
		sessions: sessions,
		warmer:   warmer,
		employee: dashboard.NewEmployee(backend.Employee),
		company:  dashboard.NewCompany(backend.Challenges),
		views:    views,
	}
	s.setupRouter()
	return s, nil
}

// Router returns the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRouter configures all routes and middleware
func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	if s.config.WriteTimeout > 0 {
		r.Use(middleware.Timeout(s.config.WriteTimeout))
	}

	r.NotFound(s.handleNotFound)

	// Health check (public, no session)
	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	r.Group(func(r chi.Router) {
		r.Use(session.Middleware(s.sessions))
		r.Use(theme.Middleware)
		r.Use(s.flashMiddleware)

		// Public pages
		r.Get("/", s.handleHome)
		r.Get("/login", s.handleLoginChoice)
		r.Get("/login/empresa", s.handleLoginForm(true))
		r.Post("/login/empresa", s.handleLogin(true))
		r.Get("/login/usuario", s.handleLoginForm(false))
		r.Post("/login/usuario", s.handleLogin(false))
		r.Get("/cadastro", s.handleRegistration)
		r.Post("/cadastro/empresa", s.handleRegisterCompany)
		r.Post("/cadastro/usuario", s.handleRegisterEmployee)
		r.Get("/faq", s.handleFAQ)
		r.Post("/faq/contato", s.handleContact)
		r.Get("/integrantes", s.handleTeam)
		r.Post("/theme/toggle", s.handleThemeToggle)
		r.Post("/logout", s.handleLogout)

		// Company pages
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(guard.RequireCompany))
			r.Get("/empresa/dashboardEmpresa", s.handleCompanyDashboard)
			r.Post("/empresa/desafios", s.handleCompanySave)
			r.Post("/empresa/desafios/{id}/deletar", s.handleCompanyDelete)
		})

		// Employee pages
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(guard.RequireEmployee))
			r.Get("/usuario/dashboardUsuario", s.handleEmployeeDashboard)
			r.Post("/usuario/desafios/{id}/aceitar", s.handleEmployeeAccept)
			r.Post("/usuario/desafios/{id}/concluir", s.handleEmployeeComplete)
		})

		// Pages for anyone logged in
		r.Group(func(r chi.Router) {
			r.Use(guard.Middleware(guard.RequireAny))
			r.Get("/desafios", s.handleCatalog)
			r.Post("/desafios", s.handleCatalogSave)
			r.Post("/desafios/{id}/deletar", s.handleCatalogDelete)
		})

		// JSON mirror of the pages
		r.Route("/api/v1", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   s.config.CORSOrigins,
				AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
				ExposedHeaders:   []string{"X-Request-ID"},
				AllowCredentials: true,
				MaxAge:           300,
			}))

			r.Get("/session", s.apiSession)
			r.Get("/companies", s.apiListCompanies)
			r.Get("/faq", s.apiFAQ)
			r.Get("/team", s.apiTeam)

			r.Route("/catalog", func(r chi.Router) {
				r.Use(requireSession(guard.RequireAny))
				r.Get("/", s.apiListCatalog)
				r.Post("/", s.apiCreateCatalog)
				r.Get("/{id}", s.apiGetCatalog)
				r.Put("/{id}", s.apiUpdateCatalog)
				r.Delete("/{id}", s.apiDeleteCatalog)
			})

			r.Route("/company/challenges", func(r chi.Router) {
				r.Use(requireSession(guard.RequireCompany))
				r.Get("/", s.apiListCompanyChallenges)
				r.Post("/", s.apiSaveCompanyChallenge)
				r.Put("/{id}", s.apiSaveCompanyChallenge)
				r.Delete("/{id}", s.apiDeleteCompanyChallenge)
			})

			r.Route("/employee", func(r chi.Router) {
				r.Use(requireSession(guard.RequireEmployee))
				r.Get("/dashboard", s.apiEmployeeDashboard)
				r.Post("/challenges/{id}/accept", s.apiEmployeeAccept)
				r.Post("/challenges/{id}/complete", s.apiEmployeeComplete)
			})
		})
	})

	s.router = r
}

// loggingMiddleware logs HTTP requests using slog
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			slog.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
