package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/levelup-web/internal/catalog"
	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/models"
)

// Catalog handlers: the local practice catalog behind /desafios

type catalogForm struct {
	ID          string
	Title       string
	Description string
	Category    string
	Difficulty  models.Difficulty
	XPReward    int
}

type catalogPage struct {
	Filter     catalog.Filter
	Challenges []models.CatalogChallenge
	Categories []string
	Stats      models.CatalogStats
	Form       catalogForm
}

func filterFrom(r *http.Request) catalog.Filter {
	q := r.URL.Query()
	return catalog.Filter{
		Query:      q.Get("q"),
		Difficulty: q.Get("dificuldade"),
		Category:   q.Get("categoria"),
		Status:     catalog.Status(q.Get("status")),
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	filter := filterFrom(r)
	if filter.Difficulty != "" && filter.Difficulty != "todos" {
		filter.Difficulty = string(models.ParseDifficulty(filter.Difficulty))
	}

	form := catalogForm{Difficulty: models.DifficultyMedium, XPReward: catalog.DefaultXPReward}
	if id := r.URL.Query().Get("editar"); id != "" {
		if ch, err := s.catalog.Get(id); err == nil {
			form = catalogForm{
				ID:          ch.ID,
				Title:       ch.Title,
				Description: ch.Description,
				Category:    ch.Category,
				Difficulty:  ch.Difficulty,
				XPReward:    ch.XPReward,
			}
		}
	}

	s.render(w, r, http.StatusOK, "desafios", s.page(r, "Desafios", catalogPage{
		Filter:     filter,
		Challenges: s.catalog.Filter(filter),
		Categories: s.catalog.Categories(),
		Stats:      s.catalog.Stats(),
		Form:       form,
	}))
}

func (s *Server) handleCatalogSave(w http.ResponseWriter, r *http.Request) {
	in, err := catalogInputFrom(r.FormValue("title"), r.FormValue("description"), r.FormValue("category"),
		r.FormValue("difficulty"), r.FormValue("xp_reward"))
	if err != nil {
		redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelError, Text: err.Error()})
		return
	}

	id := r.FormValue("id")
	if id == "" {
		_, err = s.catalog.Create(in)
	} else {
		_, err = s.catalog.Update(id, in)
	}
	if err != nil {
		slog.Warn("failed to save catalog challenge", "id", id, "error", err)
		redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelError, Text: "Erro ao salvar desafio: " + err.Error()})
		return
	}

	text := "Desafio criado com sucesso!"
	if id != "" {
		text = "Desafio atualizado com sucesso!"
	}
	redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelSuccess, Text: text})
}

func (s *Server) handleCatalogDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.catalog.Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelError, Text: "Desafio não encontrado."})
			return
		}
		slog.Error("failed to delete catalog challenge", "id", id, "error", err)
		redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelError, Text: "Erro ao deletar desafio."})
		return
	}
	redirectWithFlash(w, r, "/desafios", dashboard.Message{Level: dashboard.LevelSuccess, Text: "Desafio deletado com sucesso!"})
}

func catalogInputFrom(title, description, category, difficulty, xp string) (catalog.ChallengeInput, error) {
	in := catalog.ChallengeInput{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Category:    strings.TrimSpace(category),
		Difficulty:  models.ParseDifficulty(difficulty),
		XPReward:    catalog.DefaultXPReward,
	}
	if difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if xp != "" {
		n, err := strconv.Atoi(xp)
		if err != nil {
			return in, errors.New("XP inválido")
		}
		in.XPReward = n
	}
	return in, in.Validate()
}
