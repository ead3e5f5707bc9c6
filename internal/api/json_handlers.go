package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/levelup-web/internal/catalog"
	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/internal/theme"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// JSON handlers under /api/v1

type sessionInfo struct {
	Role       models.Role `json:"role"`
	CompanyID  *int64      `json:"company_id,omitempty"`
	EmployeeID *int64      `json:"employee_id,omitempty"`
	Theme      theme.Theme `json:"theme"`
}

func (s *Server) apiSession(w http.ResponseWriter, r *http.Request) {
	store := session.FromContext(r.Context())
	info := sessionInfo{Role: store.Role(r.Context()), Theme: theme.Of(r.Context())}
	if id, ok := store.CompanyID(r.Context()); ok {
		info.CompanyID = &id
	}
	if id, ok := store.EmployeeID(r.Context()); ok {
		info.EmployeeID = &id
	}
	respondJSON(w, http.StatusOK, info)
}

// respondBackendError maps a failed backend result onto the JSON envelope
func respondBackendError[T any](w http.ResponseWriter, res client.Result[T]) {
	status := res.Status
	switch res.Kind() {
	case client.KindTimeout:
		status = http.StatusGatewayTimeout
	case client.KindNetwork, client.KindServer:
		status = http.StatusBadGateway
	case client.KindStillReferenced:
		status = http.StatusConflict
	}
	if status < 400 {
		status = http.StatusBadGateway
	}
	respondError(w, status, "backend_"+res.Kind().String(), res.Err)
}

func (s *Server) apiListCompanies(w http.ResponseWriter, r *http.Request) {
	res := s.backend.Registration.ListCompanies(r.Context())
	if !res.OK() {
		respondBackendError(w, res)
		return
	}
	companies := res.Value()
	if companies == nil {
		companies = []string{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"companies": companies,
		"total":     len(companies),
	})
}

func (s *Server) apiFAQ(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"faq": s.catalog.FAQ()})
}

func (s *Server) apiTeam(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"team": s.catalog.Team()})
}

// --- Catalog ---

type catalogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
	XPReward    *int   `json:"xpReward"`
}

func (req catalogRequest) input() (catalog.ChallengeInput, error) {
	in := catalog.ChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Difficulty:  models.ParseDifficulty(req.Difficulty),
		XPReward:    catalog.DefaultXPReward,
	}
	if req.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if req.XPReward != nil {
		in.XPReward = *req.XPReward
	}
	return in, in.Validate()
}

func (s *Server) apiListCatalog(w http.ResponseWriter, r *http.Request) {
	challenges := s.catalog.Filter(filterFrom(r))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"challenges": challenges,
		"total":      len(challenges),
		"categories": s.catalog.Categories(),
		"stats":      s.catalog.Stats(),
	})
}

func (s *Server) apiGetCatalog(w http.ResponseWriter, r *http.Request) {
	ch, err := s.catalog.Get(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", "challenge not found")
		return
	}
	respondJSON(w, http.StatusOK, ch)
}

func (s *Server) apiCreateCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	ch, err := s.catalog.Create(in)
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, ch)
}

func (s *Server) apiUpdateCatalog(w http.ResponseWriter, r *http.Request) {
	var req catalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	in, err := req.input()
	if err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	ch, err := s.catalog.Update(chi.URLParam(r, "id"), in)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "challenge not found")
			return
		}
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, ch)
}

func (s *Server) apiDeleteCatalog(w http.ResponseWriter, r *http.Request) {
	if err := s.catalog.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "challenge not found")
			return
		}
		slog.Error("failed to delete catalog challenge", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to delete challenge")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "challenge deleted"})
}

// --- Company challenges ---

type companyChallengeRequest struct {
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Difficulty  string `json:"dificuldade"`
	XPReward    *int   `json:"xp_recompensa"`
	Active      *bool  `json:"ativo"`
}

func (s *Server) apiListCompanyChallenges(w http.ResponseWriter, r *http.Request) {
	companyID, _ := session.FromContext(r.Context()).CompanyID(r.Context())
	view := s.company.Load(r.Context(), companyID)
	if view.Error != "" {
		respondError(w, http.StatusBadGateway, "backend_error", view.Error)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// apiSaveCompanyChallenge creates on POST and updates on PUT /{id}
func (s *Server) apiSaveCompanyChallenge(w http.ResponseWriter, r *http.Request) {
	companyID, _ := session.FromContext(r.Context()).CompanyID(r.Context())

	var req companyChallengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	form := dashboard.NewChallengeForm()
	form.Title = req.Title
	form.Description = req.Description
	form.Category = req.Category
	form.Active = req.Active
	if req.Difficulty != "" {
		form.Difficulty = models.ParseDifficulty(req.Difficulty)
	}
	if req.XPReward != nil {
		form.XPReward = *req.XPReward
	}
	if r.Method == http.MethodPut {
		id, ok := idParam(r, "id")
		if !ok {
			respondError(w, http.StatusBadRequest, "validation_error", "invalid challenge id")
			return
		}
		form.ID = id
	}
	if err := form.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	respondOutcome(w, s.company.Save(r.Context(), companyID, form))
}

func (s *Server) apiDeleteCompanyChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid challenge id")
		return
	}
	respondOutcome(w, s.company.Delete(r.Context(), id))
}

// --- Employee ---

func (s *Server) apiEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())
	view := s.employee.Load(r.Context(), userID)
	if view.Failed() {
		respondError(w, http.StatusBadGateway, "backend_error", "Erro ao carregar dados")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (s *Server) apiEmployeeAccept(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid challenge id")
		return
	}
	respondOutcome(w, s.employee.Accept(r.Context(), userID, id, nil))
}

func (s *Server) apiEmployeeComplete(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())
	id, ok := idParam(r, "id")
	if !ok {
		respondError(w, http.StatusBadRequest, "validation_error", "invalid challenge id")
		return
	}
	respondOutcome(w, s.employee.Complete(r.Context(), userID, id))
}

// respondOutcome answers 200 for a successful action, 409 for an action
// already done and 502 for anything else
func respondOutcome(w http.ResponseWriter, out dashboard.Outcome) {
	if out.OK {
		respondJSON(w, http.StatusOK, out)
		return
	}
	if out.Message.Level == dashboard.LevelWarning {
		respondError(w, http.StatusConflict, "already_done", out.Message.Text)
		return
	}
	respondError(w, http.StatusBadGateway, "action_failed", out.Message.Text)
}
