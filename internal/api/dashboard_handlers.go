package api

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/internal/session"
)

// --- Employee dashboard ---

const (
	tabAvailable = "disponiveis"
	tabAccepted  = "aceitos"
)

type employeePage struct {
	Tab         string
	View        dashboard.EmployeeView
	AcceptedIDs string
}

func (s *Server) handleEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())

	tab := tabAvailable
	if r.URL.Query().Get("tab") == tabAccepted {
		tab = tabAccepted
	}

	view := s.employee.Load(r.Context(), userID)
	page := s.page(r, "Dashboard", employeePage{
		Tab:         tab,
		View:        view,
		AcceptedIDs: formatIDs(models.IDs(view.Accepted)),
	})
	if view.Failed() && page.Flash == nil {
		page.Flash = &dashboard.Message{Level: dashboard.LevelError, Text: "Erro ao carregar dados"}
	}
	s.render(w, r, http.StatusOK, "dashboard_usuario", page)
}

func (s *Server) handleEmployeeAccept(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())
	challengeID, ok := idParam(r, "id")
	if !ok {
		s.renderError(w, r, http.StatusBadRequest, "Desafio inválido.")
		return
	}

	out := s.employee.Accept(r.Context(), userID, challengeID, parseIDs(r.FormValue("aceitos")))
	next := "/usuario/dashboardUsuario"
	if out.OK {
		next += "?tab=" + tabAccepted
	}
	redirectWithFlash(w, r, next, out.Message)
}

func (s *Server) handleEmployeeComplete(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.FromContext(r.Context()).EmployeeID(r.Context())
	challengeID, ok := idParam(r, "id")
	if !ok {
		s.renderError(w, r, http.StatusBadRequest, "Desafio inválido.")
		return
	}

	out := s.employee.Complete(r.Context(), userID, challengeID)
	redirectWithFlash(w, r, "/usuario/dashboardUsuario?tab="+tabAccepted, out.Message)
}

// formatIDs renders an id set as a sorted comma-separated list
func formatIDs(ids map[int64]struct{}) string {
	list := make([]int64, 0, len(ids))
	for id := range ids {
		list = append(list, id)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })

	parts := make([]string, len(list))
	for i, id := range list {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// parseIDs is the inverse of formatIDs; malformed entries are skipped
func parseIDs(raw string) map[int64]struct{} {
	ids := make(map[int64]struct{})
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		ids[id] = struct{}{}
	}
	return ids
}

// --- Company dashboard ---

type companyPage struct {
	View dashboard.CompanyView
	Form dashboard.ChallengeForm
}

func (s *Server) handleCompanyDashboard(w http.ResponseWriter, r *http.Request) {
	companyID, _ := session.FromContext(r.Context()).CompanyID(r.Context())

	view := s.company.Load(r.Context(), companyID)
	form := dashboard.NewChallengeForm()
	if editID, err := strconv.ParseInt(r.URL.Query().Get("editar"), 10, 64); err == nil {
		if ch, ok := view.Find(editID); ok {
			form = dashboard.EditForm(ch)
		}
	}

	s.render(w, r, http.StatusOK, "dashboard_empresa", s.page(r, "Dashboard", companyPage{View: view, Form: form}))
}

func (s *Server) handleCompanySave(w http.ResponseWriter, r *http.Request) {
	companyID, _ := session.FromContext(r.Context()).CompanyID(r.Context())

	form, err := challengeFormFrom(r)
	if err != nil {
		redirectWithFlash(w, r, "/empresa/dashboardEmpresa", dashboard.Message{Level: dashboard.LevelError, Text: err.Error()})
		return
	}

	out := s.company.Save(r.Context(), companyID, form)
	next := "/empresa/dashboardEmpresa"
	if !out.OK && form.ID != 0 {
		next += "?editar=" + strconv.FormatInt(form.ID, 10)
	}
	redirectWithFlash(w, r, next, out.Message)
}

func (s *Server) handleCompanyDelete(w http.ResponseWriter, r *http.Request) {
	challengeID, _ := idParam(r, "id")
	out := s.company.Delete(r.Context(), challengeID)
	redirectWithFlash(w, r, "/empresa/dashboardEmpresa", out.Message)
}

// challengeFormFrom reads the company challenge form. Field names follow
// the backend's payload.
func challengeFormFrom(r *http.Request) (dashboard.ChallengeForm, error) {
	form := dashboard.ChallengeForm{
		Title:       strings.TrimSpace(r.FormValue("titulo")),
		Description: strings.TrimSpace(r.FormValue("descricao")),
		Category:    strings.TrimSpace(r.FormValue("categoria")),
		Difficulty:  models.ParseDifficulty(r.FormValue("dificuldade")),
		XPReward:    dashboard.DefaultXPReward,
	}

	if raw := r.FormValue("id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return form, fmt.Errorf("ID do desafio inválido: %q", raw)
		}
		form.ID = id
	}

	if raw := r.FormValue("xp_recompensa"); raw != "" {
		xp, err := strconv.Atoi(raw)
		if err != nil {
			return form, fmt.Errorf("XP inválido: %q", raw)
		}
		form.XPReward = xp
	}

	if raw := r.FormValue("ativo"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return form, fmt.Errorf("valor inválido para ativo: %q", raw)
		}
		form.Active = &active
	}

	return form, nil
}
