package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/terra-clan/levelup-web/internal/dashboard"
	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// --- Login ---

type loginPage struct {
	Company bool
	Action  string
	Email   string
	Error   string
}

func (s *Server) handleLoginChoice(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "login_choice", s.page(r, "Login", nil))
}

func (s *Server) handleLoginForm(company bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.renderLogin(w, r, http.StatusOK, loginPage{Company: company})
	}
}

func (s *Server) renderLogin(w http.ResponseWriter, r *http.Request, status int, data loginPage) {
	role := models.RoleEmployee
	if data.Company {
		role = models.RoleCompany
	}
	data.Action = role.LoginPath()
	s.render(w, r, status, "login", s.page(r, "Login", data))
}

func (s *Server) handleLogin(company bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		data := loginPage{Company: company, Email: email}

		if email == "" || password == "" {
			data.Error = "Preencha todos os campos"
			s.renderLogin(w, r, http.StatusBadRequest, data)
			return
		}

		creds := client.Credentials{Email: email, Password: password}
		var res client.Result[int64]
		if company {
			res = s.backend.Auth.LoginCompany(r.Context(), creds)
		} else {
			res = s.backend.Auth.LoginEmployee(r.Context(), creds)
		}

		if msg, status := loginFailure(res); msg != "" {
			slog.Info("login failed", "company", company, "status", res.Status, "error", res.Err)
			data.Error = msg
			s.renderLogin(w, r, status, data)
			return
		}

		store := session.FromContext(r.Context())
		role := models.RoleEmployee
		var err error
		if company {
			role = models.RoleCompany
			err = store.SetCompanyID(r.Context(), res.Value())
		} else {
			err = store.SetEmployeeID(r.Context(), res.Value())
		}
		if err != nil {
			slog.Error("failed to save session", "error", err)
			data.Error = "Erro inesperado ao processar autenticação. Tente novamente."
			s.renderLogin(w, r, http.StatusInternalServerError, data)
			return
		}

		slog.Info("login succeeded", "role", string(role), "id", res.Value())
		http.Redirect(w, r, role.DashboardPath(), http.StatusSeeOther)
	}
}

// loginFailure maps a login result to the message shown on the form and
// the status of the re-rendered page. An empty message means success.
func loginFailure(res client.Result[int64]) (string, int) {
	if !res.OK() {
		switch res.Status {
		case http.StatusUnauthorized:
			return "Email ou senha inválidos.", http.StatusUnauthorized
		case http.StatusUnprocessableEntity:
			return "Tipo de login incorreto. Verifique se está usando o login correto (Empresa/Usuário).", http.StatusUnprocessableEntity
		default:
			return fmt.Sprintf("Erro ao fazer login: %s", res.Err), http.StatusBadGateway
		}
	}
	if res.Data == nil || res.Value() == 0 {
		return "Erro ao processar autenticação. Tente novamente.", http.StatusBadGateway
	}
	return "", http.StatusOK
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	store := session.FromContext(r.Context())
	if err := store.Clear(r.Context()); err != nil {
		slog.Error("failed to clear session", "error", err)
	}
	http.Redirect(w, r, models.RoleNone.LoginPath(), http.StatusSeeOther)
}

// --- Registration ---

type registrationPage struct {
	Tab       string
	Company   client.CreateCompanyRequest
	Employee  client.CreateEmployeeRequest
	Companies []string
	Error     string
}

func (s *Server) handleRegistration(w http.ResponseWriter, r *http.Request) {
	data := registrationPage{Tab: "empresa"}
	if r.URL.Query().Get("tab") == "usuario" {
		data.Tab = "usuario"
	}
	s.renderRegistration(w, r, http.StatusOK, data)
}

func (s *Server) renderRegistration(w http.ResponseWriter, r *http.Request, status int, data registrationPage) {
	if data.Tab == "usuario" && data.Companies == nil {
		res := s.backend.Registration.ListCompanies(r.Context())
		if !res.OK() {
			slog.Warn("failed to list companies", "status", res.Status, "error", res.Err)
			if data.Error == "" {
				data.Error = "Erro ao carregar empresas"
			}
		}
		data.Companies = res.Value()
	}
	s.render(w, r, status, "cadastro", s.page(r, "Cadastro", data))
}

func (s *Server) handleRegisterCompany(w http.ResponseWriter, r *http.Request) {
	req := client.CreateCompanyRequest{
		Name:      strings.TrimSpace(r.FormValue("nome_empresa")),
		CNPJ:      strings.TrimSpace(r.FormValue("cnpj")),
		Sector:    strings.TrimSpace(r.FormValue("setor")),
		FoundedOn: r.FormValue("data_criacao"),
		Email:     strings.TrimSpace(r.FormValue("email_corporativo")),
		Password:  r.FormValue("senha_corporativa"),
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		s.renderRegistration(w, r, http.StatusBadRequest, registrationPage{
			Tab: "empresa", Company: withoutPassword(req), Error: "Preencha todos os campos obrigatórios",
		})
		return
	}

	res := s.backend.Registration.CreateCompany(r.Context(), req)
	if !res.OK() {
		s.renderRegistration(w, r, http.StatusBadGateway, registrationPage{
			Tab: "empresa", Company: withoutPassword(req), Error: fmt.Sprintf("Erro ao cadastrar empresa: %s", res.Err),
		})
		return
	}

	slog.Info("company registered", "name", req.Name)
	redirectWithFlash(w, r, models.RoleCompany.LoginPath(), dashboard.Message{
		Level: dashboard.LevelSuccess, Text: "Empresa cadastrada com sucesso!",
	})
}

func withoutPassword(req client.CreateCompanyRequest) client.CreateCompanyRequest {
	req.Password = ""
	return req
}

func (s *Server) handleRegisterEmployee(w http.ResponseWriter, r *http.Request) {
	req := client.CreateEmployeeRequest{
		Name:        strings.TrimSpace(r.FormValue("nome_usuario")),
		Email:       strings.TrimSpace(r.FormValue("email")),
		Password:    r.FormValue("senha"),
		CompanyName: r.FormValue("nm_empresa"),
	}
	echo := req
	echo.Password = ""

	if req.Name == "" || req.Email == "" || req.Password == "" || req.CompanyName == "" {
		s.renderRegistration(w, r, http.StatusBadRequest, registrationPage{
			Tab: "usuario", Employee: echo, Error: "Preencha todos os campos obrigatórios",
		})
		return
	}

	res := s.backend.Registration.CreateEmployee(r.Context(), req)
	if !res.OK() {
		s.renderRegistration(w, r, http.StatusBadGateway, registrationPage{
			Tab: "usuario", Employee: echo, Error: fmt.Sprintf("Erro ao cadastrar usuário: %s", res.Err),
		})
		return
	}

	slog.Info("employee registered", "company", req.CompanyName)
	redirectWithFlash(w, r, models.RoleEmployee.LoginPath(), dashboard.Message{
		Level: dashboard.LevelSuccess, Text: "Usuário cadastrado com sucesso!",
	})
}
