package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/terra-clan/levelup-web/internal/catalog"
	"github.com/terra-clan/levelup-web/internal/config"
	"github.com/terra-clan/levelup-web/internal/session"
	"github.com/terra-clan/levelup-web/pkg/client"
)

type testServer struct {
	*Server
	shared *session.MemoryBackend
}

func newTestServer(t *testing.T, backend http.HandlerFunc) *testServer {
	t.Helper()
	if backend == nil {
		backend = func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}
	}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cat, err := catalog.Defaults()
	if err != nil {
		t.Fatalf("catalog.Defaults() error = %v", err)
	}

	shared := session.NewMemoryBackend()
	s, err := NewServer(
		config.ServerConfig{CORSOrigins: []string{"*"}},
		client.NewClient(srv.URL),
		cat,
		session.SharedProvider{Shared: shared},
		nil,
	)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return &testServer{Server: s, shared: shared}
}

func (ts *testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) store() *session.Store {
	return session.NewStore(ts.shared)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp apiResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}

	if rec := ts.do(http.MethodGet, "/ready", nil); rec.Code != http.StatusOK {
		t.Errorf("ready status = %d, want 200", rec.Code)
	}
}

func TestGuardedPagesRedirect(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		company  int64
		employee int64
		want     string
	}{
		{"company dashboard anonymous", "/empresa/dashboardEmpresa", 0, 0, "/login/empresa"},
		{"employee dashboard anonymous", "/usuario/dashboardUsuario", 0, 0, "/login/usuario"},
		{"catalog anonymous", "/desafios", 0, 0, "/login"},
		{"company dashboard as employee", "/empresa/dashboardEmpresa", 0, 3, "/login/empresa"},
		{"employee dashboard as company", "/usuario/dashboardUsuario", 5, 0, "/login/usuario"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ctx := context.Background()
			if tt.company != 0 {
				ts.store().SetCompanyID(ctx, tt.company)
			}
			if tt.employee != 0 {
				ts.store().SetEmployeeID(ctx, tt.employee)
			}

			rec := ts.do(http.MethodGet, tt.path, nil)
			if rec.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302", rec.Code)
			}
			if got := rec.Header().Get("Location"); got != tt.want {
				t.Errorf("Location = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		backend    http.HandlerFunc
		form       url.Values
		wantStatus int
		wantBody   string
		wantID     int64
	}{
		{
			name: "success",
			backend: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte("42"))
			},
			form:       url.Values{"email": {"rh@acme.com"}, "password": {"secret"}},
			wantStatus: http.StatusSeeOther,
			wantID:     42,
		},
		{
			name:       "empty fields",
			form:       url.Values{"email": {""}, "password": {""}},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Preencha todos os campos",
		},
		{
			name: "wrong password",
			backend: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
			},
			form:       url.Values{"email": {"rh@acme.com"}, "password": {"nope"}},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Email ou senha inválidos.",
		},
		{
			name: "wrong login type",
			backend: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "wrong type", http.StatusUnprocessableEntity)
			},
			form:       url.Values{"email": {"ana@acme.com"}, "password": {"secret"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "Tipo de login incorreto.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, tt.backend)

			rec := ts.do(http.MethodPost, "/login/empresa", tt.form)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantBody != "" && !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body does not contain %q", tt.wantBody)
			}

			id, ok := ts.store().CompanyID(context.Background())
			if tt.wantID == 0 {
				if ok {
					t.Errorf("company id = %d, want none", id)
				}
				return
			}
			if id != tt.wantID {
				t.Errorf("company id = %d, want %d", id, tt.wantID)
			}
			if got := rec.Header().Get("Location"); got != "/empresa/dashboardEmpresa" {
				t.Errorf("Location = %q", got)
			}
		})
	}
}

func TestLogoutClearsBothIDs(t *testing.T) {
	ts := newTestServer(t, nil)
	ctx := context.Background()
	ts.store().SetCompanyID(ctx, 1)
	ts.store().SetEmployeeID(ctx, 2)

	rec := ts.do(http.MethodPost, "/logout", url.Values{})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if _, ok := ts.store().CompanyID(ctx); ok {
		t.Error("company id survived logout")
	}
	if _, ok := ts.store().EmployeeID(ctx); ok {
		t.Error("employee id survived logout")
	}
}

func TestThemeToggle(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodPost, "/theme/toggle", url.Values{"next": {"/faq"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}
	if got := rec.Header().Get("Location"); got != "/faq" {
		t.Errorf("Location = %q, want /faq", got)
	}

	v, ok, _ := ts.shared.Get(context.Background(), "theme")
	if !ok || v != "dark" {
		t.Errorf("stored theme = %q, %v; want dark", v, ok)
	}

	page := ts.do(http.MethodGet, "/faq", nil)
	if !strings.Contains(page.Body.String(), `class="dark"`) {
		t.Error("page not rendered with the dark theme")
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "/"},
		{"/desafios", "/desafios"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
	}
	for _, tt := range tests {
		if got := safeRedirect(tt.in); got != tt.want {
			t.Errorf("safeRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCatalogPage(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store().SetEmployeeID(context.Background(), 9)

	rec := ts.do(http.MethodGet, "/desafios", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	for _, title := range []string{"Fundamentos de React", "Docker Essentials"} {
		if !strings.Contains(rec.Body.String(), title) {
			t.Errorf("catalog page missing %q", title)
		}
	}

	rec = ts.do(http.MethodGet, "/desafios?q=docker", nil)
	if strings.Contains(rec.Body.String(), "Fundamentos de React") {
		t.Error("filtered page still lists React")
	}
	if !strings.Contains(rec.Body.String(), "Docker Essentials") {
		t.Error("filtered page misses Docker")
	}
}

func TestCatalogSaveAndFlash(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store().SetCompanyID(context.Background(), 1)

	rec := ts.do(http.MethodPost, "/desafios", url.Values{
		"title":      {"Kubernetes"},
		"category":   {"DevOps"},
		"difficulty": {"hard"},
		"xp_reward":  {"300"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", rec.Code)
	}

	var flash *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			flash = c
		}
	}
	if flash == nil {
		t.Fatal("no flash cookie set")
	}

	req := httptest.NewRequest(http.MethodGet, "/desafios", nil)
	req.AddCookie(flash)
	page := httptest.NewRecorder()
	ts.Router().ServeHTTP(page, req)

	if !strings.Contains(page.Body.String(), "Kubernetes") {
		t.Error("new challenge not listed")
	}
	cleared := false
	for _, c := range page.Result().Cookies() {
		if c.Name == flashCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("flash cookie not consumed")
	}
}

func TestAPIRequiresSession(t *testing.T) {
	ts := newTestServer(t, nil)

	rec := ts.do(http.MethodGet, "/api/v1/company/challenges/", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body AuthError
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Redirect != "/login/empresa" {
		t.Errorf("redirect = %q, want /login/empresa", body.Redirect)
	}
}

func TestAPISession(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store().SetEmployeeID(context.Background(), 8)

	rec := ts.do(http.MethodGet, "/api/v1/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Data sessionInfo `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Role != "usuario" {
		t.Errorf("role = %q, want usuario", resp.Data.Role)
	}
	if resp.Data.EmployeeID == nil || *resp.Data.EmployeeID != 8 {
		t.Errorf("employee id = %v, want 8", resp.Data.EmployeeID)
	}
	if resp.Data.CompanyID != nil {
		t.Errorf("company id = %v, want none", *resp.Data.CompanyID)
	}
}

func TestAPICatalogCRUD(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.store().SetCompanyID(context.Background(), 1)

	create := httptest.NewRequest(http.MethodPost, "/api/v1/catalog/",
		strings.NewReader(`{"title":"Go","category":"Backend","difficulty":"facil"}`))
	create.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.Router().ServeHTTP(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", rec.Code)
	}

	var created struct {
		Data struct {
			ID         string `json:"id"`
			Difficulty string `json:"difficulty"`
			XPReward   int    `json:"xpReward"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.Data.ID == "" || created.Data.Difficulty != "easy" || created.Data.XPReward != 100 {
		t.Errorf("created = %+v", created.Data)
	}

	if rec := ts.do(http.MethodGet, "/api/v1/catalog/"+created.Data.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("get status = %d, want 200", rec.Code)
	}
	if rec := ts.do(http.MethodDelete, "/api/v1/catalog/"+created.Data.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("delete status = %d, want 200", rec.Code)
	}
	if rec := ts.do(http.MethodDelete, "/api/v1/catalog/"+created.Data.ID, nil); rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", rec.Code)
	}
}

func TestAPICompanyChallengeValidation(t *testing.T) {
	var calls atomic.Int32
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	ts.store().SetCompanyID(context.Background(), 1)

	tests := []struct {
		name   string
		method string
		target string
		body   string
	}{
		{"empty title", http.MethodPost, "/api/v1/company/challenges/", `{"titulo":"","dificuldade":"facil"}`},
		{"bad difficulty", http.MethodPost, "/api/v1/company/challenges/", `{"titulo":"Go","dificuldade":"impossivel"}`},
		{"zero xp on update", http.MethodPut, "/api/v1/company/challenges/7", `{"titulo":"Go","xp_recompensa":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			ts.Router().ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp apiResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != "validation_error" {
				t.Errorf("error = %+v, want validation_error", resp.Error)
			}
		})
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("backend called %d times for invalid input", n)
	}
}

func TestAPIEmployeeComplete(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Desafio já concluído"}`, http.StatusBadRequest)
	})
	ts.store().SetEmployeeID(context.Background(), 4)

	rec := ts.do(http.MethodPost, "/api/v1/employee/challenges/3/complete", url.Values{})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
}

func TestFormatParseIDs(t *testing.T) {
	ids := parseIDs("3, 1,x,,0,2")
	if len(ids) != 3 {
		t.Fatalf("parsed %d ids, want 3", len(ids))
	}
	if got := formatIDs(ids); got != "1,2,3" {
		t.Errorf("formatIDs = %q, want 1,2,3", got)
	}
	if got := formatIDs(parseIDs("")); got != "" {
		t.Errorf("formatIDs(empty) = %q", got)
	}
}
