package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/terra-clan/levelup-web/internal/session"
)

func storeWith(t *testing.T, company, employee int64) *session.Store {
	t.Helper()
	ctx := context.Background()
	store := session.NewStore(session.NewMemoryBackend())
	if company != 0 {
		store.SetCompanyID(ctx, company)
	}
	if employee != 0 {
		store.SetEmployeeID(ctx, employee)
	}
	return store
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		req      Requirement
		company  int64
		employee int64
		allowed  bool
		redirect string
	}{
		{"company page, logged out", RequireCompany, 0, 0, false, "/login/empresa"},
		{"company page, employee session", RequireCompany, 0, 4, false, "/login/empresa"},
		{"company page, company session", RequireCompany, 2, 0, true, ""},
		{"employee page, logged out", RequireEmployee, 0, 0, false, "/login/usuario"},
		{"employee page, company session", RequireEmployee, 2, 0, false, "/login/usuario"},
		{"employee page, employee session", RequireEmployee, 0, 4, true, ""},
		{"any page, logged out", RequireAny, 0, 0, false, "/login"},
		{"any page, employee session", RequireAny, 0, 4, true, ""},
		{"any page, company session", RequireAny, 2, 0, true, ""},
		{"any page, both set", RequireAny, 2, 4, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(context.Background(), tt.req, storeWith(t, tt.company, tt.employee))
			if got.Allowed != tt.allowed || got.Redirect != tt.redirect {
				t.Errorf("Check() = %+v, want allowed=%v redirect=%q", got, tt.allowed, tt.redirect)
			}
		})
	}
}

func TestMiddlewareRedirects(t *testing.T) {
	backend := session.NewMemoryBackend()
	called := false
	h := session.Middleware(session.SharedProvider{Shared: backend})(
		Middleware(RequireCompany)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/empresa/dashboardEmpresa", nil))
	if called {
		t.Error("handler must not run without a company session")
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login/empresa" {
		t.Errorf("expected redirect to company login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/empresa/desafios", nil))
	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected 303 for POST, got %d", rec.Code)
	}

	// Re-evaluated on every request
	backend.Set(context.Background(), session.KeyCompanyID, "9")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/empresa/dashboardEmpresa", nil))
	if !called {
		t.Error("handler should run once the company session exists")
	}
}

func TestMiddlewareWithoutSession(t *testing.T) {
	h := Middleware(RequireAny)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/desafios", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
