package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/terra-clan/levelup-web/internal/models"
)

func TestStoreCompanyID(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())

	if err := store.SetCompanyID(ctx, 7); err != nil {
		t.Fatalf("SetCompanyID: %v", err)
	}
	if id, ok := store.CompanyID(ctx); !ok || id != 7 {
		t.Errorf("expected 7, got %d (ok=%v)", id, ok)
	}

	if err := store.RemoveCompanyID(ctx); err != nil {
		t.Fatalf("RemoveCompanyID: %v", err)
	}
	if _, ok := store.CompanyID(ctx); ok {
		t.Error("expected company id to be absent after removal")
	}
}

func TestStoreIdentifiersAreIndependent(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())

	store.SetEmployeeID(ctx, 11)
	if _, ok := store.CompanyID(ctx); ok {
		t.Error("company id must not be set by an employee login")
	}
	if id, _ := store.EmployeeID(ctx); id != 11 {
		t.Errorf("expected employee 11, got %d", id)
	}
	if store.Role(ctx) != models.RoleEmployee {
		t.Errorf("expected employee role, got %q", store.Role(ctx))
	}

	store.SetCompanyID(ctx, 3)
	if store.Role(ctx) != models.RoleCompany {
		t.Errorf("expected company role to win, got %q", store.Role(ctx))
	}

	store.Clear(ctx)
	if store.Role(ctx) != models.RoleNone {
		t.Errorf("expected no role after clear, got %q", store.Role(ctx))
	}
}

func TestStoreUnparseableValue(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	backend.Set(ctx, KeyEmployeeID, "not-a-number")

	store := NewStore(backend)
	if _, ok := store.EmployeeID(ctx); ok {
		t.Error("expected unparseable value to read as absent")
	}

	backend.Set(ctx, KeyEmployeeID, "0")
	if _, ok := store.EmployeeID(ctx); ok {
		t.Error("expected zero to read as absent")
	}
}

func TestCookieBackendRoundTrip(t *testing.T) {
	ctx := context.Background()

	// First request: login writes the cookie
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login/empresa", nil)
	store := NewStore(NewCookieBackend(rec, req, false, ""))
	store.SetCompanyID(ctx, 42)

	if id, ok := store.CompanyID(ctx); !ok || id != 42 {
		t.Errorf("expected staged write to be readable, got %d", id)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != KeyCompanyID || cookies[0].Value != "42" {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].Path != "/" {
		t.Errorf("unexpected cookie attributes %+v", cookies[0])
	}

	// Second request: the browser sends it back
	req2 := httptest.NewRequest(http.MethodGet, "/empresa/dashboardEmpresa", nil)
	req2.AddCookie(cookies[0])
	rec2 := httptest.NewRecorder()
	store2 := NewStore(NewCookieBackend(rec2, req2, false, ""))
	if id, ok := store2.CompanyID(ctx); !ok || id != 42 {
		t.Errorf("expected 42 from cookie, got %d", id)
	}

	store2.RemoveCompanyID(ctx)
	if _, ok := store2.CompanyID(ctx); ok {
		t.Error("expected removal to hide the request cookie")
	}
	expired := rec2.Result().Cookies()
	if len(expired) != 1 || expired[0].MaxAge >= 0 {
		t.Errorf("expected an expiring cookie, got %+v", expired)
	}
}

func TestMiddlewareAttachesStore(t *testing.T) {
	backend := NewMemoryBackend()
	backend.Set(context.Background(), KeyEmployeeID, "5")

	var got *Store
	h := Middleware(SharedProvider{Shared: backend})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if got == nil {
		t.Fatal("expected store in context")
	}
	if id, _ := got.EmployeeID(context.Background()); id != 5 {
		t.Errorf("expected employee 5, got %d", id)
	}
	if FromContext(context.Background()) != nil {
		t.Error("expected nil store on a bare context")
	}
}
