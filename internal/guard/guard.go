package guard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/internal/session"
)

// Requirement is the role a page needs
type Requirement int

const (
	RequireAny Requirement = iota // company or employee
	RequireCompany
	RequireEmployee
)

func (r Requirement) String() string {
	switch r {
	case RequireCompany:
		return "company"
	case RequireEmployee:
		return "employee"
	default:
		return "any"
	}
}

// Decision is the outcome of a guard check
type Decision struct {
	Allowed  bool
	Redirect string
}

// Identity is the part of the session store the guard reads
type Identity interface {
	CompanyID(ctx context.Context) (int64, bool)
	EmployeeID(ctx context.Context) (int64, bool)
}

// Check decides whether the session satisfies the requirement. It never
// touches the network.
func Check(ctx context.Context, req Requirement, id Identity) Decision {
	_, hasCompany := id.CompanyID(ctx)
	_, hasEmployee := id.EmployeeID(ctx)

	switch req {
	case RequireCompany:
		if !hasCompany {
			return Decision{Redirect: models.RoleCompany.LoginPath()}
		}
	case RequireEmployee:
		if !hasEmployee {
			return Decision{Redirect: models.RoleEmployee.LoginPath()}
		}
	default:
		if !hasCompany && !hasEmployee {
			return Decision{Redirect: models.RoleNone.LoginPath()}
		}
	}

	return Decision{Allowed: true}
}

// Middleware enforces req on every request, redirecting to the matching
// login page when unmet. session.Middleware must run first.
func Middleware(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			store := session.FromContext(r.Context())
			if store == nil {
				slog.Error("guard used without session middleware", "path", r.URL.Path)
				http.Error(w, "session unavailable", http.StatusInternalServerError)
				return
			}

			decision := Check(r.Context(), req, store)
			if !decision.Allowed {
				slog.Info("access denied",
					"path", r.URL.Path,
					"required", req.String(),
					"redirect", decision.Redirect,
				)
				status := http.StatusFound
				if r.Method != http.MethodGet && r.Method != http.MethodHead {
					status = http.StatusSeeOther
				}
				http.Redirect(w, r, decision.Redirect, status)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
