package models

// Role is who the browser is logged in as
type Role string

const (
	RoleNone     Role = ""
	RoleCompany  Role = "empresa"
	RoleEmployee Role = "usuario"
)

// LoginPath returns the login entry point for the role
func (r Role) LoginPath() string {
	switch r {
	case RoleCompany:
		return "/login/empresa"
	case RoleEmployee:
		return "/login/usuario"
	default:
		return "/login"
	}
}

// DashboardPath returns the landing page after a successful login
func (r Role) DashboardPath() string {
	switch r {
	case RoleCompany:
		return "/empresa/dashboardEmpresa"
	case RoleEmployee:
		return "/usuario/dashboardUsuario"
	default:
		return "/"
	}
}
