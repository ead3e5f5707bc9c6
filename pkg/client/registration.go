package client

import (
	"context"
	"net/http"
)

// RegistrationService creates companies and employees
type RegistrationService struct {
	client *Client
}

// CreateCompany registers a new company
func (s *RegistrationService) CreateCompany(ctx context.Context, req CreateCompanyRequest) Result[Body] {
	return s.client.Request(ctx, "/cadastro/empresa", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	})
}

// ListCompanies returns the company names an employee can register under
func (s *RegistrationService) ListCompanies(ctx context.Context) Result[[]string] {
	return As[[]string](s.client.Request(ctx, "/cadastro/empresa/lista", RequestOptions{
		Method: http.MethodGet,
	}))
}

// CreateEmployee registers a new employee
func (s *RegistrationService) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) Result[Body] {
	return s.client.Request(ctx, "/cadastro/usuario", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	})
}
