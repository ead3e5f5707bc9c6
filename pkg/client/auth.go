package client

import (
	"context"
	"net/http"
)

// AuthService wraps the two login endpoints. Both answer with the bare
// numeric id of the company or employee.
type AuthService struct {
	client *Client
}

// LoginCompany authenticates a company
func (s *AuthService) LoginCompany(ctx context.Context, creds Credentials) Result[int64] {
	return s.login(ctx, "/login/empresa", companyLoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

// LoginEmployee authenticates an employee
func (s *AuthService) LoginEmployee(ctx context.Context, creds Credentials) Result[int64] {
	return s.login(ctx, "/login/usuario", employeeLoginRequest{
		Email:    creds.Email,
		Password: creds.Password,
	})
}

func (s *AuthService) login(ctx context.Context, path string, body any) Result[int64] {
	res := As[loginID](s.client.Request(ctx, path, RequestOptions{
		Method: http.MethodPost,
		Body:   body,
	}))
	return Map(res, func(id loginID) int64 { return int64(id) })
}
