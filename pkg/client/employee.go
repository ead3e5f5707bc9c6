package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/terra-clan/levelup-web/internal/models"
)

// EmployeeService covers the challenge lifecycle of an employee
type EmployeeService struct {
	client *Client
}

// ListAvailable returns the challenges the employee may accept. The list
// may still contain accepted challenges; see models.Available.
func (s *EmployeeService) ListAvailable(ctx context.Context, userID int64) Result[[]models.Challenge] {
	return s.list(ctx, fmt.Sprintf("/desafiosUsuario/disponiveis/%d", userID))
}

// ListAccepted returns the challenges the employee accepted and has not
// completed yet
func (s *EmployeeService) ListAccepted(ctx context.Context, userID int64) Result[[]models.Challenge] {
	return s.list(ctx, fmt.Sprintf("/desafiosUsuario/desafiosAceitos/%d", userID))
}

// Accept accepts a challenge for the employee
func (s *EmployeeService) Accept(ctx context.Context, userID, challengeID int64) Result[Body] {
	return s.client.Request(ctx, fmt.Sprintf("/desafiosUsuario/aceitar/%d/%d", userID, challengeID), RequestOptions{
		Method: http.MethodPost,
	})
}

// Complete marks an accepted challenge as done
func (s *EmployeeService) Complete(ctx context.Context, userID, challengeID int64) Result[Body] {
	return s.client.Request(ctx, fmt.Sprintf("/desafiosUsuario/concluirDesafio/%d/%d", userID, challengeID), RequestOptions{
		Method: http.MethodPut,
	})
}

// Stats returns level and xp progress of the employee
func (s *EmployeeService) Stats(ctx context.Context, userID int64) Result[models.EmployeeStats] {
	res := As[StatsRecord](s.client.Request(ctx, fmt.Sprintf("/desafiosUsuario/stats/%d", userID), RequestOptions{
		Method: http.MethodGet,
	}))
	return Map(res, StatsRecord.Normalize)
}

func (s *EmployeeService) list(ctx context.Context, path string) Result[[]models.Challenge] {
	res := As[[]ChallengeRecord](s.client.Request(ctx, path, RequestOptions{
		Method: http.MethodGet,
	}))
	return Map(res, NormalizeChallenges)
}
