package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/terra-clan/levelup-web/internal/models"
)

// ChallengeService manages the challenges a company owns
type ChallengeService struct {
	client *Client
}

// ListByCompany returns the challenges of a company. The backend answers
// 404 when the company has none.
func (s *ChallengeService) ListByCompany(ctx context.Context, companyID int64) Result[[]models.Challenge] {
	res := As[[]ChallengeRecord](s.client.Request(ctx, fmt.Sprintf("/desafio/empresa/%d", companyID), RequestOptions{
		Method: http.MethodGet,
	}))
	return Map(res, NormalizeChallenges)
}

// Create adds a challenge
func (s *ChallengeService) Create(ctx context.Context, req CreateChallengeRequest) Result[Body] {
	return s.client.Request(ctx, "/desafio/criar", RequestOptions{
		Method: http.MethodPost,
		Body:   req,
	})
}

// Update replaces a challenge. The backend rejects updates without ativo,
// so a nil Active is sent as true.
// TODO: send the stored active state once the backend exposes a way to
// deactivate challenges; the forced default hides deactivations.
func (s *ChallengeService) Update(ctx context.Context, req UpdateChallengeRequest) Result[Body] {
	if req.Active == nil {
		active := true
		req.Active = &active
	}

	return markStillReferenced(s.client.Request(ctx, "/desafio/atualizar", RequestOptions{
		Method: http.MethodPut,
		Body:   req,
	}))
}

// Delete removes a challenge. A challenge accepted by an employee cannot
// be deleted; that failure is reported as KindStillReferenced.
func (s *ChallengeService) Delete(ctx context.Context, challengeID int64) Result[Body] {
	return markStillReferenced(s.client.Request(ctx, fmt.Sprintf("/desafio/deletar/%d", challengeID), RequestOptions{
		Method: http.MethodDelete,
	}))
}
