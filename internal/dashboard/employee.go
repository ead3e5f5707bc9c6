package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// EmployeeView is everything the employee dashboard renders
type EmployeeView struct {
	UserID    int64                 `json:"user_id"`
	Available []models.Challenge    `json:"available"`
	Accepted  []models.Challenge    `json:"accepted"`
	Stats     *models.EmployeeStats `json:"stats,omitempty"`
	Errors    []string              `json:"errors,omitempty"`
}

// Failed reports whether every section failed to load
func (v EmployeeView) Failed() bool {
	return len(v.Errors) == 3
}

// Employee drives the employee dashboard
type Employee struct {
	api EmployeeAPI
}

// NewEmployee creates an employee dashboard over the backend
func NewEmployee(api EmployeeAPI) *Employee {
	return &Employee{api: api}
}

// Load fetches the available, accepted and stats sections concurrently and
// waits for all three. A failing section leaves the others populated; a
// 404 list counts as empty. Challenges already accepted are removed from
// the available list.
func (e *Employee) Load(ctx context.Context, userID int64) EmployeeView {
	var (
		g         errgroup.Group
		available client.Result[[]models.Challenge]
		accepted  client.Result[[]models.Challenge]
		stats     client.Result[models.EmployeeStats]
	)

	g.Go(func() error {
		available = e.api.ListAvailable(ctx, userID)
		return nil
	})
	g.Go(func() error {
		accepted = e.api.ListAccepted(ctx, userID)
		return nil
	})
	g.Go(func() error {
		stats = e.api.Stats(ctx, userID)
		return nil
	})
	_ = g.Wait()

	view := EmployeeView{
		UserID:    userID,
		Available: []models.Challenge{},
		Accepted:  []models.Challenge{},
	}

	if list, err := listOrEmpty(accepted); err != "" {
		view.Errors = append(view.Errors, "desafios aceitos: "+err)
	} else {
		view.Accepted = list
	}

	if list, err := listOrEmpty(available); err != "" {
		view.Errors = append(view.Errors, "desafios disponíveis: "+err)
	} else {
		view.Available = models.Available(list, view.Accepted)
	}

	if stats.OK() && stats.Data != nil {
		view.Stats = stats.Data
	} else if !stats.OK() {
		view.Errors = append(view.Errors, "estatísticas: "+stats.Err)
	}

	if len(view.Errors) > 0 {
		slog.Warn("employee dashboard loaded partially",
			"user_id", userID,
			"errors", view.Errors,
		)
	}

	return view
}

func listOrEmpty(r client.Result[[]models.Challenge]) ([]models.Challenge, string) {
	if r.NotFound() {
		return []models.Challenge{}, ""
	}
	if !r.OK() {
		return nil, r.Err
	}
	if r.Data == nil {
		return []models.Challenge{}, ""
	}
	return *r.Data, ""
}

// Accept accepts a challenge for the employee. acceptedIDs is the set the
// page already shows as accepted; such a challenge is refused locally
// without a backend call.
func (e *Employee) Accept(ctx context.Context, userID, challengeID int64, acceptedIDs map[int64]struct{}) Outcome {
	if _, ok := acceptedIDs[challengeID]; ok {
		return warning("Você já aceitou este desafio!")
	}

	res := e.api.Accept(ctx, userID, challengeID)
	if !res.OK() {
		if isAlready(res.Err) {
			return warning("Este desafio já foi aceito anteriormente")
		}
		return failed(fmt.Sprintf("Erro ao aceitar: %s", res.Err))
	}

	if !acceptedStatus(res.Status, 200, 201, 204) {
		return failed(fmt.Sprintf("Status inesperado: %d", res.Status))
	}

	slog.Info("challenge accepted", "user_id", userID, "challenge_id", challengeID)
	return success("Desafio aceito com sucesso! 🎉")
}

// Complete marks an accepted challenge as done. The backend can take close
// to a minute on a cold start, so timeouts get their own message.
func (e *Employee) Complete(ctx context.Context, userID, challengeID int64) Outcome {
	res := e.api.Complete(ctx, userID, challengeID)
	if !res.OK() {
		switch {
		case res.Kind() == client.KindTimeout || strings.Contains(strings.ToLower(res.Err), "timeout"):
			return failed("⏱️ Timeout: A API demorou muito. Tente novamente.")
		case isAlready(res.Err):
			return warning("Este desafio já foi concluído anteriormente.")
		case res.Kind() == client.KindNetwork:
			return failed("🌐 Erro de rede: Verifique sua conexão.")
		default:
			return failed(fmt.Sprintf("Erro ao concluir: %s", res.Err))
		}
	}

	if !acceptedStatus(res.Status, 200, 201, 204) {
		return failed(fmt.Sprintf("Status inesperado: %d", res.Status))
	}

	slog.Info("challenge completed", "user_id", userID, "challenge_id", challengeID)
	return success("🎉 Parabéns! Desafio concluído! 🏆")
}
