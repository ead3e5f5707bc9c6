package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/terra-clan/levelup-web/internal/models"
	"github.com/terra-clan/levelup-web/pkg/client"
)

// DefaultXPReward is the reward a new challenge form starts with
const DefaultXPReward = 100

// ChallengeForm is the company's create/edit form
type ChallengeForm struct {
	ID          int64 // 0 creates a new challenge
	Title       string
	Description string
	Category    string
	Difficulty  models.Difficulty
	XPReward    int
	Active      *bool // carried over from the record being edited
}

// NewChallengeForm returns an empty form with the defaults
func NewChallengeForm() ChallengeForm {
	return ChallengeForm{Difficulty: models.DifficultyMedium, XPReward: DefaultXPReward}
}

// EditForm prefills the form from an existing challenge
func EditForm(c models.Challenge) ChallengeForm {
	form := ChallengeForm{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Category:    c.Category,
		Difficulty:  c.Difficulty,
		XPReward:    c.XPReward,
	}
	if !form.Difficulty.Valid() {
		form.Difficulty = models.DifficultyMedium
	}
	if form.XPReward == 0 {
		form.XPReward = DefaultXPReward
	}
	active := c.Active
	form.Active = &active
	return form
}

// Validate checks the fields the backend requires
func (f ChallengeForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errors.New("título é obrigatório")
	}
	if !f.Difficulty.Valid() {
		return fmt.Errorf("dificuldade inválida: %q", f.Difficulty)
	}
	if f.XPReward <= 0 {
		return errors.New("XP deve ser maior que zero")
	}
	return nil
}

// CompanyView is everything the company dashboard renders
type CompanyView struct {
	CompanyID  int64              `json:"company_id"`
	Challenges []models.Challenge `json:"challenges"`
	Error      string             `json:"error,omitempty"`
}

// Company drives the company dashboard
type Company struct {
	api CompanyAPI
}

// NewCompany creates a company dashboard over the backend
func NewCompany(api CompanyAPI) *Company {
	return &Company{api: api}
}

// Load lists the company's challenges. A 404 means the company has none.
func (c *Company) Load(ctx context.Context, companyID int64) CompanyView {
	view := CompanyView{CompanyID: companyID, Challenges: []models.Challenge{}}

	res := c.api.ListByCompany(ctx, companyID)
	list, errMsg := listOrEmpty(res)
	if errMsg != "" {
		slog.Warn("failed to load company challenges", "company_id", companyID, "error", errMsg)
		view.Error = "Erro ao carregar desafios"
		return view
	}
	view.Challenges = list
	return view
}

// Find returns the challenge with the given id from a loaded view
func (v CompanyView) Find(id int64) (models.Challenge, bool) {
	for _, ch := range v.Challenges {
		if ch.ID == id {
			return ch, true
		}
	}
	return models.Challenge{}, false
}

// Save creates the challenge when the form has no id and updates it
// otherwise
func (c *Company) Save(ctx context.Context, companyID int64, form ChallengeForm) Outcome {
	if err := form.Validate(); err != nil {
		return failed(err.Error())
	}

	if form.ID == 0 {
		res := c.api.Create(ctx, client.CreateChallengeRequest{
			CompanyID:   companyID,
			Title:       form.Title,
			Description: form.Description,
			Category:    form.Category,
			Difficulty:  form.Difficulty.Wire(),
			XPReward:    form.XPReward,
		})
		if !res.OK() {
			return failed(fmt.Sprintf("Erro ao criar desafio: %s", res.Err))
		}
		if !acceptedStatus(res.Status, 200, 201) {
			return failed(fmt.Sprintf("Status inesperado: %d", res.Status))
		}
		slog.Info("challenge created", "company_id", companyID, "title", form.Title)
		return success("Desafio criado com sucesso!")
	}

	res := c.api.Update(ctx, client.UpdateChallengeRequest{
		ID:          form.ID,
		CompanyID:   companyID,
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Difficulty:  form.Difficulty.Wire(),
		XPReward:    form.XPReward,
		Active:      form.Active,
	})
	if !res.OK() {
		if res.Kind() == client.KindStillReferenced {
			return failed("Não foi possível atualizar. O desafio está vinculado a usuários que o aceitaram.")
		}
		return failed(fmt.Sprintf("Erro ao atualizar desafio: %s", res.Err))
	}
	if !acceptedStatus(res.Status, 200, 201, 204) {
		return failed(fmt.Sprintf("Status inesperado: %d", res.Status))
	}
	slog.Info("challenge updated", "company_id", companyID, "challenge_id", form.ID)
	return success("Desafio atualizado com sucesso!")
}

// Delete removes a challenge. Deleting one that employees accepted is
// refused by the backend.
func (c *Company) Delete(ctx context.Context, challengeID int64) Outcome {
	if challengeID == 0 {
		return failed("ID do desafio não encontrado")
	}

	res := c.api.Delete(ctx, challengeID)
	if res.OK() {
		slog.Info("challenge deleted", "challenge_id", challengeID)
		return success("Desafio deletado com sucesso!")
	}

	switch {
	case res.Kind() == client.KindStillReferenced:
		return failed("❌ Não foi possível deletar. O desafio está vinculado a usuários que o aceitaram.")
	case res.NotFound():
		return failed("Desafio não encontrado.")
	case res.Kind() == client.KindNetwork || res.Kind() == client.KindTimeout:
		return failed("Erro de conexão ao deletar. Verifique sua internet.")
	default:
		return failed(fmt.Sprintf("Erro ao deletar: %s", res.Err))
	}
}
