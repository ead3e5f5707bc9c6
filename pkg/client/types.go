package client

import (
	"encoding/json"
	"fmt"

	"github.com/terra-clan/levelup-web/internal/models"
)

// CreateCompanyRequest registers a company
type CreateCompanyRequest struct {
	Name      string `json:"nome_empresa"`
	CNPJ      string `json:"cnpj"`
	Sector    string `json:"setor"`
	FoundedOn string `json:"data_criacao"` // YYYY-MM-DD
	Email     string `json:"email_corporativo"`
	Password  string `json:"senha_corporativa"`
}

// CreateEmployeeRequest registers an employee under an existing company
type CreateEmployeeRequest struct {
	Name        string `json:"nome_usuario"`
	Email       string `json:"email"`
	Password    string `json:"senha"`
	CompanyName string `json:"nm_empresa"`
}

// Credentials is an email/password pair for either login endpoint
type Credentials struct {
	Email    string
	Password string
}

type companyLoginRequest struct {
	Email    string `json:"email_login_empresa"`
	Password string `json:"senha_login_empresa"`
}

type employeeLoginRequest struct {
	Email    string `json:"email_login_usuario"`
	Password string `json:"senha_login_usuario"`
}

// CreateChallengeRequest creates a challenge owned by a company
type CreateChallengeRequest struct {
	CompanyID   int64  `json:"id_empresa"`
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Difficulty  string `json:"dificuldade"`
	XPReward    int    `json:"xp_recompensa"`
}

// UpdateChallengeRequest replaces a challenge. Active nil is sent as true.
type UpdateChallengeRequest struct {
	ID          int64  `json:"id_desafio"`
	CompanyID   int64  `json:"id_empresa"`
	Title       string `json:"titulo"`
	Description string `json:"descricao"`
	Category    string `json:"categoria"`
	Difficulty  string `json:"dificuldade"`
	XPReward    int    `json:"xp_recompensa"`
	Active      *bool  `json:"ativo"`
}

// ChallengeRecord is a challenge as the backend sends it. Depending on the
// endpoint the id, company and xp fields use snake_case or camelCase.
type ChallengeRecord struct {
	IDSnake        *int64  `json:"id_desafio"`
	IDCamel        *int64  `json:"idDesafio"`
	CompanyIDSnake *int64  `json:"id_empresa"`
	CompanyIDCamel *int64  `json:"idEmpresa"`
	Title          *string `json:"titulo"`
	Description    *string `json:"descricao"`
	Category       *string `json:"categoria"`
	Difficulty     *string `json:"dificuldade"`
	XPSnake        *int    `json:"xp_recompensa"`
	XPCamel        *int    `json:"xpRecompensa"`
	Active         *bool   `json:"ativo"`
}

// ChallengeID returns id_desafio unless it is absent or zero, then idDesafio
func (r ChallengeRecord) ChallengeID() int64 {
	if r.IDSnake != nil && *r.IDSnake != 0 {
		return *r.IDSnake
	}
	if r.IDCamel != nil {
		return *r.IDCamel
	}
	return 0
}

// CompanyID follows the same rule as ChallengeID
func (r ChallengeRecord) CompanyID() int64 {
	if r.CompanyIDSnake != nil && *r.CompanyIDSnake != 0 {
		return *r.CompanyIDSnake
	}
	if r.CompanyIDCamel != nil {
		return *r.CompanyIDCamel
	}
	return 0
}

// XP returns xpRecompensa when present, else xp_recompensa
func (r ChallengeRecord) XP() int {
	if r.XPCamel != nil {
		return *r.XPCamel
	}
	if r.XPSnake != nil {
		return *r.XPSnake
	}
	return 0
}

// Normalize converts the record to the canonical challenge. A missing
// ativo flag reads as active, matching what updates send by default.
func (r ChallengeRecord) Normalize() models.Challenge {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return models.Challenge{
		ID:          r.ChallengeID(),
		CompanyID:   r.CompanyID(),
		Title:       deref(r.Title),
		Description: deref(r.Description),
		Category:    deref(r.Category),
		Difficulty:  models.ParseDifficulty(deref(r.Difficulty)),
		XPReward:    r.XP(),
		Active:      active,
	}
}

// NormalizeChallenges converts a list of records
func NormalizeChallenges(records []ChallengeRecord) []models.Challenge {
	out := make([]models.Challenge, 0, len(records))
	for _, r := range records {
		out = append(out, r.Normalize())
	}
	return out
}

// StatsRecord is the stats payload of the employee endpoints
type StatsRecord struct {
	StatusID            int64 `json:"id_status_usuario"`
	UserID              int64 `json:"id_usuario"`
	ChallengesCompleted int   `json:"desafios_concluidos"`
	Level               int   `json:"nivel_atual"`
	XPCurrent           int   `json:"xp_atual"`
	XPTotal             int   `json:"xp_total"`
}

// Normalize converts the record to the canonical stats
func (r StatsRecord) Normalize() models.EmployeeStats {
	return models.EmployeeStats{
		UserID:              r.UserID,
		Level:               r.Level,
		XPCurrent:           r.XPCurrent,
		XPTotal:             r.XPTotal,
		ChallengesCompleted: r.ChallengesCompleted,
	}
}

// loginID is the id a login endpoint answers with. The backend sends a
// bare number; an object carrying the id is accepted too.
type loginID int64

func (id *loginID) UnmarshalJSON(data []byte) error {
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*id = loginID(n)
		return nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unexpected login payload: %w", err)
	}
	for _, key := range []string{"id", "id_empresa", "id_usuario"} {
		if raw, ok := obj[key]; ok {
			if err := json.Unmarshal(raw, &n); err == nil {
				*id = loginID(n)
				return nil
			}
		}
	}
	return fmt.Errorf("login payload has no id")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
