package models

import "strings"

// Difficulty is the tier of a challenge
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps the spellings the backend and the forms use onto
// the canonical tiers. Unknown values are kept lower-cased.
func ParseDifficulty(raw string) Difficulty {
	switch s := strings.ToLower(strings.TrimSpace(raw)); s {
	case "easy", "facil", "fácil":
		return DifficultyEasy
	case "medium", "medio", "médio":
		return DifficultyMedium
	case "hard", "dificil", "difícil":
		return DifficultyHard
	default:
		return Difficulty(s)
	}
}

// Valid returns true for the three known tiers
func (d Difficulty) Valid() bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

// Wire returns the spelling the backend stores
func (d Difficulty) Wire() string {
	switch d {
	case DifficultyEasy:
		return "facil"
	case DifficultyMedium:
		return "medio"
	case DifficultyHard:
		return "dificil"
	default:
		return string(d)
	}
}

// Challenge is the canonical shape of a backend challenge, used by both the
// company and the employee views. CompanyID and Active are zero in the
// employee view.
type Challenge struct {
	ID          int64      `json:"id"`
	CompanyID   int64      `json:"company_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Difficulty  Difficulty `json:"difficulty"`
	XPReward    int        `json:"xp_reward"`
	Active      bool       `json:"active"`
}

// Available returns the challenges of available whose id is not in
// accepted, keeping the order of available.
func Available(available, accepted []Challenge) []Challenge {
	taken := make(map[int64]struct{}, len(accepted))
	for _, c := range accepted {
		taken[c.ID] = struct{}{}
	}

	result := make([]Challenge, 0, len(available))
	for _, c := range available {
		if _, ok := taken[c.ID]; ok {
			continue
		}
		result = append(result, c)
	}
	return result
}

// IDs returns the set of challenge ids
func IDs(challenges []Challenge) map[int64]struct{} {
	set := make(map[int64]struct{}, len(challenges))
	for _, c := range challenges {
		set[c.ID] = struct{}{}
	}
	return set
}
