package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/terra-clan/levelup-web/internal/models"
)

// DefaultXPReward is the reward a new catalog entry starts with
const DefaultXPReward = 100

// ChallengeInput is the editable part of a catalog entry
type ChallengeInput struct {
	Title       string
	Description string
	Category    string
	Difficulty  models.Difficulty
	XPReward    int
}

// Validate checks the input before it reaches the catalog
func (in ChallengeInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("title is required")
	}
	if !in.Difficulty.Valid() {
		return fmt.Errorf("invalid difficulty %q", in.Difficulty)
	}
	if in.XPReward < 0 {
		return errors.New("xp reward cannot be negative")
	}
	return nil
}

// List returns every entry in catalog order
func (c *Catalog) List() []models.CatalogChallenge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]models.CatalogChallenge, 0, len(c.challenges))
	for _, ch := range c.challenges {
		result = append(result, *ch)
	}
	return result
}

// Get returns one entry
func (c *Catalog) Get(id string) (models.CatalogChallenge, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return *c.challenges[i], nil
	}
	return models.CatalogChallenge{}, ErrNotFound
}

// Create appends a new entry with no progress
func (c *Catalog) Create(in ChallengeInput) (models.CatalogChallenge, error) {
	if err := in.Validate(); err != nil {
		return models.CatalogChallenge{}, err
	}

	ch := &models.CatalogChallenge{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Difficulty:  in.Difficulty,
		XPReward:    in.XPReward,
	}

	c.mu.Lock()
	c.challenges = append(c.challenges, ch)
	c.mu.Unlock()

	slog.Info("catalog challenge created", "id", ch.ID, "title", ch.Title)
	return *ch, nil
}

// Update replaces the editable fields of an entry, keeping its progress
func (c *Catalog) Update(id string, in ChallengeInput) (models.CatalogChallenge, error) {
	if err := in.Validate(); err != nil {
		return models.CatalogChallenge{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return models.CatalogChallenge{}, ErrNotFound
	}

	ch := c.challenges[i]
	ch.Title = strings.TrimSpace(in.Title)
	ch.Description = in.Description
	ch.Category = strings.TrimSpace(in.Category)
	ch.Difficulty = in.Difficulty
	ch.XPReward = in.XPReward

	slog.Info("catalog challenge updated", "id", id)
	return *ch, nil
}

// Delete removes an entry
func (c *Catalog) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	c.challenges = append(c.challenges[:i], c.challenges[i+1:]...)

	slog.Info("catalog challenge deleted", "id", id)
	return nil
}

// indexOf must be called with the lock held
func (c *Catalog) indexOf(id string) int {
	for i, ch := range c.challenges {
		if ch.ID == id {
			return i
		}
	}
	return -1
}

// Categories returns the distinct categories in first-seen order
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	var result []string
	for _, ch := range c.challenges {
		if ch.Category == "" {
			continue
		}
		if _, ok := seen[ch.Category]; ok {
			continue
		}
		seen[ch.Category] = struct{}{}
		result = append(result, ch.Category)
	}
	return result
}

// Stats counts the whole catalog. XP is earned only from completed
// entries.
func (c *Catalog) Stats() models.CatalogStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := models.CatalogStats{Total: len(c.challenges)}
	for _, ch := range c.challenges {
		if ch.Completed {
			stats.Completed++
			stats.XPEarned += ch.XPReward
		} else {
			stats.Pending++
		}
	}
	return stats
}

// Status filters entries by completion
type Status string

const (
	StatusAll       Status = "todos"
	StatusCompleted Status = "completos"
	StatusPending   Status = "pendentes"
)

// all is the value the filter selects use for "no filter"
const all = "todos"

// Filter narrows the catalog. Empty fields and "todos" match everything.
type Filter struct {
	Query      string
	Difficulty string
	Category   string
	Status     Status
}

func (f Filter) matches(ch *models.CatalogChallenge) bool {
	if f.Difficulty != "" && f.Difficulty != all && models.ParseDifficulty(f.Difficulty) != ch.Difficulty {
		return false
	}
	if f.Category != "" && f.Category != all && f.Category != ch.Category {
		return false
	}
	switch f.Status {
	case StatusCompleted:
		return ch.Completed
	case StatusPending:
		return !ch.Completed
	}
	return true
}

// Filter returns the entries matching f in catalog order. The query
// matches a substring of the title or description, or fuzzily matches the
// title.
func (c *Catalog) Filter(f Filter) []models.CatalogChallenge {
	c.mu.RLock()
	defer c.mu.RUnlock()

	candidates := c.challenges
	query := strings.TrimSpace(f.Query)
	if query != "" {
		candidates = c.search(query)
	}

	result := make([]models.CatalogChallenge, 0, len(candidates))
	for _, ch := range candidates {
		if f.matches(ch) {
			result = append(result, *ch)
		}
	}
	return result
}

// search must be called with the read lock held
func (c *Catalog) search(query string) []*models.CatalogChallenge {
	q := strings.ToLower(query)
	hits := make(map[int]struct{})
	for i, ch := range c.challenges {
		if strings.Contains(strings.ToLower(ch.Title), q) || strings.Contains(strings.ToLower(ch.Description), q) {
			hits[i] = struct{}{}
		}
	}
	for _, m := range fuzzy.FindFrom(query, titles(c.challenges)) {
		hits[m.Index] = struct{}{}
	}

	idx := make([]int, 0, len(hits))
	for i := range hits {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	result := make([]*models.CatalogChallenge, 0, len(idx))
	for _, i := range idx {
		result = append(result, c.challenges[i])
	}
	return result
}

// titles adapts the catalog to fuzzy.Source
type titles []*models.CatalogChallenge

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }
