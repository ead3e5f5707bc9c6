// Package catalog serves the local practice catalog, the FAQ and the team
// page. Content is read from YAML; the catalog can be edited in memory but
// edits are never written back.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/terra-clan/levelup-web/internal/models"
)

//go:embed content/*.yaml
var defaultContent embed.FS

const (
	challengesFile = "challenges.yaml"
	faqFile        = "faq.yaml"
	teamFile       = "team.yaml"
)

// ErrNotFound is returned for an unknown challenge id
var ErrNotFound = errors.New("challenge not found")

// Catalog holds the content in memory
type Catalog struct {
	mu         sync.RWMutex
	challenges []*models.CatalogChallenge
	faq        []models.FAQItem
	team       []models.TeamMember
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{}
}

// Defaults returns a catalog holding the built-in content
func Defaults() (*Catalog, error) {
	c := New()
	if err := c.LoadFS(defaultFS()); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads content from dir. Files missing from dir, or dir itself
// missing, fall back to the built-in content.
func Load(dir string) (*Catalog, error) {
	c, err := Defaults()
	if err != nil {
		return nil, fmt.Errorf("failed to load built-in content: %w", err)
	}

	if dir == "" {
		slog.Info("using built-in catalog content")
		return c, nil
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Warn("content directory not found, using built-in content", "dir", dir)
		return c, nil
	}

	slog.Info("loading catalog content", "dir", dir)
	if err := c.LoadFS(os.DirFS(dir)); err != nil {
		return nil, err
	}
	return c, nil
}

func defaultFS() fs.FS {
	sub, err := fs.Sub(defaultContent, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// LoadFS replaces whatever content fsys provides. Each of the three files
// is optional.
func (c *Catalog) LoadFS(fsys fs.FS) error {
	var cf challengesFileData
	found, err := readYAML(fsys, challengesFile, &cf)
	if err != nil {
		return err
	}
	if found {
		challenges, err := buildChallenges(cf.Challenges)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", challengesFile, err)
		}
		c.mu.Lock()
		c.challenges = challenges
		c.mu.Unlock()
		slog.Info("catalog challenges loaded", "count", len(challenges))
	}

	var ff faqFileData
	if found, err = readYAML(fsys, faqFile, &ff); err != nil {
		return err
	}
	if found {
		c.mu.Lock()
		c.faq = ff.FAQ
		c.mu.Unlock()
		slog.Info("faq loaded", "count", len(ff.FAQ))
	}

	var tf teamFileData
	if found, err = readYAML(fsys, teamFile, &tf); err != nil {
		return err
	}
	if found {
		c.mu.Lock()
		c.team = tf.Team
		c.mu.Unlock()
		slog.Info("team loaded", "count", len(tf.Team))
	}

	return nil
}

func readYAML(fsys fs.FS, name string, v any) (bool, error) {
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return true, nil
}

func buildChallenges(in []models.CatalogChallenge) ([]*models.CatalogChallenge, error) {
	out := make([]*models.CatalogChallenge, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for i := range in {
		ch := in[i]
		if strings.TrimSpace(ch.Title) == "" {
			return nil, fmt.Errorf("challenge %d: title is required", i+1)
		}
		if ch.ID == "" {
			ch.ID = uuid.NewString()
		}
		if _, dup := seen[ch.ID]; dup {
			return nil, fmt.Errorf("duplicate challenge id %q", ch.ID)
		}
		seen[ch.ID] = struct{}{}

		ch.Difficulty = models.ParseDifficulty(string(ch.Difficulty))
		if !ch.Difficulty.Valid() {
			ch.Difficulty = models.DifficultyMedium
		}
		ch.Progress = clampProgress(ch.Progress)
		out = append(out, &ch)
	}
	return out, nil
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// FAQ returns the FAQ entries in file order
func (c *Catalog) FAQ() []models.FAQItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.FAQItem(nil), c.faq...)
}

// Team returns the team members in file order
func (c *Catalog) Team() []models.TeamMember {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.TeamMember(nil), c.team...)
}

// --- YAML file structs ---

type challengesFileData struct {
	Challenges []models.CatalogChallenge `yaml:"challenges"`
}

type faqFileData struct {
	FAQ []models.FAQItem `yaml:"faq"`
}

type teamFileData struct {
	Team []models.TeamMember `yaml:"team"`
}
