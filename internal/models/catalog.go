package models

// CatalogChallenge is an entry of the local practice catalog. It never
// reaches the backend.
type CatalogChallenge struct {
	ID          string     `json:"id" yaml:"id"`
	Title       string     `json:"title" yaml:"title"`
	Description string     `json:"description" yaml:"description"`
	Category    string     `json:"category" yaml:"category"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	XPReward    int        `json:"xpReward" yaml:"xp_reward"`
	Progress    int        `json:"progress" yaml:"progress"` // 0..100
	Completed   bool       `json:"completed" yaml:"completed"`
}

// CatalogStats summarizes the catalog
type CatalogStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	XPEarned  int `json:"xpEarned"`
}

// FAQItem is a question on the FAQ page
type FAQItem struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// TeamMember is a person on the team page
type TeamMember struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	RM       string `json:"rm" yaml:"rm"`
	Role     string `json:"role" yaml:"role"`
	Class    string `json:"class" yaml:"class"`
	GitHub   string `json:"github" yaml:"github"`
	LinkedIn string `json:"linkedin" yaml:"linkedin"`
	Photo    string `json:"photo" yaml:"photo"`
}
