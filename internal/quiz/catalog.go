// Package quiz serves the static quiz catalog consumed by the client's quiz
// page. The content ships inside the binary as YAML.
package quiz

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed quizzes.yaml
var embedded []byte

// ErrNotFound is returned by Get for an unknown quiz id.
var ErrNotFound = errors.New("quiz not found")

// Question is one multiple-choice question. Answer indexes Options.
type Question struct {
	Question    string   `yaml:"question" json:"question"`
	Options     []string `yaml:"options" json:"options"`
	Answer      int      `yaml:"answer" json:"answer"`
	Explanation string   `yaml:"explanation" json:"explanation"`
}

// Quiz is a titled set of questions with a per-question time limit.
type Quiz struct {
	ID               string     `yaml:"id" json:"id"`
	Title            string     `yaml:"title" json:"title"`
	Description      string     `yaml:"description" json:"description"`
	TimeLimitSeconds int        `yaml:"timeLimitSeconds" json:"timeLimitSeconds"`
	Questions        []Question `yaml:"questions" json:"questions"`
}

// Catalog is an immutable, ordered set of quizzes. Safe for concurrent reads.
type Catalog struct {
	quizzes []Quiz
	byID    map[string]int
}

// Default parses the embedded catalog.
func Default() (*Catalog, error) { return Parse(embedded) }

// Parse decodes and validates a YAML quiz list.
func Parse(data []byte) (*Catalog, error) {
	var qs []Quiz
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("failed to parse quiz catalog: %w", err)
	}
	c := &Catalog{quizzes: qs, byID: make(map[string]int, len(qs))}
	for i, q := range qs {
		if err := validate(q); err != nil {
			return nil, err
		}
		if _, dup := c.byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate quiz id %q", q.ID)
		}
		c.byID[q.ID] = i
	}
	return c, nil
}

func validate(q Quiz) error {
	if q.ID == "" {
		return fmt.Errorf("quiz id is required")
	}
	if q.Title == "" {
		return fmt.Errorf("quiz %q: title is required", q.ID)
	}
	if q.TimeLimitSeconds < 0 {
		return fmt.Errorf("quiz %q: negative time limit", q.ID)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("quiz %q: no questions", q.ID)
	}
	for i, qq := range q.Questions {
		if len(qq.Options) < 2 {
			return fmt.Errorf("quiz %q question %d: need at least two options", q.ID, i)
		}
		if qq.Answer < 0 || qq.Answer >= len(qq.Options) {
			return fmt.Errorf("quiz %q question %d: answer index %d out of range", q.ID, i, qq.Answer)
		}
	}
	return nil
}

// All returns every quiz in catalog order. The slice is a copy.
func (c *Catalog) All() []Quiz {
	out := make([]Quiz, len(c.quizzes))
	copy(out, c.quizzes)
	return out
}

// Get returns the quiz with the given id or ErrNotFound.
func (c *Catalog) Get(id string) (Quiz, error) {
	i, ok := c.byID[id]
	if !ok {
		return Quiz{}, ErrNotFound
	}
	return c.quizzes[i], nil
}
