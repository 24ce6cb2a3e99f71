package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

// lessonRef locates a lesson inside the level list.
type lessonRef struct {
	level  int
	lesson int
}

// Catalog is the read-only content source: levels of lessons plus cultural
// facts. It is loaded once and never mutated.
type Catalog struct {
	levels  []Level
	facts   []CulturalFact
	lessons map[int]lessonRef
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from a YAML file. An empty path loads the embedded catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if err := validateShape(tree); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	return New(doc.Levels, doc.CulturalFacts), nil
}

// New builds a catalog from already-validated levels.
func New(levels []Level, facts []CulturalFact) *Catalog {
	c := &Catalog{
		levels:  levels,
		facts:   facts,
		lessons: make(map[int]lessonRef),
	}
	for li, level := range c.levels {
		for i, lesson := range level.Lessons {
			c.lessons[lesson.ID] = lessonRef{level: li, lesson: i}
		}
	}
	return c
}

// Levels returns the levels in display order.
func (c *Catalog) Levels() []Level {
	return c.levels
}

// Lesson looks up a lesson by id together with its level.
func (c *Catalog) Lesson(id int) (Lesson, Level, bool) {
	ref, ok := c.lessons[id]
	if !ok {
		return Lesson{}, Level{}, false
	}
	level := c.levels[ref.level]
	return level.Lessons[ref.lesson], level, true
}

// TotalLessons counts lessons across all levels.
func (c *Catalog) TotalLessons() int {
	return len(c.lessons)
}

// TotalVocabulary counts vocabulary items across all lessons.
func (c *Catalog) TotalVocabulary() int {
	n := 0
	for _, level := range c.levels {
		for _, lesson := range level.Lessons {
			n += len(lesson.Vocabulary)
		}
	}
	return n
}

// CulturalFacts returns all cultural facts.
func (c *Catalog) CulturalFacts() []CulturalFact {
	return c.facts
}

// RandomFact picks a cultural fact, or false if the catalog has none.
func (c *Catalog) RandomFact() (CulturalFact, bool) {
	if len(c.facts) == 0 {
		return CulturalFact{}, false
	}
	return c.facts[rand.IntN(len(c.facts))], true
}
