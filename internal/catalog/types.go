package catalog

import "strings"

// BlankMarker is the placeholder for the missing token in a dialogue line.
const BlankMarker = "_____"

// VocabularyItem is a single flashcard word.
type VocabularyItem struct {
	ID            int    `yaml:"id" json:"id"`
	English       string `yaml:"english" json:"english"`
	Spanish       string `yaml:"spanish" json:"spanish"`
	Pronunciation string `yaml:"pronunciation" json:"pronunciation"`
	Example       string `yaml:"example" json:"example"`
	Translation   string `yaml:"translation" json:"translation"`
}

// GrammarRule is one concept/usage/example triple of a grammar unit.
type GrammarRule struct {
	Concept string `yaml:"concept" json:"concept"`
	Usage   string `yaml:"usage" json:"usage"`
	Example string `yaml:"example" json:"example"`
}

// GrammarUnit is the grammar topic taught by a lesson.
type GrammarUnit struct {
	Title       string        `yaml:"title" json:"title"`
	Explanation string        `yaml:"explanation" json:"explanation"`
	Rules       []GrammarRule `yaml:"rules" json:"rules"`
}

// DialogueLine is one line of a dialogue with a single blank to fill.
type DialogueLine struct {
	Speaker string   `yaml:"speaker" json:"speaker"`
	Spanish string   `yaml:"spanish" json:"spanish"`
	English string   `yaml:"english" json:"english"`
	Blank   string   `yaml:"blank" json:"blank"`
	Options []string `yaml:"options" json:"options"`
}

// Parts splits the Spanish sentence around the blank marker.
func (l DialogueLine) Parts() (before, after string) {
	before, after, _ = strings.Cut(l.Spanish, BlankMarker)
	return before, after
}

// Filled returns the sentence with the blank replaced by the correct token.
func (l DialogueLine) Filled() string {
	return strings.Replace(l.Spanish, BlankMarker, l.Blank, 1)
}

// Dialogue is a short conversation practiced by filling blanks.
type Dialogue struct {
	Title    string         `yaml:"title" json:"title"`
	Scenario string         `yaml:"scenario" json:"scenario"`
	Lines    []DialogueLine `yaml:"lines" json:"lines"`
}

// Lesson bundles vocabulary, one grammar unit and one dialogue.
type Lesson struct {
	ID         int              `yaml:"id" json:"id"`
	Title      string           `yaml:"title" json:"title"`
	Vocabulary []VocabularyItem `yaml:"vocabulary" json:"vocabulary"`
	Grammar    GrammarUnit      `yaml:"grammar" json:"grammar"`
	Dialogue   Dialogue         `yaml:"dialogue" json:"dialogue"`
}

// VocabularyIDs returns the ids of the lesson's words in order.
func (l Lesson) VocabularyIDs() []int {
	ids := make([]int, len(l.Vocabulary))
	for i, v := range l.Vocabulary {
		ids[i] = v.ID
	}
	return ids
}

// Level groups lessons in a fixed linear order.
type Level struct {
	Key     string   `yaml:"key" json:"key"`
	Title   string   `yaml:"title" json:"title"`
	Lessons []Lesson `yaml:"lessons" json:"lessons"`
}

// CulturalFact is a short note shown on the dashboard.
type CulturalFact struct {
	ID      int    `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Content string `yaml:"content" json:"content"`
	Emoji   string `yaml:"emoji" json:"emoji"`
	Country string `yaml:"country" json:"country"`
}

// document is the on-disk shape of a catalog file.
type document struct {
	Levels        []Level        `yaml:"levels" json:"levels"`
	CulturalFacts []CulturalFact `yaml:"cultural_facts" json:"cultural_facts"`
}
