package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// validateDocument performs the structural checks the schema cannot express.
// Returns a combined error describing all problems found, or nil if valid.
func validateDocument(doc document) error {
	var errs []string

	lessonIDs := make(map[int]bool)
	wordIDs := make(map[int]bool)
	dialogueTitles := make(map[string]bool)
	levelKeys := make(map[string]bool)

	for _, level := range doc.Levels {
		if levelKeys[level.Key] {
			errs = append(errs, fmt.Sprintf("duplicate level key: %q", level.Key))
		}
		levelKeys[level.Key] = true

		for _, lesson := range level.Lessons {
			if lessonIDs[lesson.ID] {
				errs = append(errs, fmt.Sprintf("duplicate lesson ID: %d", lesson.ID))
			}
			lessonIDs[lesson.ID] = true

			if len(lesson.Vocabulary) == 0 {
				errs = append(errs, fmt.Sprintf("lesson %d has no vocabulary", lesson.ID))
			}
			for _, w := range lesson.Vocabulary {
				if wordIDs[w.ID] {
					errs = append(errs, fmt.Sprintf("duplicate vocabulary ID: %d", w.ID))
				}
				wordIDs[w.ID] = true
			}

			// Dialogue completion is keyed by title.
			title := lesson.Dialogue.Title
			if dialogueTitles[title] {
				errs = append(errs, fmt.Sprintf("duplicate dialogue title: %q", title))
			}
			dialogueTitles[title] = true

			if len(lesson.Dialogue.Lines) == 0 {
				errs = append(errs, fmt.Sprintf("lesson %d dialogue has no lines", lesson.ID))
			}
			for i, line := range lesson.Dialogue.Lines {
				if n := strings.Count(line.Spanish, BlankMarker); n != 1 {
					errs = append(errs, fmt.Sprintf("lesson %d line %d has %d blank markers, want 1", lesson.ID, i, n))
				}
				if !slices.Contains(line.Options, line.Blank) {
					errs = append(errs, fmt.Sprintf("lesson %d line %d: blank %q is not among options", lesson.ID, i, line.Blank))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
