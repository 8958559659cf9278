package notes

import (
	"sort"
	"strings"

	"github.com/aleksivanovs/notekeep/internal/client/models"
)

// CategoryAll is the sentinel category filter value meaning "no filter".
const CategoryAll = "all"

// SuggestedCategories is the fixed suggestion set offered when creating or
// editing a note. Category input stays free-form; these are only prompts.
var SuggestedCategories = []string{
	"General",
	"Personal",
	"Work",
	"Ideas",
	"Learning",
	"To-Do",
	"Project",
	"Meeting",
	"Reference",
}

// Derive computes the displayable subset of collection for the current
// filter state: a case-insensitive substring match of searchTerm against
// title or content, an exact category match unless selectedCategory is
// CategoryAll (or empty), then the pinned-then-recency order.
//
// Derive is pure: it never mutates collection, and identical inputs yield
// identical output sequences (ties keep the input order).
func Derive(collection []models.Note, searchTerm, selectedCategory string) []models.Note {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	out := make([]models.Note, 0, len(collection))
	for _, n := range collection {
		if term != "" &&
			!strings.Contains(strings.ToLower(n.Title), term) &&
			!strings.Contains(strings.ToLower(n.Content), term) {
			continue
		}
		if selectedCategory != "" && selectedCategory != CategoryAll && n.Category != selectedCategory {
			continue
		}
		out = append(out, n)
	}

	sortNotes(out)
	return out
}

// sortNotes orders notes in place: pinned before unpinned, then most
// recently updated first. The sort is stable so equal keys keep their
// relative input order.
func sortNotes(notes []models.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].IsPinned != notes[j].IsPinned {
			return notes[i].IsPinned
		}
		return notes[i].UpdatedAt.After(notes[j].UpdatedAt)
	})
}
