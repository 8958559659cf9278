package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/client/notes"
)

// Refresh re-fetches the full note collection from the backend.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.notes.LoadAll(ctx); err != nil {
		a.log.Error(ctx, "loading notes failed", "error", err)
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	return nil
}

// List renders the held collection through the current search and category
// filters.
func (a *App) List() error {
	derived := notes.Derive(a.notes.Notes(), a.searchTerm, a.selectedCategory)
	if len(derived) == 0 {
		fmt.Fprintln(a.out, "No notes match")
		return nil
	}

	for _, n := range derived {
		a.renderNote(n)
	}
	fmt.Fprintf(a.out, "%d note(s)\n", len(derived))
	return nil
}

func (a *App) renderNote(n models.Note) {
	pin := " "
	if n.IsPinned {
		pin = "*"
	}
	switch a.viewMode {
	case ViewWide:
		fmt.Fprintf(a.out, "%s %s  [%s]  %s\n", pin, n.Id, n.Category, n.Title)
		fmt.Fprintf(a.out, "    updated %s\n", n.UpdatedAt.Format("2006-01-02 15:04"))
		if n.Content != "" {
			fmt.Fprintf(a.out, "    %s\n", firstLine(n.Content))
		}
	default:
		fmt.Fprintf(a.out, "%s %s  [%s]  %s\n", pin, n.Id, n.Category, n.Title)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Search sets the case-insensitive search term. An empty term clears it.
func (a *App) Search(term string) {
	a.searchTerm = term
	if term == "" {
		fmt.Fprintln(a.out, "Search cleared")
	} else {
		fmt.Fprintf(a.out, "Searching for %q\n", term)
	}
	_ = a.List()
}

// Category sets the category filter; "all" removes it.
func (a *App) Category(name string) {
	a.selectedCategory = name
	if name == notes.CategoryAll {
		fmt.Fprintln(a.out, "Category filter cleared")
	} else {
		fmt.Fprintf(a.out, "Showing category %q\n", name)
	}
	_ = a.List()
}

// Categories prints the distinct categories present in the collection.
func (a *App) Categories() error {
	cats := a.notes.Categories()
	if len(cats) == 0 {
		fmt.Fprintln(a.out, "No categories yet")
		return nil
	}
	fmt.Fprintln(a.out, strings.Join(cats, ", "))
	return nil
}

// ToggleView flips between the compact and wide renderings. Display-only.
func (a *App) ToggleView() {
	if a.viewMode == ViewCompact {
		a.viewMode = ViewWide
	} else {
		a.viewMode = ViewCompact
	}
	fmt.Fprintf(a.out, "View mode: %s\n", a.viewMode)
}

// Add prompts for a new note and creates it. Title is required; category
// defaults to General, with the suggestion set shown in the prompt.
func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(a.out, "Title is required")
		return nil
	}

	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Suggested categories: %s\n", strings.Join(notes.SuggestedCategories, ", "))
	category, err := getTextDefault(a.reader, "Category", notes.SuggestedCategories[0], a.out)
	if err != nil {
		return err
	}

	draft := models.NoteDraft{Title: title, Content: content, Category: category}
	created, err := a.notes.Create(ctx, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Created note %s\n", created.Id)
	return nil
}

// Edit prompts for the full field set of an existing note, prefilled with
// the current values, and sends the whole object back.
func (a *App) Edit(ctx context.Context, id string) error {
	note, ok := a.notes.Get(id)
	if !ok {
		fmt.Fprintln(a.out, "No such note:", id)
		return nil
	}

	title, err := getTextDefault(a.reader, "Title", note.Title, a.out)
	if err != nil {
		return err
	}

	content, err := getMultiline(a.reader, "Content (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = note.Content
	}

	category, err := getTextDefault(a.reader, "Category", note.Category, a.out)
	if err != nil {
		return err
	}

	draft := models.NoteDraft{Title: title, Content: content, Category: category, IsPinned: note.IsPinned}
	updated, err := a.notes.Update(ctx, id, draft)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Updated note %s\n", updated.Id)
	return nil
}

// Show prints a single note in full.
func (a *App) Show(id string) error {
	note, ok := a.notes.Get(id)
	if !ok {
		fmt.Fprintln(a.out, "No such note:", id)
		return nil
	}

	pin := ""
	if note.IsPinned {
		pin = " (pinned)"
	}
	fmt.Fprintf(a.out, "%s%s\n", note.Title, pin)
	fmt.Fprintf(a.out, "Category: %s\n", note.Category)
	fmt.Fprintf(a.out, "Created:  %s\n", note.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(a.out, "Updated:  %s\n", note.UpdatedAt.Format("2006-01-02 15:04"))
	if note.Content != "" {
		fmt.Fprintln(a.out)
		fmt.Fprintln(a.out, note.Content)
	}
	return nil
}

// Delete asks for confirmation, then deletes. The request is only issued
// after an explicit yes.
func (a *App) Delete(ctx context.Context, id string) error {
	note, ok := a.notes.Get(id)
	if !ok {
		fmt.Fprintln(a.out, "No such note:", id)
		return nil
	}

	if !GetConfirmation(a.reader, fmt.Sprintf("Delete %q?", note.Title), a.out) {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if err := a.notes.Delete(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	fmt.Fprintln(a.out, "Note deleted")
	return nil
}

// TogglePin flips the pinned flag and reports the server-confirmed state.
func (a *App) TogglePin(ctx context.Context, id string) error {
	note, ok := a.notes.Get(id)
	if !ok {
		fmt.Fprintln(a.out, "No such note:", id)
		return nil
	}

	updated, err := a.notes.TogglePin(ctx, note)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	if updated.IsPinned {
		fmt.Fprintf(a.out, "Pinned %q\n", updated.Title)
	} else {
		fmt.Fprintf(a.out, "Unpinned %q\n", updated.Title)
	}
	return nil
}
