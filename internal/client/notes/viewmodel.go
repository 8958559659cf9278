// Package notes maintains the client-side note collection and derives the
// displayable subset from the current search and category selections.
package notes

import (
	"context"
	"fmt"
	"sync"

	"github.com/aleksivanovs/notekeep/internal/client/api"
	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

// ViewModel holds the authoritative client-side copy of the user's notes.
// The copy is a cache: every mutation applies the backend-returned object,
// never a locally guessed patch, so server-assigned ids and timestamps are
// always the ones held.
type ViewModel struct {
	client api.Client
	log    logging.Logger

	mu    sync.RWMutex
	notes []models.Note
}

func NewViewModel(client api.Client, log logging.Logger) *ViewModel {
	return &ViewModel{client: client, log: log}
}

// Notes returns a copy of the held collection.
func (vm *ViewModel) Notes() []models.Note {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	out := make([]models.Note, len(vm.notes))
	copy(out, vm.notes)
	return out
}

// LoadAll fetches the full collection, replacing the held one wholesale.
// On failure the previously held collection stays in place: stale-but-present
// beats empty.
func (vm *ViewModel) LoadAll(ctx context.Context) error {
	fetched, err := vm.client.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("loading notes: %w", err)
	}
	sortNotes(fetched)

	vm.mu.Lock()
	vm.notes = fetched
	vm.mu.Unlock()

	vm.log.Debug(ctx, "notes loaded", "count", len(fetched))
	return nil
}

// Create sends a new note and prepends the backend-returned note, with its
// server-assigned id and timestamps, to the held collection. No eager
// re-sort; the next derivation orders it correctly regardless.
func (vm *ViewModel) Create(ctx context.Context, draft models.NoteDraft) (*models.Note, error) {
	created, err := vm.client.CreateNote(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("creating note: %w", err)
	}

	vm.mu.Lock()
	vm.notes = append([]models.Note{*created}, vm.notes...)
	vm.mu.Unlock()

	return created, nil
}

// Update sends the full field set for id and replaces the matching held
// entry with the backend-returned note. Fields are never merged locally;
// the response is authoritative for updatedAt.
func (vm *ViewModel) Update(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
	updated, err := vm.client.UpdateNote(ctx, id, draft)
	if err != nil {
		return nil, fmt.Errorf("updating note %s: %w", id, err)
	}

	vm.mu.Lock()
	for i := range vm.notes {
		if vm.notes[i].Id == id {
			vm.notes[i] = *updated
			break
		}
	}
	vm.mu.Unlock()

	return updated, nil
}

// Delete removes the note on the backend, then drops it from the held
// collection.
func (vm *ViewModel) Delete(ctx context.Context, id string) error {
	if err := vm.client.DeleteNote(ctx, id); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}

	vm.mu.Lock()
	kept := vm.notes[:0]
	for _, n := range vm.notes {
		if n.Id != id {
			kept = append(kept, n)
		}
	}
	vm.notes = kept
	vm.mu.Unlock()

	return nil
}

// TogglePin flips the note's pinned flag via a full-object update. The
// backend's returned note is applied rather than a local flip, since
// updatedAt changes server-side.
func (vm *ViewModel) TogglePin(ctx context.Context, note models.Note) (*models.Note, error) {
	draft := note.Draft()
	draft.IsPinned = !note.IsPinned
	return vm.Update(ctx, note.Id, draft)
}

// Get returns the held note with the given id, if present.
func (vm *ViewModel) Get(id string) (models.Note, bool) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	for _, n := range vm.notes {
		if n.Id == id {
			return n, true
		}
	}
	return models.Note{}, false
}

// Categories returns the distinct categories present in the held collection,
// in first-seen order.
func (vm *ViewModel) Categories() []string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()

	seen := make(map[string]struct{}, len(vm.notes))
	out := make([]string, 0, len(vm.notes))
	for _, n := range vm.notes {
		if _, ok := seen[n.Category]; ok {
			continue
		}
		seen[n.Category] = struct{}{}
		out = append(out, n.Category)
	}
	return out
}

// Reset drops the held collection. Called on logout so no notes outlive the
// session that fetched them.
func (vm *ViewModel) Reset() {
	vm.mu.Lock()
	vm.notes = nil
	vm.mu.Unlock()
}
