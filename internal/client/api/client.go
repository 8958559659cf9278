// Package api contains the HTTP client for the NoteKeep backend: a single
// configured entry point that attaches the bearer credential to every
// outgoing request, maps failures onto a small taxonomy, and signals forced
// session downgrade when the backend rejects the credential.
package api

import (
	"context"

	"github.com/aleksivanovs/notekeep/internal/client/models"
)

// Client defines the backend operations the rest of the client builds on.
//
// Contract:
//   - Login / Register: exchange credentials for a token plus identity.
//   - Profile: validate the current token and fetch the identity behind it.
//   - ListNotes / CreateNote / UpdateNote / DeleteNote: note CRUD for the
//     authenticated user. UpdateNote sends the full field set; the returned
//     note is authoritative.
//
// All methods honor context cancellation and timeouts. Failures are
// *Error values classified per Kind.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error)
	Profile(ctx context.Context) (*models.Identity, error)
	ListNotes(ctx context.Context) ([]models.Note, error)
	CreateNote(ctx context.Context, draft models.NoteDraft) (*models.Note, error)
	UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

// CredentialSource yields the currently persisted bearer token, or the empty
// string when none is stored. The transport attaches the token whenever one
// is present; it never branches on endpoint identity.
type CredentialSource interface {
	Token() string
}
