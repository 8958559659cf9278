package notes

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aleksivanovs/notekeep/internal/client/api"
	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

// fakeClient implements api.Client for the note CRUD surface.
type fakeClient struct {
	listFn   func(ctx context.Context) ([]models.Note, error)
	createFn func(ctx context.Context, draft models.NoteDraft) (*models.Note, error)
	updateFn func(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error)
	deleteFn func(ctx context.Context, id string) error
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeClient) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	return nil, nil
}
func (f *fakeClient) Profile(ctx context.Context) (*models.Identity, error) { return nil, nil }
func (f *fakeClient) ListNotes(ctx context.Context) ([]models.Note, error) {
	return f.listFn(ctx)
}
func (f *fakeClient) CreateNote(ctx context.Context, draft models.NoteDraft) (*models.Note, error) {
	return f.createFn(ctx, draft)
}
func (f *fakeClient) UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
	return f.updateFn(ctx, id, draft)
}
func (f *fakeClient) DeleteNote(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestLoadAll_ReplacesAndPresorts(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{
				{Id: "old", Title: "Old", UpdatedAt: ts("2024-01-01T00:00:00Z")},
				{Id: "pinned", Title: "Pinned", IsPinned: true, UpdatedAt: ts("2023-01-01T00:00:00Z")},
				{Id: "new", Title: "New", UpdatedAt: ts("2024-06-01T00:00:00Z")},
			}, nil
		},
	}
	vm := NewViewModel(client, testLogger())

	require.NoError(t, vm.LoadAll(context.Background()))

	held := vm.Notes()
	require.Len(t, held, 3)
	assert.Equal(t, "pinned", held[0].Id)
	assert.Equal(t, "new", held[1].Id)
	assert.Equal(t, "old", held[2].Id)
}

func TestLoadAll_FailureKeepsStaleCollection(t *testing.T) {
	calls := 0
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			calls++
			if calls == 1 {
				return []models.Note{{Id: "n1", Title: "Kept"}}, nil
			}
			return nil, &api.Error{Kind: api.KindNetwork, Err: errors.New("refused")}
		},
	}
	vm := NewViewModel(client, testLogger())

	require.NoError(t, vm.LoadAll(context.Background()))
	err := vm.LoadAll(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnavailable))

	held := vm.Notes()
	require.Len(t, held, 1)
	assert.Equal(t, "n1", held[0].Id)
}

func TestCreate_PrependsServerReturnedNote(t *testing.T) {
	now := ts("2024-06-01T00:00:00Z")
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{Id: "n1", Title: "Existing", UpdatedAt: ts("2024-01-01T00:00:00Z")}}, nil
		},
		createFn: func(ctx context.Context, draft models.NoteDraft) (*models.Note, error) {
			return &models.Note{
				Id: "server-id", Title: draft.Title, Content: draft.Content,
				Category: draft.Category, CreatedAt: now, UpdatedAt: now,
			}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	created, err := vm.Create(context.Background(), models.NoteDraft{Title: "Fresh", Category: "General"})
	require.NoError(t, err)
	assert.Equal(t, "server-id", created.Id)

	held := vm.Notes()
	require.Len(t, held, 2)
	assert.Equal(t, "server-id", held[0].Id, "created note is prepended")
	assert.Equal(t, now, held[0].CreatedAt)
}

func TestUpdate_ReplacesHeldEntryWithServerResponse(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{
				{Id: "n1", Title: "One", UpdatedAt: ts("2024-01-01T00:00:00Z")},
				{Id: "n2", Title: "Two", UpdatedAt: ts("2024-02-01T00:00:00Z")},
			}, nil
		},
		updateFn: func(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
			return &models.Note{
				Id: id, Title: draft.Title, Content: draft.Content,
				Category: draft.Category, IsPinned: draft.IsPinned,
				UpdatedAt: ts("2024-07-01T00:00:00Z"),
			}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	updated, err := vm.Update(context.Background(), "n1", models.NoteDraft{Title: "Renamed"})
	require.NoError(t, err)
	assert.Equal(t, ts("2024-07-01T00:00:00Z"), updated.UpdatedAt)

	n1, ok := vm.Get("n1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", n1.Title)
	assert.Equal(t, ts("2024-07-01T00:00:00Z"), n1.UpdatedAt, "server timestamp applied, not a local guess")

	n2, ok := vm.Get("n2")
	require.True(t, ok)
	assert.Equal(t, "Two", n2.Title, "other notes untouched")
}

func TestDelete_RemovesHeldEntry(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{Id: "n1"}, {Id: "n2"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error { return nil },
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	require.NoError(t, vm.Delete(context.Background(), "n1"))

	held := vm.Notes()
	require.Len(t, held, 1)
	assert.Equal(t, "n2", held[0].Id)

	_, ok := vm.Get("n1")
	assert.False(t, ok)
}

func TestDelete_FailureKeepsEntry(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{Id: "n1"}}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			return &api.Error{Kind: api.KindServer, StatusCode: 500}
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	require.Error(t, vm.Delete(context.Background(), "n1"))
	assert.Len(t, vm.Notes(), 1)
}

func TestTogglePin_SendsFullObjectAndAppliesReadBack(t *testing.T) {
	var sentDraft models.NoteDraft
	serverTime := ts("2024-08-01T00:00:00Z")
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{
				Id: "n1", Title: "Pin me", Content: "body", Category: "Work",
				IsPinned: false, UpdatedAt: ts("2024-01-01T00:00:00Z"),
			}}, nil
		},
		updateFn: func(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
			sentDraft = draft
			return &models.Note{
				Id: id, Title: draft.Title, Content: draft.Content,
				Category: draft.Category, IsPinned: draft.IsPinned,
				UpdatedAt: serverTime,
			}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	note, _ := vm.Get("n1")
	updated, err := vm.TogglePin(context.Background(), note)
	require.NoError(t, err)

	// The full field set travels, with only the flag flipped.
	assert.Equal(t, models.NoteDraft{Title: "Pin me", Content: "body", Category: "Work", IsPinned: true}, sentDraft)

	assert.True(t, updated.IsPinned)
	held, _ := vm.Get("n1")
	assert.True(t, held.IsPinned)
	assert.Equal(t, serverTime, held.UpdatedAt, "read-back applies the server's updatedAt")
}

func TestCategories_DistinctFirstSeen(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{
				{Id: "1", Category: "Work", IsPinned: true, UpdatedAt: ts("2024-03-01T00:00:00Z")},
				{Id: "2", Category: "Personal", IsPinned: true, UpdatedAt: ts("2024-02-01T00:00:00Z")},
				{Id: "3", Category: "Work", UpdatedAt: ts("2024-01-01T00:00:00Z")},
			}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	assert.Equal(t, []string{"Work", "Personal"}, vm.Categories())
}

func TestReset_DropsCollection(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{Id: "n1"}}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))
	require.Len(t, vm.Notes(), 1)

	vm.Reset()
	assert.Empty(t, vm.Notes())
}

func TestNotes_ReturnsCopy(t *testing.T) {
	client := &fakeClient{
		listFn: func(ctx context.Context) ([]models.Note, error) {
			return []models.Note{{Id: "n1", Title: "Original"}}, nil
		},
	}
	vm := NewViewModel(client, testLogger())
	require.NoError(t, vm.LoadAll(context.Background()))

	out := vm.Notes()
	out[0].Title = "Mutated"

	held := vm.Notes()
	assert.Equal(t, "Original", held[0].Title)
}
