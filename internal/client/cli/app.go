package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aleksivanovs/notekeep/internal/client/api"
	"github.com/aleksivanovs/notekeep/internal/client/config"
	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/client/notes"
	"github.com/aleksivanovs/notekeep/internal/client/session"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

// ViewMode controls how the note list is rendered. Display-only; it never
// affects which notes are shown.
type ViewMode string

const (
	ViewCompact ViewMode = "compact"
	ViewWide    ViewMode = "wide"
)

// SessionStore is the slice of the session store the CLI needs.
// *session.Store satisfies it; tests provide stubs.
type SessionStore interface {
	Initialize(ctx context.Context)
	Login(ctx context.Context, email, password string) session.Result
	Register(ctx context.Context, username, email, password string) session.Result
	Logout(ctx context.Context)
	Status() session.Status
	Identity() *models.Identity
	IsAuthenticated() bool
}

// NoteService is the slice of the note view-model the CLI needs.
// *notes.ViewModel satisfies it.
type NoteService interface {
	LoadAll(ctx context.Context) error
	Create(ctx context.Context, draft models.NoteDraft) (*models.Note, error)
	Update(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error)
	Delete(ctx context.Context, id string) error
	TogglePin(ctx context.Context, note models.Note) (*models.Note, error)
	Get(id string) (models.Note, bool)
	Notes() []models.Note
	Categories() []string
	Reset()
}

// App wires the session store, the note view-model, and the interactive
// filter state together behind the REPL.
type App struct {
	config  *config.Config
	log     logging.Logger
	session SessionStore
	notes   NoteService

	reader *bufio.Reader
	out    io.Writer

	searchTerm       string
	selectedCategory string
	viewMode         ViewMode
}

// NewApp builds the full client: token storage, REST transport with the
// forced-downgrade hook wired back into the session store, and the note
// view-model on top of the same transport.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	storage, err := session.NewFileTokenStorage()
	if err != nil {
		return nil, fmt.Errorf("initializing token storage: %w", err)
	}

	rest := api.NewRest(cfg.BaseURL, cfg.RequestTimeout, storage, log)
	store := session.NewStore(rest, storage, log)
	rest.OnUnauthorized(store.HandleUnauthorized)

	return &App{
		config:           cfg,
		log:              log,
		session:          store,
		notes:            notes.NewViewModel(rest, log),
		reader:           bufio.NewReader(os.Stdin),
		out:              os.Stdout,
		selectedCategory: notes.CategoryAll,
		viewMode:         ViewCompact,
	}, nil
}

// Run resolves the stored session to a definite status, then hands control
// to the REPL. No command is reachable while the session is still loading.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "NoteKeep CLI (type 'help' for commands)")
	fmt.Fprintln(a.out, "Checking stored session...")

	a.session.Initialize(ctx)

	if identity := a.session.Identity(); identity != nil {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", identity.Username)
		if err := a.Refresh(ctx); err != nil {
			fmt.Fprintln(a.out, "Could not fetch your notes; try 'refresh'.")
		}
	} else {
		fmt.Fprintln(a.out, "Please 'login' or 'register' to continue.")
	}

	runREPL(ctx, a, a.statusLine, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

// statusLine renders the prompt suffix: the username plus any active filters.
func (a *App) statusLine() string {
	s := ""
	if identity := a.session.Identity(); identity != nil {
		s = identity.Username
	}
	if a.searchTerm != "" {
		s += fmt.Sprintf(" search:%q", a.searchTerm)
	}
	if a.selectedCategory != "" && a.selectedCategory != notes.CategoryAll {
		s += " category:" + a.selectedCategory
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
