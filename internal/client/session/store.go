// Package session holds the single source of truth for "who is logged in":
// the session status, the authenticated identity, and the credential token's
// storage lifecycle.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aleksivanovs/notekeep/internal/client/api"
	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

// Status is the session's lifecycle state.
type Status int

const (
	// StatusLoading is the initial state, before the stored token (if any)
	// has been validated. Callers must treat it as "not decided yet",
	// never as either outcome.
	StatusLoading Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Result reports the outcome of a login or register attempt. Failures carry
// a human-readable message; they are never raised as errors past the store
// boundary.
type Result struct {
	Success bool
	Message string
}

// Fallback messages used when the backend supplies no message of its own.
const (
	loginFailedMessage    = "Login failed. Please check your credentials."
	registerFailedMessage = "Registration failed"
)

// Store owns the session state machine:
//
//	loading → {authenticated, unauthenticated}   via Initialize
//	unauthenticated → authenticated              via Login / Register
//	authenticated → unauthenticated              via Logout or a backend 401
//
// The 401 transition is cross-cutting: the transport signals it through
// HandleUnauthorized for any rejected request anywhere in the app.
type Store struct {
	client api.Client
	tokens TokenStorage
	log    logging.Logger

	initOnce sync.Once

	mu       sync.RWMutex
	status   Status
	identity *models.Identity
}

func NewStore(client api.Client, tokens TokenStorage, log logging.Logger) *Store {
	return &Store{
		client: client,
		tokens: tokens,
		log:    log,
		status: StatusLoading,
	}
}

// Status returns the current session status.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Identity returns the authenticated user, or nil. Non-nil iff the status
// is StatusAuthenticated.
func (s *Store) Identity() *models.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

func (s *Store) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// Initialize resolves any persisted token into a definite status: it always
// terminates with StatusAuthenticated or StatusUnauthenticated, even when
// the backend is unreachable. Runs its body exactly once per process;
// repeated calls are no-ops.
func (s *Store) Initialize(ctx context.Context) {
	s.initOnce.Do(func() { s.resolveStoredToken(ctx) })
}

func (s *Store) resolveStoredToken(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		s.log.Warn(ctx, "could not read stored token", "error", err)
	}
	if token == "" {
		s.setUnauthenticated()
		return
	}

	// A token that is already past its expiry cannot pass the profile
	// check; skip the doomed round-trip.
	if tokenExpired(token) {
		s.log.Info(ctx, "stored token expired, discarding")
		s.clearToken(ctx)
		s.setUnauthenticated()
		return
	}

	identity, err := s.client.Profile(ctx)
	if err != nil {
		// Any failure, auth rejection or transport, discards the token
		// so the next start does not retry it indefinitely.
		s.log.Warn(ctx, "stored token rejected", "error", err)
		s.clearToken(ctx)
		s.setUnauthenticated()
		return
	}

	s.setAuthenticated(identity)
	s.log.Info(ctx, "session restored", "user", identity.Username)
}

// Login exchanges credentials for a token. On success the token is persisted
// and the session becomes authenticated. On failure the prior state is left
// untouched and the backend's message (or a generic fallback) is reported.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	resp, err := s.client.Login(ctx, email, password)
	if err != nil {
		return failure(err, loginFailedMessage)
	}
	return s.establish(ctx, resp)
}

// Register creates an account; same contract as Login.
func (s *Store) Register(ctx context.Context, username, email, password string) Result {
	resp, err := s.client.Register(ctx, username, email, password)
	if err != nil {
		return failure(err, registerFailedMessage)
	}
	return s.establish(ctx, resp)
}

func (s *Store) establish(ctx context.Context, resp *models.AuthResponse) Result {
	if err := s.tokens.Save(resp.Token); err != nil {
		// The session is still valid in-memory; it just will not
		// survive a restart.
		s.log.Warn(ctx, "could not persist token", "error", err)
	}
	identity := resp.Identity
	s.setAuthenticated(&identity)
	s.log.Info(ctx, "session established", "user", identity.Username)
	return Result{Success: true}
}

// Logout clears the persisted token and downgrades the session. The caller
// is expected to perform the full reset (drop any cached notes and return
// to the public entry view).
func (s *Store) Logout(ctx context.Context) {
	s.clearToken(ctx)
	s.setUnauthenticated()
	s.log.Info(ctx, "logged out")
}

// HandleUnauthorized is the forced-downgrade hook wired into the transport:
// any backend 401 clears the persisted token and moves the session to
// unauthenticated. Safe to call repeatedly.
func (s *Store) HandleUnauthorized() {
	ctx := context.Background()
	s.clearToken(ctx)

	s.mu.Lock()
	wasAuthenticated := s.status == StatusAuthenticated
	s.status = StatusUnauthenticated
	s.identity = nil
	s.mu.Unlock()

	if wasAuthenticated {
		s.log.Warn(ctx, "session expired, credential rejected by backend")
	}
}

func (s *Store) clearToken(ctx context.Context) {
	if err := s.tokens.Clear(); err != nil {
		s.log.Warn(ctx, "could not clear stored token", "error", err)
	}
}

func (s *Store) setAuthenticated(identity *models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusAuthenticated
	s.identity = identity
}

func (s *Store) setUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusUnauthenticated
	s.identity = nil
}

// failure converts a backend error into a Result, preferring the backend's
// own message when it is safe to show.
func failure(err error, fallback string) Result {
	if msg := api.UserMessage(err); msg != "" {
		return Result{Message: msg}
	}
	return Result{Message: fallback}
}

// tokenExpired reports whether token is a JWT whose expiry is in the past.
// Tokens that do not parse as JWTs are treated as live; the backend has the
// final word on those.
func tokenExpired(token string) bool {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
