package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/aleksivanovs/notekeep/internal/client/models"
	"github.com/aleksivanovs/notekeep/internal/logging"
)

const (
	retryBaseDelay = 200 * time.Millisecond
	maxRetries     = 2
)

// Rest is the Client implementation over the backend's JSON REST API.
type Rest struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	log     logging.Logger

	// onUnauthorized is invoked once per 401 response, after the failed
	// call has been classified but before it returns to its caller.
	onUnauthorized func()
}

// NewRest constructs a Rest client rooted at baseURL (e.g.
// "http://localhost:5000/api"). timeout bounds every request end to end.
func NewRest(baseURL string, timeout time.Duration, creds CredentialSource, log logging.Logger) *Rest {
	return &Rest{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		log:     log,
	}
}

// OnUnauthorized registers the forced-downgrade hook. The transport never
// mutates session state itself; it only signals through this callback.
func (r *Rest) OnUnauthorized(fn func()) {
	r.onUnauthorized = fn
}

// errorBody is the error payload shape the backend uses for 4xx responses.
type errorBody struct {
	Message string `json:"message"`
}

// do performs one JSON request/response cycle. Transport-level failures are
// retried with bounded exponential backoff; any HTTP response, success or
// not, ends the retry loop. On success the body is decoded into out (when
// out is non-nil).
func (r *Rest) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	// POST is not retried: a lost response would leave the server-side
	// effect in place and a retry would duplicate it.
	attempts := uint64(0)
	if method != http.MethodPost {
		attempts = maxRetries
	}

	var resp *http.Response
	backoff := retry.WithMaxRetries(attempts, retry.NewExponential(retryBaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := r.newRequest(ctx, method, path, payload)
		if err != nil {
			return err
		}
		resp, err = r.http.Do(req)
		if err != nil {
			r.log.Warn(ctx, "request failed, may retry", "method", method, "path", path, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return &Error{Kind: KindNetwork, Err: fmt.Errorf("%s %s: %w", method, path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response for %s %s: %w", method, path, err)
		}
		return nil
	}

	return r.statusError(ctx, resp)
}

func (r *Rest) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, r.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := r.creds.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// statusError maps a non-2xx response to the failure taxonomy. A 401 fires
// the downgrade hook; the rejected call still reports failure to its own
// caller so the UI can react locally too.
func (r *Rest) statusError(ctx context.Context, resp *http.Response) error {
	var eb errorBody
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	json.Unmarshal(data, &eb)

	apiErr := &Error{StatusCode: resp.StatusCode, Message: eb.Message}
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		apiErr.Kind = KindUnauthorized
		r.log.Warn(ctx, "credential rejected by backend", "status", resp.StatusCode)
		if r.onUnauthorized != nil {
			r.onUnauthorized()
		}
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServer
	default:
		apiErr.Kind = KindValidation
	}
	return apiErr
}

func (r *Rest) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp models.AuthResponse
	if err := r.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *Rest) Register(ctx context.Context, username, email, password string) (*models.AuthResponse, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var resp models.AuthResponse
	if err := r.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *Rest) Profile(ctx context.Context) (*models.Identity, error) {
	var id models.Identity
	if err := r.do(ctx, http.MethodGet, "/auth/profile", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (r *Rest) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := r.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *Rest) CreateNote(ctx context.Context, draft models.NoteDraft) (*models.Note, error) {
	var note models.Note
	if err := r.do(ctx, http.MethodPost, "/notes", draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Rest) UpdateNote(ctx context.Context, id string, draft models.NoteDraft) (*models.Note, error) {
	var note models.Note
	if err := r.do(ctx, http.MethodPut, "/notes/"+url.PathEscape(id), draft, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *Rest) DeleteNote(ctx context.Context, id string) error {
	return r.do(ctx, http.MethodDelete, "/notes/"+url.PathEscape(id), nil, nil)
}
