package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed key the credential token is stored under.
const tokenFileName = "token"

// TokenStorage persists the opaque credential token across process runs.
// Absence of a stored token means unauthenticated.
type TokenStorage interface {
	Save(token string) error
	// Load returns the stored token, or the empty string when none exists.
	Load() (string, error)
	Clear() error
}

// FileTokenStorage keeps the token in a single file under the user's
// configuration directory. This is the client's one piece of durable state.
type FileTokenStorage struct {
	path string
}

// NewFileTokenStorage places the token file under the OS user config dir,
// e.g. ~/.config/notekeep/token on Linux.
func NewFileTokenStorage() (*FileTokenStorage, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("resolving user config dir: %w", err)
	}
	return NewFileTokenStorageAt(filepath.Join(dir, "notekeep", tokenFileName)), nil
}

// NewFileTokenStorageAt uses an explicit file path. Used by tests.
func NewFileTokenStorageAt(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

func (s *FileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

func (s *FileTokenStorage) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStorage) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing token file: %w", err)
	}
	return nil
}

// Token satisfies api.CredentialSource: the transport attaches the stored
// token whenever one is present. Read errors degrade to "no token".
func (s *FileTokenStorage) Token() string {
	token, err := s.Load()
	if err != nil {
		return ""
	}
	return token
}
