package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopfront/shopfront/internal/defs"
)

// CredentialStore persists the bearer credential across client restarts.
type CredentialStore interface {
	// Current returns the persisted credential, or empty when none exists.
	Current() string

	// Save persists the credential.
	Save(credential string) error

	// Clear deletes the persisted credential. Clearing an absent
	// credential is not an error.
	Clear() error
}

// FileCredentialStore keeps the credential in a single file under the
// config directory, mode 0600. Current re-reads the file on every call so
// that whoever persisted last wins, mirroring how the web client read the
// stored token on each outgoing request.
type FileCredentialStore struct {
	path string
}

// Compile-time interface check.
var _ CredentialStore = (*FileCredentialStore)(nil)

// NewFileCredentialStore creates a store rooted at the given config
// directory.
func NewFileCredentialStore(configDir string) *FileCredentialStore {
	return &FileCredentialStore{path: filepath.Join(configDir, defs.TokenFile)}
}

// Current returns the persisted credential. Read failures (including a
// missing file) return empty: an unreadable credential is an absent one.
func (s *FileCredentialStore) Current() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Save writes the credential with owner-only permissions.
func (s *FileCredentialStore) Save(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: create credential dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(credential+"\n"), 0o600); err != nil {
		return fmt.Errorf("session: write credential: %w", err)
	}
	return nil
}

// Clear removes the credential file.
func (s *FileCredentialStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear credential: %w", err)
	}
	return nil
}
