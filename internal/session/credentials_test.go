package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/shopfront/shopfront/internal/defs"
)

func TestFileCredentialStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := NewFileCredentialStore(t.TempDir())

	if got := store.Current(); got != "" {
		t.Errorf("Current() on empty store = %q, want empty", got)
	}

	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if got := store.Current(); got != "abc123" {
		t.Errorf("Current() = %q, want abc123", got)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if got := store.Current(); got != "" {
		t.Errorf("Current() after Clear() = %q, want empty", got)
	}
}

func TestFileCredentialStoreClearIdempotent(t *testing.T) {
	t.Parallel()

	store := NewFileCredentialStore(t.TempDir())
	if err := store.Clear(); err != nil {
		t.Errorf("Clear() with nothing persisted = %v, want nil", err)
	}
}

func TestFileCredentialStorePermissions(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	dir := t.TempDir()
	store := NewFileCredentialStore(dir)
	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, defs.TokenFile))
	if err != nil {
		t.Fatalf("stat token file: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o, want 600", perm)
	}
}

func TestFileCredentialStoreCreatesDir(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "config")
	store := NewFileCredentialStore(dir)
	if err := store.Save("abc123"); err != nil {
		t.Fatalf("Save() into missing dir error = %v", err)
	}
	if got := store.Current(); got != "abc123" {
		t.Errorf("Current() = %q, want abc123", got)
	}
}

func TestFileCredentialStoreTrimsWhitespace(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, defs.TokenFile), []byte("  abc123\n\n"), 0o600); err != nil {
		t.Fatalf("write token file: %v", err)
	}
	store := NewFileCredentialStore(dir)
	if got := store.Current(); got != "abc123" {
		t.Errorf("Current() = %q, want trimmed abc123", got)
	}
}
