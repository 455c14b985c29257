package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lieblius/docmirror/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.MirrorStore = (*Store)(nil)

// Store is the mirror directory tree rooted at a local path.
type Store struct {
	root string
}

// NewStore creates a store rooted at root. The directory is created
// lazily on first write.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// Root returns the mirror root directory.
func (s *Store) Root() string {
	return s.root
}

// Exists reports whether the mirror root directory exists.
func (s *Store) Exists() bool {
	info, err := os.Stat(s.root)
	return err == nil && info.IsDir()
}

// Age returns how old the file at the mirror-relative path is.
// Freshness is always recomputed from the filesystem timestamp; no
// metadata is cached across runs.
func (s *Store) Age(rel string) (time.Duration, bool) {
	abs, err := s.resolve(rel)
	if err != nil {
		return 0, false
	}

	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return 0, false
	}
	return time.Since(info.ModTime()), true
}

// Write stores content at the mirror-relative path, creating
// intermediate directories as needed. The write is atomic: a temp
// file in the target directory is renamed into place on success.
func (s *Store) Write(rel string, data []byte) error {
	abs, err := s.resolve(rel)
	if err != nil {
		return err
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".docmirror-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), abs); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// Clear removes the entire mirror tree.
func (s *Store) Clear() error {
	return os.RemoveAll(s.root)
}

// resolve joins a mirror-relative path onto the root, rejecting paths
// that would escape it.
func (s *Store) resolve(rel string) (string, error) {
	native := filepath.FromSlash(rel)
	if rel == "" || !filepath.IsLocal(native) {
		return "", fmt.Errorf("path escapes mirror root: %q", rel)
	}
	return filepath.Join(s.root, native), nil
}
