package driven

import (
	"context"
	"time"
)

// MirrorStore is the local mirror directory tree.
//
// Concurrent writers are expected; callers guarantee disjoint paths
// via the path-collision check before dispatch.
type MirrorStore interface {
	// Root returns the absolute mirror root directory.
	Root() string

	// Exists reports whether the mirror root directory exists.
	Exists() bool

	// Age returns how old the file at the mirror-relative path is.
	// ok is false when the file does not exist.
	Age(rel string) (age time.Duration, ok bool)

	// Write stores content at the mirror-relative path, creating
	// intermediate directories as needed.
	Write(rel string, data []byte) error

	// Clear removes the entire mirror tree. Only called after a
	// successful archive.
	Clear() error
}

// Archiver snapshots the mirror tree before a destructive rebuild.
type Archiver interface {
	// Archive writes a timestamp-named archive of the mirror tree
	// and returns its path.
	Archive(ctx context.Context) (string, error)
}
