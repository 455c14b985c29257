package fs

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/lieblius/docmirror/internal/core/ports/driven"
)

// Ensure Archiver implements the interface.
var _ driven.Archiver = (*Archiver)(nil)

// backupPrefix and backupTimeFormat name archives so operators can
// identify a snapshot by creation time.
const (
	backupPrefix     = "docs_backup_"
	backupTimeFormat = "20060102_150405"
)

// Archiver writes tar.gz snapshots of the mirror tree.
type Archiver struct {
	root string
	dir  string

	// now is replaced in tests for deterministic archive names.
	now func() time.Time
}

// NewArchiver creates an archiver for the mirror rooted at root,
// placing archives in dir.
func NewArchiver(root, dir string) *Archiver {
	return &Archiver{root: root, dir: dir, now: time.Now}
}

// Archive writes a timestamp-named tar.gz of the entire mirror tree
// and returns its path. The archive is never read back by docmirror;
// it exists for operator-initiated recovery after a rebuild.
func (a *Archiver) Archive(ctx context.Context) (string, error) {
	if _, err := os.Stat(a.root); err != nil {
		return "", fmt.Errorf("stat mirror root: %w", err)
	}
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := backupPrefix + a.now().Format(backupTimeFormat) + ".tar.gz"
	dest := filepath.Join(a.dir, name)

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create archive: %w", err)
	}

	if err := a.write(ctx, out); err != nil {
		out.Close()
		os.Remove(dest)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("close archive: %w", err)
	}
	return dest, nil
}

func (a *Archiver) write(ctx context.Context, out io.Writer) error {
	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	base := filepath.Base(a.root)
	err := filepath.WalkDir(a.root, func(p string, d iofs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(a.root, p)
		if err != nil {
			return err
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		// Entries live under the mirror directory's own name, so the
		// archive unpacks next to (not over) an existing tree.
		if rel == "." {
			hdr.Name = base + "/"
		} else {
			hdr.Name = path.Join(base, filepath.ToSlash(rel))
			if d.IsDir() {
				hdr.Name += "/"
			}
		}

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("close tar writer: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close gzip writer: %w", err)
	}
	return nil
}
