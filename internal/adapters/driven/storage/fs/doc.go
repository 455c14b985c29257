// Package fs implements the mirror store and archiver ports on the
// local filesystem.
//
// The store writes documents under a root directory mirroring the
// remote path hierarchy. Writes are atomic: content goes to a
// same-directory temp file renamed into place, so an interrupted run
// never leaves a truncated document behind. The archiver produces the
// timestamped tar.gz backups taken before a rebuild.
package fs
