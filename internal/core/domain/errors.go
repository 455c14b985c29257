package domain

import "errors"

// Domain errors represent mirror-run failures.
// These are distinct from infrastructure errors.
var (
	// ErrIndexUnavailable indicates the document index could not be
	// fetched. Fatal: without the index there is no target list.
	ErrIndexUnavailable = errors.New("document index unavailable")

	// ErrBackupFailed indicates the pre-rebuild archive could not be
	// created. Fatal: the mirror is never cleared without a backup.
	ErrBackupFailed = errors.New("backup failed")

	// ErrMirrorMissing indicates an update run was requested but no
	// mirror directory exists yet.
	ErrMirrorMissing = errors.New("mirror directory does not exist")

	// ErrPathCollision indicates two index entries mapped to the same
	// local path. The later entry fails rather than silently
	// overwriting the earlier one.
	ErrPathCollision = errors.New("local path collision")

	// ErrInvalidMode indicates an unrecognised run mode.
	ErrInvalidMode = errors.New("invalid run mode")

	// ErrRunInProgress indicates a mirror run is already running.
	ErrRunInProgress = errors.New("run in progress")
)
