package storage

import (
	"github.com/signalbackup/backupdir/internal/errors"
)

var (
	// ErrStorageUnavailable means that no writable storage root was found.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrDirectoryCreationFailed means that the storage root is writable but
	// the backup directory below it could not be created.
	ErrDirectoryCreationFailed = errors.New("unable to create backup directory")
	// ErrHandleUnresolvable means that a directory handle does not resolve to
	// a path, for example because access was revoked.
	ErrHandleUnresolvable = errors.New("directory handle cannot be resolved")
)

// Error records a failed resolution. It matches both its Kind and the
// underlying error with errors.Is.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	s := e.Op
	if e.Path != "" {
		s += " " + e.Path
	}
	s += ": " + e.Kind.Error()
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
