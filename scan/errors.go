package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Kind classifies a scan failure.
type Kind string

const (
	// KindPathNotFound means the root directory does not exist or is not a directory.
	KindPathNotFound Kind = "PATH_NOT_FOUND"
	// KindAccessDenied means a directory or file listing could not be read.
	KindAccessDenied Kind = "ACCESS_DENIED"
	// KindPathTooLong means the platform's path-length limit was exceeded.
	KindPathTooLong Kind = "PATH_TOO_LONG"
)

// PathError is returned when a scan aborts. Path is the offending path.
type PathError struct {
	Kind Kind
	Path string
	Err  error
}

// Sentinels for errors.Is; they match any PathError of the same Kind.
var (
	ErrPathNotFound = &PathError{Kind: KindPathNotFound}
	ErrAccessDenied = &PathError{Kind: KindAccessDenied}
	ErrPathTooLong  = &PathError{Kind: KindPathTooLong}
)

// Error implements the error interface.
func (e *PathError) Error() string {
	var msg string
	switch e.Kind {
	case KindPathNotFound:
		msg = "path not found"
	case KindAccessDenied:
		msg = "access denied"
	case KindPathTooLong:
		msg = "path too long"
	default:
		msg = "scan failed"
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s (%v)", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *PathError) Unwrap() error {
	return e.Err
}

// Is matches by Kind so errors.Is(err, ErrAccessDenied) works for any path.
func (e *PathError) Is(target error) bool {
	if t, ok := target.(*PathError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// classify converts a filesystem error into a PathError when it belongs to a known kind.
// Other errors are wrapped with the path and returned as-is.
func classify(path string, err error) error {
	var kind Kind
	switch {
	case errors.Is(err, syscall.ENAMETOOLONG):
		kind = KindPathTooLong
	case errors.Is(err, fs.ErrNotExist):
		kind = KindPathNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = KindAccessDenied
	default:
		return fmt.Errorf("scanning %s: %w", path, err)
	}
	return &PathError{Kind: kind, Path: path, Err: err}
}
