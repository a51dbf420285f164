package procfs

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// ReadError is a failure to read one attribute record of a process
type ReadError struct {
	Path string
	Err  error
}

func newReadError(path string, err error) *ReadError {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &ReadError{Path: path, Err: err}
}

func (e *ReadError) Error() string {
	return "Failed to read " + e.Path + ": " + e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// IsGone reports whether err means the process exited while it was being read.
func IsGone(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ESRCH)
}
