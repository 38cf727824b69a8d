package file

import "errors"

var (
	ErrNotFound     = errors.New("file not found")
	ErrForbidden    = errors.New("forbidden")
	ErrBlobNotFound = errors.New("file not found on disk")
)
