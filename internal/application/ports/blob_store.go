package ports

import (
	"io"

	"file-storage-api/internal/infrastructure/blobstore"
)

type BlobStore interface {
	Path(key string) string
	Stage(r io.Reader) (*blobstore.Staged, error)
	Publish(st *blobstore.Staged, key string) (string, error)
	Discard(st *blobstore.Staged) error
	Open(path string) (io.ReadCloser, int64, error)
	Remove(path string) error
}
