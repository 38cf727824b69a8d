// Package blobstore keeps uploaded bytes on the local filesystem.
//
// Uploads are written to a staging directory first and moved into place
// with an atomic rename once the metadata row exists, so a crash never
// leaves a half-written blob under the storage root.
package blobstore

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"file-storage-api/internal/domain/file"
)

const (
	stagingDir    = ".staging"
	stagingSuffix = ".part"
)

type (
	Store struct {
		root    string
		staging string
	}

	// Staged is a fully written upload waiting to be published.
	Staged struct {
		path string
		Size int64
	}
)

// New creates root and its staging directory if they do not exist.
func New(root string) (*Store, error) {
	staging := filepath.Join(root, stagingDir)
	if err := os.MkdirAll(staging, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", root, err)
	}

	return &Store{root: root, staging: staging}, nil
}

func (s *Store) Root() string { return s.root }

// Path maps a storage key to its location under root.
func (s *Store) Path(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Stage copies r into a new staging file and fsyncs it.
func (s *Store) Stage(r io.Reader) (*Staged, error) {
	tmp := filepath.Join(s.staging, uuid.NewString()+stagingSuffix)

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o640)
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("write staging file: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return nil, fmt.Errorf("fsync staging file: %w", err)
	}
	if err = f.Close(); err != nil {
		os.Remove(tmp)
		return nil, fmt.Errorf("close staging file: %w", err)
	}

	return &Staged{path: tmp, Size: size}, nil
}

// Publish moves a staged upload to key, replacing anything already there.
func (s *Store) Publish(st *Staged, key string) (string, error) {
	dst := s.Path(key)
	if !s.contains(dst) {
		return "", fmt.Errorf("storage key %q escapes storage root", key)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return "", fmt.Errorf("create blob dir: %w", err)
	}
	if err := os.Rename(st.path, dst); err != nil {
		return "", fmt.Errorf("publish blob: %w", err)
	}

	return dst, nil
}

// Discard drops a staged upload. Already published or removed uploads are ignored.
func (s *Store) Discard(st *Staged) error {
	if st == nil {
		return nil
	}
	if err := os.Remove(st.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("discard staging file: %w", err)
	}
	return nil
}

// Open returns the blob at path and its size. The caller must close it.
func (s *Store) Open(path string) (io.ReadCloser, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, file.ErrBlobNotFound
		}
		return nil, 0, fmt.Errorf("open blob %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat blob %s: %w", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, 0, file.ErrBlobNotFound
	}

	return f, info.Size(), nil
}

// Remove deletes the blob at path. A missing blob is not an error.
func (s *Store) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob %s: %w", path, err)
	}
	return nil
}

// SweepStaging removes staging files last modified before now-olderThan
// and reports how many were removed.
func (s *Store) SweepStaging(olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(s.staging)
	if err != nil {
		return 0, fmt.Errorf("read staging dir: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	var errs []error
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), stagingSuffix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed concurrently by Publish or Discard
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err = os.Remove(filepath.Join(s.staging, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}

	return removed, errors.Join(errs...)
}

func (s *Store) contains(path string) bool {
	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) &&
		!strings.HasPrefix(rel, stagingDir)
}
