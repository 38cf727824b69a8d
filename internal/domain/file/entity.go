package file

import (
	"io"
	"time"

	"file-storage-api/internal/domain/user"
)

type (
	ID   int64
	File struct {
		ID       ID
		FileName string
		MimeType string
		FilePath string

		AddedByUserID   user.ID
		AddedByUserName string

		CreatedAt time.Time
	}
	Files []*File

	// Download is an opened blob together with its metadata.
	// The caller must close Content.
	Download struct {
		File    *File
		Content io.ReadCloser
		Size    int64
	}
)

func (f *File) OwnedBy(id user.ID) bool { return f.AddedByUserID == id }
