package file

import (
	"time"
)

type (
	File struct {
		ID       int64
		FileName string
		MimeType string
		FilePath string

		AddedByUserID   int64
		AddedByUserName string

		CreatedAt time.Time
	}
	Files []*File
)
