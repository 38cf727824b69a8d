package file

import (
	"time"
)

type (
	File struct {
		ID              int64     `json:"id"`
		FileName        string    `json:"filename"`
		MimeType        string    `json:"mimetype"`
		FilePath        string    `json:"filepath"`
		AddedByUserID   int64     `json:"added_by_user_id"`
		AddedByUserName string    `json:"added_by_user_name"`
		CreatedAt       time.Time `json:"created_at"`
	}
	Files []File
)
