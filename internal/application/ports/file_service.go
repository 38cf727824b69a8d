package ports

import (
	"context"
	"mime/multipart"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

type FileService interface {
	UploadFile(ctx context.Context, owner user.Identity, in *multipart.FileHeader) (*file.File, error)
	ListFiles(ctx context.Context, ownerID user.ID) (file.Files, error)
	DownloadFile(ctx context.Context, ownerID user.ID, id file.ID) (*file.Download, error)
	DeleteFile(ctx context.Context, ownerID user.ID, id file.ID) error
}
