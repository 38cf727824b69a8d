package file

import (
	"context"

	"file-storage-api/internal/domain/user"
)

type Repository interface {
	FetchFiles(ctx context.Context, ownerID user.ID) (Files, error)
	FetchFileByID(ctx context.Context, id ID) (*File, error)
	// CreateFile inserts req in a transaction and calls publish before commit.
	// A publish error rolls the insert back.
	CreateFile(ctx context.Context, req *File, publish func() error) (*File, error)
	DeleteFile(ctx context.Context, id ID) (*File, error)
}
