package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"file-storage-api/internal/application/ports"
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/mq"
	dto "file-storage-api/internal/interface/api/rest/dto/file"
)

const defaultMimeType = "application/octet-stream"

type FileService struct {
	blobs          ports.BlobStore
	fileRepository domain.Repository
	events         ports.EventPublisher
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
}

func NewFileService(
	blobs ports.BlobStore,
	fileRepository domain.Repository,
	events ports.EventPublisher,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
) ports.FileService {
	return &FileService{
		blobs:          blobs,
		fileRepository: fileRepository,
		events:         events,
		mCounter:       mCounter,
		logger:         logger,
	}
}

// UploadFile stages the bytes, inserts the metadata row and publishes the
// blob inside the insert transaction. On failure no row survives and the
// blob is cleaned up.
func (fs *FileService) UploadFile(
	ctx context.Context,
	owner user.Identity,
	in *multipart.FileHeader,
) (*domain.File, error) {
	src, err := in.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	staged, err := fs.blobs.Stage(src)
	if err != nil {
		return nil, err
	}

	mimeType := in.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	key := genStorageKey(in.Filename, owner.ID)
	req := &domain.File{
		FileName:        in.Filename,
		MimeType:        mimeType,
		FilePath:        fs.blobs.Path(key),
		AddedByUserID:   owner.ID,
		AddedByUserName: owner.FullName(),
	}

	var published string
	out, err := fs.fileRepository.CreateFile(ctx, req, func() error {
		p, err := fs.blobs.Publish(staged, key)
		if err != nil {
			return err
		}
		published = p
		return nil
	})
	if err != nil {
		if published != "" {
			// the commit failed after the rename
			if rmErr := fs.blobs.Remove(published); rmErr != nil {
				fs.logger.Error("orphaned blob after failed commit", zap.String("path", published), zap.Error(rmErr))
			}
		} else if dErr := fs.blobs.Discard(staged); dErr != nil {
			fs.logger.Warn("discard staged upload", zap.Error(dErr))
		}
		return nil, err
	}

	fs.emit(mq.RoutingFileUploaded, out)
	fs.mCounter.WithLabelValues("file_uploaded_total").Inc()

	return out, nil
}

func (fs *FileService) ListFiles(ctx context.Context, ownerID user.ID) (domain.Files, error) {
	files, err := fs.fileRepository.FetchFiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (fs *FileService) DownloadFile(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.Download, error) {
	f, err := fs.ownedFile(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	content, size, err := fs.blobs.Open(f.FilePath)
	if err != nil {
		return nil, err
	}

	fs.mCounter.WithLabelValues("file_downloaded_total").Inc()

	return &domain.Download{File: f, Content: content, Size: size}, nil
}

// DeleteFile removes the blob first, then the row. A missing blob is tolerated.
func (fs *FileService) DeleteFile(ctx context.Context, ownerID user.ID, id domain.ID) error {
	f, err := fs.ownedFile(ctx, ownerID, id)
	if err != nil {
		return err
	}

	if err = fs.blobs.Remove(f.FilePath); err != nil {
		return err
	}

	deleted, err := fs.fileRepository.DeleteFile(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		// removed by a concurrent request
		return domain.ErrNotFound
	}

	fs.emit(mq.RoutingFileDeleted, deleted)
	fs.mCounter.WithLabelValues("file_deleted_total").Inc()

	return nil
}

func (fs *FileService) ownedFile(ctx context.Context, ownerID user.ID, id domain.ID) (*domain.File, error) {
	f, err := fs.fileRepository.FetchFileByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if !f.OwnedBy(ownerID) {
		return nil, domain.ErrForbidden
	}

	return f, nil
}

func (fs *FileService) emit(action string, f *domain.File) {
	fs.events.Publish(mq.Event{
		Id:      uuid.New(),
		TS:      time.Now(),
		Action:  action,
		UserID:  int64(f.AddedByUserID),
		Payload: dto.ToResponseFile(*f),
	})
}
