package file

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/db/postgres"
)

type Repository struct {
	db postgres.DB
}

func NewRepository(db postgres.DB) domain.Repository {
	return &Repository{db: db}
}

func scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	if err := row.Scan(
		&f.ID,
		&f.FileName,
		&f.MimeType,
		&f.FilePath,

		&f.AddedByUserID,
		&f.AddedByUserName,

		&f.CreatedAt,
	); err != nil {
		return nil, err
	}

	return f, nil
}

func (r *Repository) FetchFiles(ctx context.Context, ownerID user.ID) (domain.Files, error) {
	rows, err := r.db.Query(ctx, SelectFilesByOwner, int64(ownerID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fs := Files{}
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id domain.ID) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, SelectFileByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *domain.File, publish func() error) (*domain.File, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	f, err := scanFile(tx.QueryRow(
		ctx,
		InsertFile,
		req.FileName, req.MimeType, req.FilePath, int64(req.AddedByUserID), req.AddedByUserName,
	))
	if err != nil {
		return nil, fmt.Errorf("insert file: %w", err)
	}

	if publish != nil {
		if err = publish(); err != nil {
			return nil, fmt.Errorf("publish blob: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id domain.ID) (*domain.File, error) {
	f, err := scanFile(r.db.QueryRow(ctx, DeleteFileByID, int64(id)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}
