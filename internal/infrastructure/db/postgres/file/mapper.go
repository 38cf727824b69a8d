package file

import (
	domain "file-storage-api/internal/domain/file"
	"file-storage-api/internal/domain/user"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		ID:       domain.ID(model.ID),
		FileName: model.FileName,
		MimeType: model.MimeType,
		FilePath: model.FilePath,

		AddedByUserID:   user.ID(model.AddedByUserID),
		AddedByUserName: model.AddedByUserName,

		CreatedAt: model.CreatedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
