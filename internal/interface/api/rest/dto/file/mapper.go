package file

import (
	"file-storage-api/internal/domain/file"
)

func ToResponseFile(fDomain file.File) File {
	var f = File{
		ID:              int64(fDomain.ID),
		FileName:        fDomain.FileName,
		MimeType:        fDomain.MimeType,
		FilePath:        fDomain.FilePath,
		AddedByUserID:   int64(fDomain.AddedByUserID),
		AddedByUserName: fDomain.AddedByUserName,
		CreatedAt:       fDomain.CreatedAt,
	}

	return f
}

// ToResponseFiles never returns nil so an empty list encodes as [].
func ToResponseFiles(fsDomain file.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}
