package user

import (
	domain "file-storage-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var u = &domain.User{
		ID:           domain.ID(model.ID),
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		FName:        model.FName,
		LName:        model.LName,

		CreatedAt: model.CreatedAt,
	}

	return u
}
