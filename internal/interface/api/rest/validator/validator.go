package validator

import (
	"errors"
	"net/mail"
	"strconv"
	"strings"
	"unicode/utf8"

	"file-storage-api/internal/domain/file"
	"file-storage-api/internal/interface/api/rest/dto/auth"
)

const maxPasswordLen = 72 // bcrypt safe

var ErrInvalidFileID = errors.New("file_id must be a positive integer")

func ParseFileID(s string) (file.ID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidFileID
	}

	return file.ID(id), nil
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	email := strings.ToLower(strings.TrimSpace(r.Email))

	// email (required + format)
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}

	// password is not trimmed
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if utf8.RuneCountInString(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 characters"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
