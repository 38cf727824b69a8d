package user

import (
	"strings"
	"time"
)

type (
	ID   int64
	User struct {
		ID           ID
		Email        string
		PasswordHash *string
		FName        string
		LName        string

		CreatedAt time.Time
	}

	// Identity is the authenticated caller resolved from an access token.
	Identity struct {
		ID    ID
		FName string
		LName string
	}
)

func (i Identity) FullName() string { return strings.TrimSpace(i.FName + " " + i.LName) }
