package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
)

func TestAuthService_GenerateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	h := string(hash)

	jwtService := jwt.New("test-secret")
	svc := NewAuthService(jwtService)

	tests := []struct {
		name     string
		u        *user.User
		password string
		wantErr  error
	}{
		{
			name:     "valid password",
			u:        &user.User{ID: 5, PasswordHash: &h, FName: "Ann", LName: "Lee"},
			password: "s3cret",
		},
		{
			name:     "wrong password",
			u:        &user.User{ID: 5, PasswordHash: &h},
			password: "nope",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "no password set",
			u:        &user.User{ID: 5},
			password: "s3cret",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			tok, err := svc.GenerateToken(tt.u, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, tok)
				return
			}
			require.NoError(t, err)

			claims, err := jwtService.ValidateToken(tok)
			require.NoError(t, err)
			assert.Equal(t, int64(5), claims.UserID)
			assert.Equal(t, "Ann", claims.FName)
			assert.Equal(t, "Lee", claims.LName)
		})
	}
}
