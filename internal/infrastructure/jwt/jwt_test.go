package jwt

import (
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")

	tok, err := s.GenerateJWT(42, "Ann", "Lee", time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Ann", claims.FName)
	assert.Equal(t, "Lee", claims.LName)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestValidateToken_Table(t *testing.T) {
	type want struct {
		ok  bool
		err string
	}

	makeToken := func(secret string, userID int64, exp time.Duration) string {
		tok, err := New(secret).GenerateJWT(userID, "Bob", "Ray", exp)
		require.NoError(t, err)
		return tok
	}

	noneToken := func() string {
		tok, err := jwtv5.NewWithClaims(jwtv5.SigningMethodNone, Claims{UserID: 1}).
			SignedString(jwtv5.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		secret string
		token  string
		want   want
	}{
		{
			name:   "valid token",
			secret: "k1",
			token:  makeToken("k1", 7, 5*time.Minute),
			want:   want{ok: true},
		},
		{
			name:   "invalid secret (signature mismatch)",
			secret: "k2",
			token:  makeToken("k1", 7, 5*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "expired token",
			secret: "k1",
			token:  makeToken("k1", 7, -1*time.Minute),
			want:   want{err: "invalid token"},
		},
		{
			name:   "malformed token string",
			secret: "k1",
			token:  "not-a-jwt",
			want:   want{err: "invalid token"},
		},
		{
			name:   "alg none rejected",
			secret: "k1",
			token:  noneToken(),
			want:   want{err: "invalid token"},
		},
		{
			name:   "missing user id",
			secret: "k1",
			token:  makeToken("k1", 0, 5*time.Minute),
			want:   want{err: "invalid claims"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			claims, err := New(tt.secret).ValidateToken(tt.token)
			if tt.want.ok {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, int64(7), claims.UserID)
			} else {
				require.Error(t, err)
				assert.EqualError(t, err, tt.want.err)
				assert.Nil(t, claims)
			}
		})
	}
}
