package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
)

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	j := jwt.New("test-secret")

	valid, err := j.GenerateJWT(3, "Ann", "Lee", time.Hour)
	require.NoError(t, err)
	expired, err := j.GenerateJWT(3, "Ann", "Lee", -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUser   user.Identity
	}{
		{name: "missing header", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "garbage token", header: "Bearer abc", wantStatus: http.StatusUnauthorized},
		{name: "expired", header: "Bearer " + expired, wantStatus: http.StatusUnauthorized},
		{
			name:       "valid",
			header:     "Bearer " + valid,
			wantStatus: http.StatusOK,
			wantUser:   user.Identity{ID: 3, FName: "Ann", LName: "Lee"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var got user.Identity
			r := gin.New()
			r.GET("/me", AuthMiddleware(j), func(c *gin.Context) {
				u, ok := Identity(c)
				require.True(t, ok)
				got = u
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantUser, got)
		})
	}
}

func TestIdentity_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := Identity(c)
	assert.False(t, ok)

	c.Set(CtxUserID, "not-an-id")
	_, ok = Identity(c)
	assert.False(t, ok)
}
