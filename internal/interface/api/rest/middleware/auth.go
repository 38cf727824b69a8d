package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"file-storage-api/internal/domain/user"
	"file-storage-api/internal/infrastructure/jwt"
)

const (
	CtxUserID    = "userID"
	CtxUserFName = "userFName"
	CtxUserLName = "userLName"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"error": "invalid token"},
			)
			return
		}

		c.Set(CtxUserID, user.ID(claims.UserID))
		c.Set(CtxUserFName, claims.FName)
		c.Set(CtxUserLName, claims.LName)

		c.Next()
	}
}

// Identity returns the caller set by AuthMiddleware.
func Identity(c *gin.Context) (user.Identity, bool) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return user.Identity{}, false
	}
	id, ok := v.(user.ID)
	if !ok || id <= 0 {
		return user.Identity{}, false
	}

	return user.Identity{
		ID:    id,
		FName: c.GetString(CtxUserFName),
		LName: c.GetString(CtxUserLName),
	}, true
}
