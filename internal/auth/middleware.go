package auth

import (
	"context"
	"net/http"
	"strings"

	"taskmanager-backend/internal/common"
	userdomain "taskmanager-backend/internal/user/domain"

	"github.com/gin-gonic/gin"
)

const (
	userKey  = "user"
	tokenKey = "token"
)

// Authenticator resolves a bearer token to the user holding it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*userdomain.User, error)
}

func AuthMiddleware(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		token := parts[1]
		user, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if status := common.StatusFor(err); status != http.StatusUnauthorized {
				c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please authenticate"})
			return
		}

		c.Set(userKey, user)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// CurrentUser returns the user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) *userdomain.User {
	user, _ := c.MustGet(userKey).(*userdomain.User)
	return user
}

// CurrentToken returns the bearer token the request was authenticated with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
