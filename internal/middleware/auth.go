package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/transferportal/internal/user"
	"github.com/DhavalSuthar-24/transferportal/pkg/token"
)

const (
	AuthUserKey = "auth_user"
)

// AuthMiddleware validates the bearer token and loads the user with its
// profile on every request. The load is deliberately not cached: role and
// approval flags may change between requests and every authorization decision
// must see current values.
func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	repo := user.NewUserRepository(db)
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		currentUser, err := repo.GetUserByID(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}
		if currentUser == nil || !currentUser.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found or inactive"})
			return
		}

		c.Set(AuthUserKey, currentUser)
		c.Next()
	}
}

// GetCurrentUser extracts the authenticated user from the context.
func GetCurrentUser(c *gin.Context) (*user.User, error) {
	val, exists := c.Get(AuthUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	u, ok := val.(*user.User)
	if !ok {
		return nil, fmt.Errorf("user in context has unexpected type: %T", val)
	}
	return u, nil
}
