package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/transferportal/internal/user"
)

// RequireAdmin allows only users whose effective role is admin.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := GetCurrentUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}
		if !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}

// RequirePlayer allows only player-role users.
func RequirePlayer() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := GetCurrentUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}
		if u.EffectiveRole() != user.RolePlayer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Player access required"})
			return
		}
		c.Next()
	}
}

// RequireApprovedCoachOrAdmin gates discovery and contact-creation surfaces.
// An unapproved coach is rejected here even though they can authenticate.
func RequireApprovedCoachOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := GetCurrentUser(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}
		if !u.IsAdmin() && !u.IsApprovedCoach() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Approved coach or admin access required"})
			return
		}
		c.Next()
	}
}
