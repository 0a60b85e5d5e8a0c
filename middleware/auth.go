package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// AuthMiddleware resolves the session cookie to a staff user. The
// session entry is evicted when its user no longer exists or has been
// deactivated.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(utils.SessionCookieName)
		if err != nil || token == "" {
			utils.LogDebug("No session cookie on %s", c.Request.URL.Path)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		userID, ok := utils.Sessions.Lookup(token)
		if !ok {
			utils.LogDebug("Unknown or expired session token")
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.First(&user, userID).Error; err != nil {
			utils.LogError("Session user %d not found: %v", userID, err)
			utils.Sessions.Delete(token)
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		if !user.Active {
			utils.LogError("Deactivated user %d attempted access", user.ID)
			utils.Sessions.Delete(token)
			utils.Unauthorized(c, "Account is deactivated")
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("sessionToken", token)
		c.Next()
	}
}

// AdminMiddleware requires that the authenticated user holds the admin
// role. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := c.Get("user")
		if !exists {
			utils.LogError("User not found in context")
			utils.Unauthorized(c, "Please login for access")
			c.Abort()
			return
		}

		userModel, ok := user.(models.User)
		if !ok {
			utils.LogError("Invalid user type in context")
			utils.InternalServerError(c, "Invalid user type", nil)
			c.Abort()
			return
		}

		if !userModel.IsAdmin() {
			utils.LogError("Non-admin user %d attempted admin access", userModel.ID)
			utils.Forbidden(c, "Admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}
