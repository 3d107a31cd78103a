package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rmorales/eventhub/internal/helpers"
	"github.com/rmorales/eventhub/internal/models"
)

// JWTAuthMiddleware validates the bearer token and loads the active
// user it belongs to into the request scope.
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing or invalid authorization header.")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		email, err := helpers.ParseAccessToken(tokenString, secret)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Could not validate credentials.")
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
			c.Abort()
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil || !user.IsActive {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User not found or inactive.")
			c.Abort()
			return
		}

		c.Set("current_user", &user)
		c.Next()
	}
}

// RequireRoles gates an endpoint to the given roles. Admins bypass
// every role check.
func RequireRoles(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetCurrentUser(c)
		if user == nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Not authenticated.")
			c.Abort()
			return
		}

		if user.Role == models.RoleAdmin {
			c.Next()
			return
		}
		for _, role := range allowedRoles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to perform this action.")
		c.Abort()
	}
}

func GetCurrentUser(c *gin.Context) *models.User {
	user, exists := c.Get("current_user")
	if !exists {
		return nil
	}
	return user.(*models.User)
}
