package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"essaycoach-be/config"
	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/utils"
)

// AuthMiddleware accepts a Bearer access token and stores the user id and
// email in the gin context under "userID" and "email".
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Missing or malformed Authorization header")
			return
		}

		claims, err := utils.ValidateToken(strings.TrimSpace(token), cfg.JWTSecret)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}
		if claims.TokenType != utils.TokenTypeAccess {
			abortUnauthorized(c, "Token is not an access token")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{UserID: logger.Ptr(claims.UserID)})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
