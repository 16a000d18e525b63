package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/10kkyvl/planetarium-api/internal/helpers"
	"github.com/10kkyvl/planetarium-api/internal/models"
)

// JWTAuthMiddleware validates a Bearer access token and stores the caller's
// user id and role in the request context.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(authHeader, "Bearer ")

		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			helpers.RespondWithError(c, http.StatusInternalServerError, "JWT_SECRET not configured.")
			c.Abort()
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid or expired token.")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token claims.")
			c.Abort()
			return
		}

		// Refresh tokens carry typ=refresh and are only good for the
		// token refresh endpoint, never for authenticating requests.
		if typ, _ := claims["typ"].(string); typ == "refresh" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Refresh token cannot be used for authentication.")
			c.Abort()
			return
		}

		idStr, _ := claims["user_id"].(string)
		userID, err := uuid.Parse(idStr)
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token subject.")
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", userID)
		c.Set("role", role)
		c.Next()
	}
}

// StaffOnlyMiddleware gates administrative catalog writes. It must run after
// JWTAuthMiddleware.
func StaffOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != models.RoleStaff {
			helpers.RespondWithError(c, http.StatusForbidden, "Staff access required.")
			c.Abort()
			return
		}
		c.Next()
	}
}
