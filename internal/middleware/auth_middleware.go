package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sortelabs/bolao-backend/internal/config"
	"github.com/sortelabs/bolao-backend/internal/models"
	"github.com/sortelabs/bolao-backend/internal/utils"
)

const claimsKey = "claims"

// JWTAuthMiddleware validates the bearer token and stores the verified
// claims in the request context for downstream handlers.
func JWTAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1], cfg)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the verified token carries one of the
// given roles. Must run after JWTAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		c.Abort()
	}
}

// RequireAdministrative aborts with 403 unless the token carries an admin or
// superadmin role.
func RequireAdministrative() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}
		if !claims.Role.IsAdministrative() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified token claims set by
// JWTAuthMiddleware, or nil outside an authenticated route.
func ClaimsFromContext(c *gin.Context) *models.TokenClaims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*models.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}
