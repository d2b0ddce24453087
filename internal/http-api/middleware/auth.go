package middleware

import (
	"net/http"
	"strings"

	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization
// header and stores the claims in the request context for handlers to use.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Set("userID", claims.UserID)
		c.Set("scopes", claims.Scopes)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireScopes middleware checks if the token has all required scopes
func RequireScopes(requiredScopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopesInterface, exists := c.Get("scopes")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "scopes not found in token"})
			c.Abort()
			return
		}

		tokenScopes, ok := scopesInterface.([]string)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "invalid scope format"})
			c.Abort()
			return
		}

		if !hasAllScopes(tokenScopes, requiredScopes) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":    "insufficient scopes",
				"required": requiredScopes,
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// hasAllScopes checks if the token has all required scopes
func hasAllScopes(tokenScopes, requiredScopes []string) bool {
	scopeMap := make(map[string]bool)
	for _, scope := range tokenScopes {
		scopeMap[scope] = true
	}

	// Wildcard admin scope
	if scopeMap["*"] || scopeMap["admin:*"] {
		return true
	}

	for _, required := range requiredScopes {
		if !scopeMap[required] {
			if !matchesWildcardScope(tokenScopes, required) {
				return false
			}
		}
	}

	return true
}

// matchesWildcardScope handles wildcard scope matching, e.g. "read:*"
func matchesWildcardScope(tokenScopes []string, required string) bool {
	for _, scope := range tokenScopes {
		if len(scope) > 0 && scope[len(scope)-1] == '*' {
			prefix := scope[:len(scope)-1]
			if strings.HasPrefix(required, prefix) {
				return true
			}
		}
	}
	return false
}
