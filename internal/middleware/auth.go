package middleware

import (
	"net/http"
	"strings"

	"campuseats-be/internal/user"

	"github.com/gin-gonic/gin"
)

const claimsKey = "jwtClaims"

// RequireAuth rejects requests without a valid bearer token and stores
// the parsed claims on the gin context for the handlers downstream.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization token required"})
			return
		}

		claims, err := user.ParseJWT(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired token"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireRole guards a route group to the given roles. It must run
// after RequireAuth.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "authorization token required"})
			return
		}

		for _, role := range roles {
			if claims.Role == string(role) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "insufficient permissions"})
	}
}

// ClaimsFrom returns the token claims stored by RequireAuth.
func ClaimsFrom(c *gin.Context) (*user.CustomClaims, bool) {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*user.CustomClaims)
	return claims, ok
}

// ManagerCanteenID extracts the canteen a manager token is bound to.
// Manager accounts are always created with one; a token without it is
// treated as forbidden rather than a server error.
func ManagerCanteenID(c *gin.Context) (string, bool) {
	claims, ok := ClaimsFrom(c)
	if !ok || claims.CanteenID == nil || *claims.CanteenID == "" {
		return "", false
	}
	return *claims.CanteenID, true
}
