package middleware

import (
	"net/http"
	"strings"

	"github.com/Miraines/MoonyAndStarry/account-service/internal/domain/account/token"
	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key holding verified access-token claims.
const ClaimsKey = "authClaims"

// RequireAccessToken verifies the bearer access token and stores its
// claims in the request context. Ownership decisions happen later, in
// the service; here a missing or unverifiable token is always 401.
func RequireAccessToken(tokens token.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := tokens.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stashed by RequireAccessToken.
func ClaimsFrom(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return token.Claims{}, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}
