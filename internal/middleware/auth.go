package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/jg4611/mad2-by-amit/internal/dto"
	"github.com/jg4611/mad2-by-amit/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// BlacklistChecker reports whether a token's JTI has been revoked.
type BlacklistChecker interface {
	IsTokenBlacklisted(ctx *gin.Context, jti string) bool
}

type blacklistFunc func(c *gin.Context, jti string) bool

func (f blacklistFunc) IsTokenBlacklisted(c *gin.Context, jti string) bool { return f(c, jti) }

// BlacklistFunc adapts a function to a BlacklistChecker.
func BlacklistFunc(f func(c *gin.Context, jti string) bool) BlacklistChecker {
	return blacklistFunc(f)
}

// RequireRoles verifies the bearer token and checks its role claim against
// the route's allowed-role set. The gate fails closed: no credential, a
// revoked credential, or a role outside the set all reject the request.
func RequireRoles(jwtSecret string, blacklist BlacklistChecker, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			dto.JsonError(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			dto.JsonError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(parts[1], jwtSecret)
		if err != nil {
			dto.JsonError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		if blacklist != nil && blacklist.IsTokenBlacklisted(c, claims.JTI) {
			dto.JsonError(c, http.StatusUnauthorized, "Token has been revoked")
			c.Abort()
			return
		}

		if len(allowedRoles) > 0 && !slices.Contains(allowedRoles, claims.Role) {
			dto.JsonError(c, http.StatusForbidden, "Insufficient role")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Set("token", parts[1])

		c.Next()
	}
}
