package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"hiregate/internal/auth"
)

const identityKey = "identity"

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// AuthMiddleware 校验访问令牌并将登录身份注入上下文。
func AuthMiddleware(authService *auth.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c)
			return
		}

		rawToken := parts[1]
		if strings.TrimSpace(rawToken) == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := authService.ValidateToken(rawToken)
		if err != nil || claims.TokenType != "access" {
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, claims.Identity)
		c.Next()
	}
}

// RequireRole 限制接口只允许指定角色访问，须置于 AuthMiddleware 之后。
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		identity, ok := IdentityFromContext(c)
		if !ok {
			abortUnauthorized(c)
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// IdentityFromContext 返回上下文中的登录身份。
func IdentityFromContext(c *gin.Context) (auth.Identity, bool) {
	if value, ok := c.Get(identityKey); ok {
		if identity, ok := value.(auth.Identity); ok {
			return identity, true
		}
	}
	return auth.Identity{}, false
}
