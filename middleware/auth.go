package middleware

import (
	"Storefront/models"
	"Storefront/pkg/context"
	"Storefront/pkg/jwt"
	"Storefront/pkg/response"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Auth 校验 access token，把用户身份写入 gin.Context
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "invalid Authorization header")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(context.CtxUserID, claims.UserID)
		c.Set(context.CtxEmail, claims.Email)
		c.Set(context.CtxRole, claims.Role)
		c.Next()
	}
}

// RequireAdmin 需挂在 Auth 之后
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if context.GetRole(c) != models.RoleAdmin {
			response.Abort(c, http.StatusForbidden, "admin only")
			return
		}
		c.Next()
	}
}
