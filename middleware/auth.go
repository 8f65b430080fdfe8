package middleware

import (
	"net/http"
	"strings"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

const (
	CtxOperatorID = "operator_id"
	CtxRole       = "role"
)

// TokenParser is satisfied by *services.AuthService.
type TokenParser interface {
	ParseToken(raw string) (*services.Claims, error)
}

// AuthJWT requires "Authorization: Bearer <token>" and puts the operator id
// and role on the context.
func AuthJWT(auth TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
			utils.AbortError(c, http.StatusUnauthorized, "error.unauthorized", "missing or invalid Authorization header")
			return
		}

		claims, err := auth.ParseToken(strings.TrimSpace(header[7:]))
		if err != nil {
			utils.AbortError(c, http.StatusUnauthorized, "error.invalidToken", "invalid or expired token")
			return
		}

		c.Set(CtxOperatorID, claims.OperatorID())
		c.Set(CtxRole, claims.Role)
		c.Next()
	}
}

// RequireRoles lets the request through only for the listed roles.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			utils.AbortError(c, http.StatusUnauthorized, "error.unauthorized", "authentication required")
			return
		}
		if _, ok := allowed[role]; !ok {
			utils.AbortError(c, http.StatusForbidden, "error.forbidden", "your role cannot perform this action")
			return
		}
		c.Next()
	}
}

// OperatorID returns the authenticated operator, or 0.
func OperatorID(c *gin.Context) uint {
	v, ok := c.Get(CtxOperatorID)
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
