package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intermediaal/e-table-reservation/internal/pkg/response"
	"github.com/intermediaal/e-table-reservation/internal/pkg/token"
)

// Context keys set by SessionAuth.
const (
	CtxSessionID    = "session_id"
	CtxBusinessSlug = "business_slug"
)

// SessionAuth validates the bearer session token and checks it matches the
// :sid path parameter, so one session token cannot touch another session.
func SessionAuth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing session token")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty session token")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid or expired session token")
			c.Abort()
			return
		}

		if sid := c.Param("sid"); sid != "" && sid != claims.SessionID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Session token does not match session")
			c.Abort()
			return
		}

		c.Set(CtxSessionID, claims.SessionID)
		c.Set(CtxBusinessSlug, claims.BusinessSlug)

		c.Next()
	}
}
