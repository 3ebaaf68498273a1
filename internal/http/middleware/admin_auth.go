package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/debate-analyzer-backend/internal/http/response"
)

// AdminAuth guards the admin route group with HTTP basic auth. Credentials
// come from the environment at startup; an empty configuration fails every
// request rather than silently allowing access.
type AdminAuth struct {
	username string
	password string
}

func NewAdminAuth(username, password string) *AdminAuth {
	return &AdminAuth{username: username, password: password}
}

func (a *AdminAuth) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.username == "" || a.password == "" {
			response.RespondError(c, http.StatusInternalServerError, "admin_auth_unconfigured",
				errors.New("admin credentials are not configured"))
			c.Abort()
			return
		}
		user, pass, ok := c.Request.BasicAuth()
		if !ok || !constantTimeEqual(user, a.username) || !constantTimeEqual(pass, a.password) {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			response.RespondError(c, http.StatusUnauthorized, "unauthorized",
				errors.New("invalid admin credentials"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
