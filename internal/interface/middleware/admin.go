package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/pkg/response"
)

// AdminOnly gates a route group on admin_level and on the request coming
// from a loopback or private address. Must run after Auth.
func AdminOnly(minLevel int) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := SessionFrom(c)
		if data == nil || data.User.AdminLevel < minLevel {
			response.Error(c, http.StatusForbidden, "admin access required")
			c.Abort()
			return
		}
		if !requestIsLocal(c) {
			response.Error(c, http.StatusForbidden, "admin access is restricted to the local network")
			c.Abort()
			return
		}
		c.Next()
	}
}

func requestIsLocal(c *gin.Context) bool {
	parsed := net.ParseIP(ipFromCtx(c))
	if parsed == nil {
		return false
	}
	return parsed.IsLoopback() || parsed.IsPrivate()
}
