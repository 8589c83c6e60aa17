package middleware

import (
	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses rate limiting for loopback and private addresses,
// so admin tooling on the local network is never throttled.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return requestIsLocal(c)
	}
}
