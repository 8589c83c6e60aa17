package router

import "github.com/gin-gonic/gin"

// Module is one routable feature area (auth, characters, admin, ...). Each
// module attaches its own middleware chain when registering.
type Module interface {
	Register(rg *gin.RouterGroup)
}
