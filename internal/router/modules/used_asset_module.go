package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/container"
	handlers "github.com/charcreator/backend/internal/interface/http"
	"github.com/charcreator/backend/internal/interface/middleware"
)

// UsedAssetModule mounts used-asset CRUD and character attachments.
type UsedAssetModule struct {
	Handler  *handlers.UsedAssetHandler
	Resolver *application.SessionResolver
}

func NewUsedAssetModule(h *handlers.UsedAssetHandler, resolver *application.SessionResolver) *UsedAssetModule {
	return &UsedAssetModule{Handler: h, Resolver: resolver}
}

func (m *UsedAssetModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.POST("/used_assets", m.Handler.Create)
		auth.GET("/used_assets", m.Handler.List)
		auth.GET("/used_assets/:id", m.Handler.Get)
		auth.PUT("/used_assets/:id", m.Handler.UpdateProperties)
		auth.DELETE("/used_assets/:id", m.Handler.Delete)

		auth.POST("/character_assets", m.Handler.Attach)
		auth.DELETE("/character_assets/:id", m.Handler.Detach)
	}
}
