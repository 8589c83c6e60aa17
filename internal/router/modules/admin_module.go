package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/container"
	handlers "github.com/charcreator/backend/internal/interface/http"
	"github.com/charcreator/backend/internal/interface/middleware"
)

// AdminModule mounts the user-management and asset-catalog surface behind
// auth, an admin_level check, and a local-network guard. Local requests skip
// rate limiting.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Resolver *application.SessionResolver
}

func NewAdminModule(h *handlers.AdminHandler, resolver *application.SessionResolver) *AdminModule {
	return &AdminModule{Handler: h, Resolver: resolver}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(m.Resolver))
	admin.Use(middleware.AdminOnly(1))
	admin.Use(middleware.RateLimit(container.GetRedis(), 600, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.POST("/users/:id/block", m.Handler.BlockUser)
		admin.POST("/users/:id/unblock", m.Handler.UnblockUser)
		admin.POST("/users/:id/reset_password", m.Handler.ResetUserPassword)

		admin.POST("/assets", m.Handler.CreateAsset)
		admin.GET("/assets", m.Handler.ListAssets)
		admin.GET("/assets/search", m.Handler.SearchAssets)
		admin.GET("/assets/:id", m.Handler.GetAsset)
		admin.PUT("/assets/:id", m.Handler.UpdateAsset)
		admin.DELETE("/assets/:id", m.Handler.DeleteAsset)
		admin.POST("/assets/:id/cover", m.Handler.UploadAssetCover)
	}
}
