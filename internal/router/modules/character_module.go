package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/container"
	handlers "github.com/charcreator/backend/internal/interface/http"
	"github.com/charcreator/backend/internal/interface/middleware"
)

// CharacterModule mounts saved-character CRUD plus the per-character
// attachment listing. All routes require auth.
type CharacterModule struct {
	Characters *handlers.CharacterHandler
	UsedAssets *handlers.UsedAssetHandler
	Resolver   *application.SessionResolver
}

func NewCharacterModule(ch *handlers.CharacterHandler, ua *handlers.UsedAssetHandler, resolver *application.SessionResolver) *CharacterModule {
	return &CharacterModule{Characters: ch, UsedAssets: ua, Resolver: resolver}
}

func (m *CharacterModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.POST("/characters", m.Characters.Create)
		auth.GET("/characters", m.Characters.List)
		auth.GET("/characters/:id", m.Characters.Get)
		auth.PUT("/characters/:id", m.Characters.Rename)
		auth.DELETE("/characters/:id", m.Characters.Delete)
		auth.GET("/characters/:id/assets", m.UsedAssets.ListByCharacter)
	}
}
