package router

import (
	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/container"
	handlers "github.com/charcreator/backend/internal/interface/http"
	"github.com/charcreator/backend/internal/router/modules"
)

// InitModules builds every feature's service and handler from the container
// singletons and registers the modules. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	resolver := container.GetSessionResolver()

	authSvc := application.NewAuthService(
		pool,
		container.GetHasher(),
		container.GetTokenMinter(),
		container.GetRabbitPub(),
		container.GetRedis(),
		logger,
		cfg,
	)
	characterSvc := application.NewCharacterService(pool)
	usedAssetSvc := application.NewUsedAssetService(pool)
	assetSvc := application.NewAssetService(
		pool,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESAssetsIndex,
		logger,
	)

	authHandler := handlers.NewAuthHandler(authSvc, container.GetCookies(), logger, cfg)
	characterHandler := handlers.NewCharacterHandler(characterSvc, cfg)
	usedAssetHandler := handlers.NewUsedAssetHandler(usedAssetSvc, cfg)
	adminHandler := handlers.NewAdminHandler(authSvc, assetSvc, logger, cfg)

	r.Add(modules.NewAuthModule(authHandler, resolver))
	r.Add(modules.NewCharacterModule(characterHandler, usedAssetHandler, resolver))
	r.Add(modules.NewUsedAssetModule(usedAssetHandler, resolver))
	r.Add(modules.NewAdminModule(adminHandler, resolver))
	r.Add(modules.NewDebugModule())
}
