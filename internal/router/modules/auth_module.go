package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/container"
	handlers "github.com/charcreator/backend/internal/interface/http"
	"github.com/charcreator/backend/internal/interface/middleware"
)

// AuthModule mounts the account lifecycle routes.
// Public: signup, verify, login, reset init/confirm (all IP rate-limited).
// Protected: logout, logout_others, profile.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Resolver *application.SessionResolver
}

func NewAuthModule(h *handlers.AuthHandler, resolver *application.SessionResolver) *AuthModule {
	return &AuthModule{Handler: h, Resolver: resolver}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	signupLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), nil)
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetInitLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	resetConfirmLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/signup", signupLimiter, m.Handler.Signup)
	rg.POST("/auth/verify", verifyLimiter, m.Handler.Verify)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/reset/init", resetInitLimiter, m.Handler.ResetInit)
	rg.POST("/auth/reset/confirm", resetConfirmLimiter, m.Handler.ResetConfirm)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Resolver))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUser(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.POST("/auth/logout_others", m.Handler.LogoutOthers)
		auth.GET("/profile", m.Handler.Profile)
	}
}
