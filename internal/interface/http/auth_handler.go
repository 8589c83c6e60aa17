package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charcreator/backend/config"
	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/interface/middleware"
	"github.com/charcreator/backend/pkg/helpers"
	"github.com/charcreator/backend/pkg/response"
	"github.com/charcreator/backend/pkg/validation"
)

type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
	Cfg     *config.Config
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger, Cfg: cfg}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	user, err := h.Auth.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	h.Logger.WithField("user_id", user.ID).Info("user signed up")
	response.Success(c, http.StatusCreated, viewUser(user))
}

type verifyRequest struct {
	Code string `json:"code" binding:"required"`
}

// Verify POST /api/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	user, err := h.Auth.VerifyEmail(c.Request.Context(), req.Code)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewUser(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	result, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	h.Cookies.SetSession(c, result.Token, result.Session.ExpiresAt)
	h.Logger.WithField("user_id", result.User.ID).Info("user logged in")
	response.Success(c, http.StatusOK, gin.H{
		"user":  viewUser(result.User),
		"token": result.Token,
	})
}

// Logout POST /api/auth/logout (auth required)
func (h *AuthHandler) Logout(c *gin.Context) {
	data := middleware.SessionFrom(c)
	if err := h.Auth.Logout(c.Request.Context(), data.Session); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	h.Cookies.ClearSession(c)
	c.Status(http.StatusNoContent)
}

// LogoutOthers POST /api/auth/logout_others (auth required)
func (h *AuthHandler) LogoutOthers(c *gin.Context) {
	data := middleware.SessionFrom(c)
	if err := h.Auth.LogoutOthers(c.Request.Context(), data.Session); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	c.Status(http.StatusNoContent)
}

type resetInitRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetInit POST /api/auth/reset/init
// Always answers 200 so the endpoint cannot be used to probe for accounts.
func (h *AuthHandler) ResetInit(c *gin.Context) {
	var req resetInitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	if err := h.Auth.ResetInit(c.Request.Context(), req.Email); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

type resetConfirmRequest struct {
	Code     string `json:"code" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

// ResetConfirm POST /api/auth/reset/confirm
func (h *AuthHandler) ResetConfirm(c *gin.Context) {
	var req resetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	if err := h.Auth.ResetConfirm(c.Request.Context(), req.Code, req.Password); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

// Profile GET /api/profile (auth required)
func (h *AuthHandler) Profile(c *gin.Context) {
	data := middleware.SessionFrom(c)
	response.Success(c, http.StatusOK, viewUser(data.User))
}
