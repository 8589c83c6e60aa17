package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/charcreator/backend/config"
	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/pkg/response"
	"github.com/charcreator/backend/pkg/validation"
)

// AdminHandler serves the user-management and asset-catalog admin surface.
// Routes are mounted behind Auth + AdminOnly.
type AdminHandler struct {
	Auth   *application.AuthService
	Assets *application.AssetService
	Logger *logrus.Logger
	Cfg    *config.Config
}

func NewAdminHandler(auth *application.AuthService, assets *application.AssetService, logger *logrus.Logger, cfg *config.Config) *AdminHandler {
	return &AdminHandler{Auth: auth, Assets: assets, Logger: logger, Cfg: cfg}
}

// ListUsers GET /api/admin/users?limit=&offset=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	users, err := h.Auth.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewUsers(users))
}

// BlockUser POST /api/admin/users/:id/block
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setBlocked(c, true)
}

// UnblockUser POST /api/admin/users/:id/unblock
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setBlocked(c, false)
}

func (h *AdminHandler) setBlocked(c *gin.Context, blocked bool) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	user, err := h.Auth.SetUserBlocked(c.Request.Context(), id, blocked)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	h.Logger.WithField("user_id", id).WithField("blocked", blocked).Info("admin changed block state")
	response.Success(c, http.StatusOK, viewUser(user))
}

// ResetUserPassword POST /api/admin/users/:id/reset_password
func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Auth.AdminResetPassword(c.Request.Context(), id); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"ok": true})
}

type assetRequest struct {
	FileName          string         `json:"file_name" binding:"required,max=255"`
	AssetType         string         `json:"asset_type" binding:"required"`
	Colorable         bool           `json:"colorable"`
	DefaultProperties map[string]any `json:"default_properties"`
}

// CreateAsset POST /api/admin/assets
func (h *AdminHandler) CreateAsset(c *gin.Context) {
	var req assetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	assetType := entity.AssetType(req.AssetType)
	if !assetType.Valid() {
		response.FieldError(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"asset_type": "unknown asset type"})
		return
	}
	asset, err := h.Assets.Create(c.Request.Context(), req.FileName, assetType, req.Colorable, req.DefaultProperties)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusCreated, viewAsset(asset))
}

// ListAssets GET /api/admin/assets?type=
func (h *AdminHandler) ListAssets(c *gin.Context) {
	assetType := entity.AssetType(c.Query("type"))
	if assetType != "" && !assetType.Valid() {
		response.FieldError(c, http.StatusBadRequest, "invalid query",
			map[string]string{"type": "unknown asset type"})
		return
	}
	assets, err := h.Assets.List(c.Request.Context(), assetType)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewAssets(assets))
}

// GetAsset GET /api/admin/assets/:id
func (h *AdminHandler) GetAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	asset, err := h.Assets.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewAsset(asset))
}

type updateAssetRequest struct {
	AssetType         string         `json:"asset_type" binding:"required"`
	Colorable         bool           `json:"colorable"`
	DefaultProperties map[string]any `json:"default_properties"`
}

// UpdateAsset PUT /api/admin/assets/:id
func (h *AdminHandler) UpdateAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updateAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	assetType := entity.AssetType(req.AssetType)
	if !assetType.Valid() {
		response.FieldError(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"asset_type": "unknown asset type"})
		return
	}
	asset, err := h.Assets.Update(c.Request.Context(), id, assetType, req.Colorable, req.DefaultProperties)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewAsset(asset))
}

// DeleteAsset DELETE /api/admin/assets/:id
func (h *AdminHandler) DeleteAsset(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.Assets.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAssetCover POST /api/admin/assets/:id/cover (multipart field "file")
func (h *AdminHandler) UploadAssetCover(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload",
			map[string]string{"file": "multipart file is required"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	defer func() { _ = f.Close() }()

	contentType := fh.Header.Get("Content-Type")
	asset, err := h.Assets.UploadCover(c.Request.Context(), id, fh.Filename, contentType, f)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewAsset(asset))
}

// SearchAssets GET /api/admin/assets/search?q=&size=
func (h *AdminHandler) SearchAssets(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.FieldError(c, http.StatusBadRequest, "invalid query",
			map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Assets.Search(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, hits)
}
