package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/config"
	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/interface/middleware"
	"github.com/charcreator/backend/pkg/response"
	"github.com/charcreator/backend/pkg/validation"
)

type UsedAssetHandler struct {
	UsedAssets *application.UsedAssetService
	Cfg        *config.Config
}

func NewUsedAssetHandler(usedAssets *application.UsedAssetService, cfg *config.Config) *UsedAssetHandler {
	return &UsedAssetHandler{UsedAssets: usedAssets, Cfg: cfg}
}

type createUsedAssetRequest struct {
	AssetID    int64          `json:"asset_id" binding:"required,gt=0"`
	Properties map[string]any `json:"properties"`
}

// Create POST /api/used_assets
func (h *UsedAssetHandler) Create(c *gin.Context) {
	var req createUsedAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	data := middleware.SessionFrom(c)
	ua, err := h.UsedAssets.Create(c.Request.Context(), data.User.ID, req.AssetID, req.Properties)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusCreated, viewUsedAsset(ua))
}

// List GET /api/used_assets
func (h *UsedAssetHandler) List(c *gin.Context) {
	data := middleware.SessionFrom(c)
	assets, err := h.UsedAssets.List(c.Request.Context(), data.User.ID)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewUsedAssets(assets))
}

// Get GET /api/used_assets/:id
func (h *UsedAssetHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	ua, err := h.UsedAssets.Get(c.Request.Context(), data.User.ID, id)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewUsedAsset(ua))
}

type updatePropertiesRequest struct {
	Properties map[string]any `json:"properties" binding:"required"`
}

// UpdateProperties PUT /api/used_assets/:id
func (h *UsedAssetHandler) UpdateProperties(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req updatePropertiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	data := middleware.SessionFrom(c)
	ua, err := h.UsedAssets.UpdateProperties(c.Request.Context(), data.User.ID, id, req.Properties)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewUsedAsset(ua))
}

// Delete DELETE /api/used_assets/:id
func (h *UsedAssetHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	if err := h.UsedAssets.Delete(c.Request.Context(), data.User.ID, id); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	c.Status(http.StatusNoContent)
}

type attachRequest struct {
	SavedCharacterID int64 `json:"saved_character_id" binding:"required,gt=0"`
	UsedAssetID      int64 `json:"used_asset_id" binding:"required,gt=0"`
}

// Attach POST /api/character_assets
func (h *UsedAssetHandler) Attach(c *gin.Context) {
	var req attachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	data := middleware.SessionFrom(c)
	link, err := h.UsedAssets.Attach(c.Request.Context(), data.User.ID, req.SavedCharacterID, req.UsedAssetID)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusCreated, viewCharacterAsset(link))
}

// Detach DELETE /api/character_assets/:id
func (h *UsedAssetHandler) Detach(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	if err := h.UsedAssets.Detach(c.Request.Context(), data.User.ID, id); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	c.Status(http.StatusNoContent)
}

// ListByCharacter GET /api/characters/:id/assets
func (h *UsedAssetHandler) ListByCharacter(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	links, err := h.UsedAssets.ListByCharacter(c.Request.Context(), data.User.ID, id)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewCharacterAssets(links))
}
