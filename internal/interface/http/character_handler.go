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

type CharacterHandler struct {
	Characters *application.CharacterService
	Cfg        *config.Config
}

func NewCharacterHandler(characters *application.CharacterService, cfg *config.Config) *CharacterHandler {
	return &CharacterHandler{Characters: characters, Cfg: cfg}
}

type characterRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// Create POST /api/characters
func (h *CharacterHandler) Create(c *gin.Context) {
	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	data := middleware.SessionFrom(c)
	char, err := h.Characters.Create(c.Request.Context(), data.User.ID, req.Name)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusCreated, viewCharacter(char))
}

// List GET /api/characters
func (h *CharacterHandler) List(c *gin.Context) {
	data := middleware.SessionFrom(c)
	chars, err := h.Characters.List(c.Request.Context(), data.User.ID)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewCharacters(chars))
}

// Get GET /api/characters/:id
func (h *CharacterHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	char, err := h.Characters.Get(c.Request.Context(), data.User.ID, id)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewCharacter(char))
}

// Rename PUT /api/characters/:id
func (h *CharacterHandler) Rename(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req characterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FieldError(c, http.StatusBadRequest, "invalid payload", validation.ToFields(err))
		return
	}
	data := middleware.SessionFrom(c)
	char, err := h.Characters.Rename(c.Request.Context(), data.User.ID, id, req.Name)
	if err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	response.Success(c, http.StatusOK, viewCharacter(char))
}

// Delete DELETE /api/characters/:id
func (h *CharacterHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	data := middleware.SessionFrom(c)
	if err := h.Characters.Delete(c.Request.Context(), data.User.ID, id); err != nil {
		writeError(c, err, h.Cfg.IsProduction())
		return
	}
	c.Status(http.StatusNoContent)
}
