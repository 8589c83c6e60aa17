package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
	"github.com/charcreator/backend/pkg/response"
)

// writeError maps outcome errors to status codes and writes the error
// envelope. Anything unmapped is a 500, with detail redacted in production.
func writeError(c *gin.Context, err error, production bool) {
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		response.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, postgres.ErrAlreadyExists):
		response.Error(c, http.StatusConflict, "already exists")
	case errors.Is(err, postgres.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, application.ErrUnauthorized):
		response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Error())
	case errors.Is(err, application.ErrForbidden):
		response.Error(c, http.StatusForbidden, application.ErrForbidden.Error())
	case errors.Is(err, application.ErrUserBlocked):
		response.Error(c, http.StatusForbidden, application.ErrUserBlocked.Error())
	case errors.Is(err, application.ErrCodeInvalid):
		response.Error(c, http.StatusBadRequest, application.ErrCodeInvalid.Error())
	default:
		response.Exception(c, err, production)
	}
}

// idParam parses a numeric path parameter, writing a 400 itself on failure.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.FieldError(c, http.StatusBadRequest, "invalid path parameter",
			map[string]string{name: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
