package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/infrastructure/postgres"
	"github.com/charcreator/backend/pkg/response"
)

func writeErrorResult(t *testing.T, err error, production bool) (int, response.ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	writeError(c, err, production)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestWriteErrorMapping(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{postgres.ErrNotFound, http.StatusNotFound, "not found"},
		{postgres.ErrAlreadyExists, http.StatusConflict, "already exists"},
		{postgres.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
		{application.ErrUnauthorized, http.StatusUnauthorized, "you must be logged in"},
		{application.ErrForbidden, http.StatusForbidden, application.ErrForbidden.Error()},
		{application.ErrUserBlocked, http.StatusForbidden, application.ErrUserBlocked.Error()},
		{application.ErrCodeInvalid, http.StatusBadRequest, application.ErrCodeInvalid.Error()},
	}
	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			status, body := writeErrorResult(t, tc.err, true)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.message, body.Message)
			assert.Nil(t, body.Exception)
		})
	}
}

func TestWriteErrorWrappedSentinel(t *testing.T) {
	status, body := writeErrorResult(t, fmt.Errorf("get character: %w", postgres.ErrNotFound), true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not found", body.Message)
}

func TestWriteErrorUnknownIsException(t *testing.T) {
	status, body := writeErrorResult(t, assert.AnError, false)
	assert.Equal(t, http.StatusInternalServerError, status)
	require.NotNil(t, body.Exception)

	status, body = writeErrorResult(t, assert.AnError, true)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Nil(t, body.Exception)
}

func TestIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(raw string) (int64, bool, int) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Params = gin.Params{{Key: "id", Value: raw}}
		id, ok := idParam(c, "id")
		return id, ok, w.Code
	}

	id, ok, _ := run("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok, status := run("forty-two")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)

	_, ok, status = run("0")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, status)
}
