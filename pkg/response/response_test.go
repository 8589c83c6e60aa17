package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, fn func(c *gin.Context)) (*httptest.ResponseRecorder, ErrorBody) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	fn(c)

	var body ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestErrorEnvelope(t *testing.T) {
	w, body := run(t, func(c *gin.Context) {
		Error(c, http.StatusNotFound, "not found")
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, body.Code)
	assert.Equal(t, "not found", body.Message)
	assert.Nil(t, body.Fields)
}

func TestFieldErrorCarriesFields(t *testing.T) {
	_, body := run(t, func(c *gin.Context) {
		FieldError(c, http.StatusBadRequest, "invalid payload", map[string]string{"email": "is required"})
	})
	assert.Equal(t, "is required", body.Fields["email"])
}

func TestExceptionExposesDetailOutsideProduction(t *testing.T) {
	w, body := run(t, func(c *gin.Context) {
		Exception(c, errors.New("pg: connection refused"), false)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	require.NotNil(t, body.Exception)
	assert.Equal(t, "pg: connection refused", body.Exception.Message)
	assert.NotEmpty(t, body.Exception.Type)
}

func TestExceptionRedactsInProduction(t *testing.T) {
	_, body := run(t, func(c *gin.Context) {
		Exception(c, errors.New("pg: connection refused"), true)
	})
	assert.Equal(t, "internal server error", body.Message)
	assert.Nil(t, body.Exception, "internal detail must never leak in production")
}
