package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/domain/entity"
)

func adminRouter(data *application.SessionData, remoteIP string) (*gin.Engine, *bool) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := new(bool)
	r.GET("/admin", func(c *gin.Context) {
		c.Set("real_ip", remoteIP)
		if data != nil {
			c.Set(sessionDataKey, data)
		}
	}, AdminOnly(1), func(c *gin.Context) {
		*reached = true
		c.Status(http.StatusOK)
	})
	return r, reached
}

func adminSession(level int) *application.SessionData {
	return &application.SessionData{
		User:    &entity.User{ID: 1, AdminLevel: level},
		Session: &entity.Session{ID: 1, UserID: 1},
	}
}

func TestAdminOnlyAllowsAdminFromLoopback(t *testing.T) {
	r, reached := adminRouter(adminSession(1), "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

func TestAdminOnlyAllowsAdminFromPrivateRange(t *testing.T) {
	r, reached := adminRouter(adminSession(2), "10.0.4.20")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, *reached)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	r, reached := adminRouter(adminSession(0), "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *reached)
}

func TestAdminOnlyRejectsAnonymous(t *testing.T) {
	r, reached := adminRouter(nil, "127.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *reached)
}

func TestAdminOnlyRejectsPublicAddress(t *testing.T) {
	r, reached := adminRouter(adminSession(1), "203.0.113.9")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, *reached)
}

func TestRealIPPrefersCloudflareHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got string
	r.GET("/", RealIP(), func(c *gin.Context) {
		got = c.GetString("real_ip")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("CF-Connecting-IP", "198.51.100.7")
	req.Header.Set("X-Forwarded-For", "192.0.2.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "198.51.100.7", got)
}

func TestRealIPFallsBackToForwardedFor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var got string
	r.GET("/", RealIP(), func(c *gin.Context) {
		got = c.GetString("real_ip")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "192.0.2.1, 10.0.0.1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.1", got)
}
