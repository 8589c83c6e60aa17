package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/pkg/helpers"
	"github.com/charcreator/backend/pkg/response"
)

type stubResolver struct {
	data *application.SessionData
	err  error

	lastToken string
}

func (s *stubResolver) ResolveOptional(_ context.Context, token string) (*application.SessionData, error) {
	s.lastToken = token
	return s.data, s.err
}

func (s *stubResolver) ResolveRequired(_ context.Context, token string) (*application.SessionData, error) {
	s.lastToken = token
	if s.err != nil {
		return nil, s.err
	}
	if s.data == nil {
		return nil, application.ErrUnauthorized
	}
	return s.data, nil
}

func sessionFixture() *application.SessionData {
	return &application.SessionData{
		User:    &entity.User{ID: 7, Email: "a@b.c"},
		Session: &entity.Session{ID: 3, UserID: 7},
	}
}

func TestAuthRejectsMissingSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	reached := false
	r.GET("/me", Auth(&stubResolver{}), func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, reached)

	var body response.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnauthorized, body.Code)
	assert.Equal(t, "you must be logged in", body.Message)
}

func TestAuthPassesSessionToHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &stubResolver{data: sessionFixture()}
	r := gin.New()
	var seen *application.SessionData
	r.GET("/me", Auth(resolver), func(c *gin.Context) {
		seen = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.SessionCookieName, Value: "tok-123"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(7), seen.User.ID)
	assert.Equal(t, "tok-123", resolver.lastToken)
}

func TestAuthReadsBareAuthorizationHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &stubResolver{data: sessionFixture()}
	r := gin.New()
	r.GET("/me", Auth(resolver), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "tok-hdr")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok-hdr", resolver.lastToken)
}

func TestAuthLookupFailureIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	resolver := &stubResolver{err: assert.AnError}
	r := gin.New()
	r.GET("/me", Auth(resolver), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var seen *application.SessionData
	called := false
	r.GET("/me", OptionalAuth(&stubResolver{}), func(c *gin.Context) {
		called = true
		seen = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
	assert.Nil(t, seen)
}

func TestOptionalAuthTreatsErrorsAsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var seen *application.SessionData
	r.GET("/me", OptionalAuth(&stubResolver{err: assert.AnError}), func(c *gin.Context) {
		seen = SessionFrom(c)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, seen)
}
