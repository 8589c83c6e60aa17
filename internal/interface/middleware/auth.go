package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/charcreator/backend/internal/application"
	"github.com/charcreator/backend/pkg/helpers"
	"github.com/charcreator/backend/pkg/response"
)

const sessionDataKey = "sessionData"

// SessionResolver is the slice of application.SessionResolver the auth
// middleware needs.
type SessionResolver interface {
	ResolveOptional(ctx context.Context, token string) (*application.SessionData, error)
	ResolveRequired(ctx context.Context, token string) (*application.SessionData, error)
}

// SessionFrom returns the SessionData a preceding Auth/OptionalAuth stored,
// or nil for anonymous requests.
func SessionFrom(c *gin.Context) *application.SessionData {
	if v, ok := c.Get(sessionDataKey); ok {
		if data, ok := v.(*application.SessionData); ok {
			return data
		}
	}
	return nil
}

// Auth resolves the session token from the authorization cookie (or a bare
// Authorization header) and aborts with 401 when no live session matches.
func Auth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := resolver.ResolveRequired(c.Request.Context(), helpers.SessionToken(c))
		if err != nil {
			if errors.Is(err, application.ErrUnauthorized) {
				response.Error(c, http.StatusUnauthorized, application.ErrUnauthorized.Error())
			} else {
				response.Error(c, http.StatusInternalServerError, "session lookup failed")
			}
			c.Abort()
			return
		}
		c.Set(sessionDataKey, data)
		c.Next()
	}
}

// OptionalAuth resolves the session when a token is present but lets
// anonymous requests straight through. Resolution errors are treated as
// anonymous rather than failing the request.
func OptionalAuth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		data, err := resolver.ResolveOptional(c.Request.Context(), helpers.SessionToken(c))
		if err == nil && data != nil {
			c.Set(sessionDataKey, data)
		}
		c.Next()
	}
}
