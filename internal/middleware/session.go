package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/models"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
)

// ContextSessionKey is the gin context key storing the resolved *models.Session.
const ContextSessionKey = "currentSession"

// ContextSessionErrorKey holds the store error when a cookie could not be resolved.
const ContextSessionErrorKey = "sessionLoadError"

type sessionResolver interface {
	ResolveToken(ctx context.Context, token string) (*models.Session, error)
}

// LoadSession attaches the session named by the cookie when it resolves. It
// never blocks the request; guards decide what an absent session means.
func LoadSession(resolver sessionResolver, cookieName string, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		session, err := resolver.ResolveToken(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, appErrors.ErrUnauthorized) {
				logger.Warn("session lookup failed", zap.Error(err))
				c.Set(ContextSessionErrorKey, err)
			}
			c.Next()
			return
		}

		c.Set(ContextSessionKey, session)
		c.Next()
	}
}

// SessionFromContext returns the session loaded for this request, if any.
func SessionFromContext(c *gin.Context) *models.Session {
	value, exists := c.Get(ContextSessionKey)
	if !exists {
		return nil
	}
	session, ok := value.(*models.Session)
	if !ok {
		return nil
	}
	return session
}

// SessionLoadError returns the store failure hit while loading the cookie
// session. Invalid or expired cookies are not failures and yield nil.
func SessionLoadError(c *gin.Context) error {
	value, exists := c.Get(ContextSessionErrorKey)
	if !exists {
		return nil
	}
	err, _ := value.(error)
	return err
}
