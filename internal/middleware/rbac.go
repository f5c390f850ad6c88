package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/curriculum-api/internal/models"
	"github.com/noah-isme/curriculum-api/internal/service"
	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
	"github.com/noah-isme/curriculum-api/pkg/response"
)

// Guard enforces capability checks over the session loaded by LoadSession.
type Guard struct {
	metrics *service.MetricsService
}

// NewGuard creates a guard that counts rejections on metrics (may be nil).
func NewGuard(metrics *service.MetricsService) *Guard {
	return &Guard{metrics: metrics}
}

// RequireRole admits requests whose session has role. An empty role admits
// any authenticated session.
func (g *Guard) RequireRole(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := SessionFromContext(c)
		if session == nil {
			g.metrics.RecordGuardRejection("unauthenticated")
			response.Abort(c, appErrors.Clone(appErrors.ErrUnauthorized, "not authenticated"))
			return
		}

		if role != "" && session.Role != role {
			g.metrics.RecordGuardRejection("forbidden")
			response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "access denied. "+string(role)+" role required."))
			return
		}

		c.Next()
	}
}

// RequireAuthenticated admits any logged-in user.
func (g *Guard) RequireAuthenticated() gin.HandlerFunc {
	return g.RequireRole("")
}

// RequireManager admits only managers.
func (g *Guard) RequireManager() gin.HandlerFunc {
	return g.RequireRole(models.RoleManager)
}

// RequireRole is Guard.RequireRole without metrics.
func RequireRole(role models.UserRole) gin.HandlerFunc {
	return NewGuard(nil).RequireRole(role)
}
