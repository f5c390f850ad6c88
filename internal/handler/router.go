package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/curriculum-api/internal/middleware"
	"github.com/noah-isme/curriculum-api/internal/models"
	"github.com/noah-isme/curriculum-api/internal/service"
)

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// RouterDeps groups everything RegisterRoutes mounts.
type RouterDeps struct {
	APIPrefix  string
	CookieName string
	Auth       *service.AuthService
	Curriculum *CurriculumHandler
	Session    *AuthHandler
	Metrics    *MetricsHandler
	Guard      *middleware.Guard
	// Auditor is optional; nil disables curriculum audit entries.
	Auditor       auditRecorder
	Logger        *zap.Logger
	ExposeMetrics bool
	ExposeDocs    bool
}

// RegisterRoutes mounts the API on r.
func RegisterRoutes(r *gin.Engine, deps RouterDeps) {
	if deps.APIPrefix == "" {
		deps.APIPrefix = "/api"
	}
	if deps.Guard == nil {
		deps.Guard = middleware.NewGuard(nil)
	}

	if deps.ExposeMetrics {
		r.GET("/metrics", deps.Metrics.Prometheus)
	}
	if deps.ExposeDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(deps.APIPrefix)
	api.Use(middleware.LoadSession(deps.Auth, deps.CookieName, deps.Logger))
	api.GET("/health", deps.Metrics.Health)

	auth := api.Group("/auth")
	auth.POST("/login", deps.Session.Login)
	auth.POST("/logout", deps.Session.Logout)
	auth.GET("/session", deps.Session.Session)

	audit := func(action string) gin.HandlerFunc {
		return middleware.Audit(deps.Auditor, deps.Logger, action, "curriculum")
	}

	curriculum := api.Group("/curriculum")
	reads := curriculum.Group("", deps.Guard.RequireAuthenticated())
	reads.GET("", deps.Curriculum.List)
	reads.GET("/export", deps.Curriculum.Export)
	reads.GET("/:id", deps.Curriculum.Get)

	writes := curriculum.Group("", deps.Guard.RequireManager())
	writes.POST("", audit(models.AuditActionCurriculumCreate), deps.Curriculum.Create)
	writes.PUT("/:id", audit(models.AuditActionCurriculumUpdate), deps.Curriculum.Update)
	writes.DELETE("/:id", audit(models.AuditActionCurriculumDelete), deps.Curriculum.Delete)
}
