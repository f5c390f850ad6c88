package recovery

import (
	"io"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/curriculum-api/pkg/errors"
	"github.com/noah-isme/curriculum-api/pkg/middleware/requestid"
	"github.com/noah-isme/curriculum-api/pkg/response"
)

// Middleware turns a handler panic into a 500 error body and logs the panic
// value through zap instead of gin's default writer.
func Middleware(l *zap.Logger) gin.HandlerFunc {
	if l == nil {
		l = zap.NewNop()
	}
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		l.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Value(c)),
			zap.Stack("stack"),
		)
		response.Abort(c, appErrors.ErrInternal)
	})
}
