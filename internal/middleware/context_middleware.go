package middleware

import (
	"go-directory/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger stores a request scoped logger carrying the request id and,
// once authenticated, the caller's identity. A nil logger means the global one.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		base := logger
		if base == nil {
			base = zap.L()
		}
		ctx := c.Request.Context()
		md := contextutil.ExtractMetadata(ctx)

		fields := []zap.Field{zap.String("request_id", md.RequestID)}
		if md.SubjectID != "" {
			fields = append(fields, zap.String("subject_id", md.SubjectID))
		}
		if md.CompanyID != "" {
			fields = append(fields, zap.String("company_id", md.CompanyID))
		}
		if p, ok := PrincipalFrom(c); ok {
			fields = append(fields, zap.String("role", string(p.Role)))
		}

		c.Request = c.Request.WithContext(contextutil.WithLogger(ctx, base.With(fields...)))
		c.Next()
	}
}
