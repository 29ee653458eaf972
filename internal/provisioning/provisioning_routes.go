package provisioning

import (
	"time"

	"go-directory/internal/config"
	"go-directory/internal/domain"
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegisterRoutes mounts the provisioning endpoints. A nil rdb leaves them
// without idempotency protection.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	parser middleware.TokenParser,
	rbacService middleware.RBACService,
	rdb redis.Cmdable,
	idempotencyTTL time.Duration,
	logger *zap.Logger,
) {
	g := r.Group("")
	g.Use(middleware.Authenticate(parser, config.DomainAdmin))
	g.Use(middleware.ContextLogger(logger))
	if rdb != nil {
		g.Use(middleware.Idempotency(rdb, idempotencyTTL))
	}

	g.POST("/tenants",
		middleware.RateLimitBySubject(0.2, 2),
		middleware.RBACAuthorize(rbacService, domain.ResourceTenant, domain.ActionCreate),
		handler.CreateTenant,
	)

	g.POST("/employees",
		middleware.RateLimitBySubject(1, 5),
		middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionCreate),
		handler.OnboardEmployee,
	)
}
