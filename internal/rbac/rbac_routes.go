package rbac

import (
	"go-directory/internal/config"
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes exposes the caller's own permissions under both signing
// domains so either tier can shape its UI.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, parser middleware.TokenParser) {
	admin := r.Group("/rbac")
	admin.Use(middleware.Authenticate(parser, config.DomainAdmin), middleware.RateLimitBySubject(2, 10))
	{
		admin.GET("/permissions", handler.Permissions)
		admin.POST("/enforce", handler.Enforce)
	}

	employee := r.Group("/me/rbac")
	employee.Use(middleware.Authenticate(parser, config.DomainEmployee), middleware.RateLimitBySubject(2, 10))
	{
		employee.GET("/permissions", handler.Permissions)
	}
}
