package company

import (
	"go-directory/internal/config"
	"go-directory/internal/domain"
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, parser middleware.TokenParser, rbacService middleware.RBACService) {
	companies := r.Group("/companies")
	companies.Use(
		middleware.Authenticate(parser, config.DomainAdmin),
		middleware.ContextLogger(nil),
	)
	{
		companies.GET("",
			middleware.RateLimitBySubject(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionList),
			handler.List,
		)

		// /me is registered before /:id so the static segment wins.
		companies.GET("/me",
			middleware.RateLimitBySubject(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionRead),
			handler.GetMe,
		)

		companies.GET("/:id",
			middleware.RateLimitBySubject(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionRead),
			handler.GetByID,
		)

		companies.PATCH("/:id",
			middleware.RateLimitBySubject(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionUpdate),
			handler.Update,
		)

		companies.DELETE("/:id",
			middleware.RateLimitBySubject(0.1, 1),
			middleware.RBACAuthorize(rbacService, domain.ResourceCompany, domain.ActionDelete),
			handler.Delete,
		)
	}
}
