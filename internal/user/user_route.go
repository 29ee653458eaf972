package user

import (
	"go-directory/internal/config"
	"go-directory/internal/domain"
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	parser middleware.TokenParser,
	rbacService middleware.RBACService,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.Authenticate(parser, config.DomainAdmin))
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("",
			middleware.RateLimitBySubject(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.List,
		)

		employees.GET("/:id",
			middleware.RateLimitBySubject(3, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
			handler.GetByID,
		)

		employees.PATCH("/:id",
			middleware.RateLimitBySubject(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionUpdate),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitBySubject(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionDelete),
			handler.Delete,
		)
	}

	roster := r.Group("/companies/:id/employees")
	roster.Use(middleware.Authenticate(parser, config.DomainAdmin))
	roster.Use(middleware.ContextLogger(logger))
	roster.GET("",
		middleware.RateLimitBySubject(3, 10),
		middleware.RBACAuthorize(rbacService, domain.ResourceEmployee, domain.ActionRead),
		handler.Roster,
	)

	me := r.Group("/me")
	me.Use(middleware.Authenticate(parser, config.DomainEmployee))
	me.Use(middleware.ContextLogger(logger))
	{
		me.GET("",
			middleware.RateLimitBySubject(2, 10),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionRead),
			handler.GetProfile,
		)

		me.PATCH("",
			middleware.RateLimitBySubject(0.5, 2),
			middleware.RBACAuthorize(rbacService, domain.ResourceProfile, domain.ActionUpdate),
			handler.UpdateProfile,
		)
	}

	r.GET("/profiles/:id",
		middleware.RateLimitByIP(5, 20),
		handler.ProfileCard,
	)
}
