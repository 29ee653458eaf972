package auth

import (
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, parser middleware.TokenParser) {
	auth := r.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		auth.GET("/me",
			middleware.Authenticate(parser, DomainAdmin),
			middleware.RateLimitBySubject(2, 5),
			handler.Me,
		)
	}
}
