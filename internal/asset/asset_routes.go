package asset

import (
	"go-directory/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	assets := r.Group("/assets")
	{
		assets.GET("/:bucket/:key",
			middleware.RateLimitByIP(20, 40),
			handler.Get,
		)
	}
}
