package position

import (
	"github.com/AndraZero121/lomba-bank-jateng/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	enforcer middleware.Enforcer,
) {
	positions := r.Group("/positions")

	positions.Use(middleware.AuthMiddleware())

	{
		positions.GET("", middleware.Authorize(enforcer, "position", "read"), h.GetAll)
		positions.POST("", middleware.Authorize(enforcer, "position", "create"), h.Create)
		positions.GET("/:id", middleware.Authorize(enforcer, "position", "read"), h.GetById)
		positions.PUT("/:id", middleware.Authorize(enforcer, "position", "update"), h.Update)
		positions.DELETE("/:id", middleware.Authorize(enforcer, "position", "delete"), h.Delete)
	}
}
