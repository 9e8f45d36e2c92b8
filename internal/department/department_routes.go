package department

import (
	"github.com/AndraZero121/lomba-bank-jateng/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	enforcer middleware.Enforcer,
) {
	departments := r.Group("/departments")

	departments.Use(middleware.AuthMiddleware())

	{
		departments.GET("", middleware.Authorize(enforcer, "department", "read"), h.GetAll)
		departments.POST("", middleware.Authorize(enforcer, "department", "create"), h.Create)
		departments.GET("/:id", middleware.Authorize(enforcer, "department", "read"), h.GetById)
		departments.PUT("/:id", middleware.Authorize(enforcer, "department", "update"), h.Update)
		departments.DELETE("/:id", middleware.Authorize(enforcer, "department", "delete"), h.Delete)
	}
}
