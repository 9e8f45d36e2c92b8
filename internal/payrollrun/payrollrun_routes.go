package payrollrun

import (
	"github.com/AndraZero121/lomba-bank-jateng/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	enforcer middleware.Enforcer,
) {
	runs := r.Group("/payroll-runs")

	runs.Use(middleware.AuthMiddleware())

	{
		runs.GET("", middleware.Authorize(enforcer, "payroll_run", "read"), h.GetAll)
		runs.POST("", middleware.Authorize(enforcer, "payroll_run", "create"), h.Create)
		runs.GET("/:id", middleware.Authorize(enforcer, "payroll_run", "read"), h.GetById)
		runs.PUT("/:id", middleware.Authorize(enforcer, "payroll_run", "update"), h.Update)
		runs.DELETE("/:id", middleware.Authorize(enforcer, "payroll_run", "delete"), h.Delete)
	}
}
