package payslip

import (
	"github.com/AndraZero121/lomba-bank-jateng/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	enforcer middleware.Enforcer,
	rdb *redis.Client,
) {
	slips := r.Group("/payslips")

	slips.Use(middleware.AuthMiddleware())

	{
		slips.GET("", middleware.Authorize(enforcer, "payslip", "read"), h.GetAll)
		if rdb != nil {
			slips.POST(
				"",
				middleware.Idempotency(rdb),
				middleware.Authorize(enforcer, "payslip", "create"),
				h.Create,
			)
		} else {
			slips.POST("", middleware.Authorize(enforcer, "payslip", "create"), h.Create)
		}
		slips.GET("/:id", middleware.Authorize(enforcer, "payslip", "read"), h.GetById)
		slips.PUT("/:id", middleware.Authorize(enforcer, "payslip", "update"), h.Update)
		slips.DELETE("/:id", middleware.Authorize(enforcer, "payslip", "delete"), h.Delete)
	}
}
