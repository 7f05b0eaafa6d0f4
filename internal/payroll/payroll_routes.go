package payroll

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service, rdb *redis.Client) {
	periods := r.Group("/payroll-periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.POST("", middleware.RBACAuthorize(rbacService, "payroll", "create"), h.CreatePeriod)
		periods.GET("", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListPeriods)
		periods.GET("/:id", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.GetPeriod)
		periods.GET("/:id/pay-stubs", middleware.RBACAuthorize(rbacService, "payroll", "read"), h.ListStubsByPeriod)
		periods.POST("/:id/run",
			middleware.RBACAuthorize(rbacService, "payroll", "run"),
			middleware.Idempotency(rdb),
			h.RunPayroll)
	}

	stubs := r.Group("/pay-stubs")
	stubs.Use(middleware.AuthMiddleware())
	{
		stubs.GET("", middleware.RBACAuthorize(rbacService, "pay_stub", "read"), h.ListMyStubs)
		stubs.GET("/:id", middleware.RBACAuthorize(rbacService, "pay_stub", "read"), h.GetStub)
		stubs.GET("/:id/pdf", middleware.RBACAuthorize(rbacService, "pay_stub", "read"), h.DownloadStubPDF)
		stubs.POST("/:id/reverse", middleware.RBACAuthorize(rbacService, "pay_stub", "reverse"), h.ReverseStub)
	}
}
