package timesheet

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	timesheets := r.Group("/timesheets")
	timesheets.Use(middleware.AuthMiddleware())
	{
		timesheets.GET("", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.ListMine)
		timesheets.GET("/pending", middleware.RBACAuthorize(rbacService, "timesheet", "list_pending"), h.ListPending)
		timesheets.GET("/:id", middleware.RBACAuthorize(rbacService, "timesheet", "read"), h.Get)
		timesheets.POST("/:id/submit", middleware.RBACAuthorize(rbacService, "timesheet", "submit"), h.Submit)
		timesheets.POST("/:id/approve", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), h.Approve)
		timesheets.POST("/:id/reject", middleware.RBACAuthorize(rbacService, "timesheet", "approve"), h.Reject)
	}
}
