package timeentry

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	entries := r.Group("/time-entries")
	entries.Use(middleware.AuthMiddleware())
	{
		entries.PUT("", middleware.RBACAuthorize(rbacService, "time_entry", "create"), h.Upsert)
		entries.POST("/bulk", middleware.RBACAuthorize(rbacService, "time_entry", "create"), h.BulkUpsert)
		entries.DELETE("/:id", middleware.RBACAuthorize(rbacService, "time_entry", "delete"), h.Delete)
		entries.GET("", middleware.RBACAuthorize(rbacService, "time_entry", "read"), h.ListWeek)
	}
}
