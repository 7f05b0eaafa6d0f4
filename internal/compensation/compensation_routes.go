package compensation

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	plans := r.Group("/compensation-plans")
	plans.Use(middleware.AuthMiddleware())
	{
		plans.POST("", middleware.RBACAuthorize(rbacService, "compensation", "create"), h.Create)
		plans.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "compensation", "read"), h.GetAllByEmployee)
	}
}
