package benefits

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	enrollments := r.Group("/benefit-enrollments")
	enrollments.Use(middleware.AuthMiddleware())
	{
		enrollments.POST("", middleware.RBACAuthorize(rbacService, "benefits", "create"), h.Enroll)
		enrollments.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "benefits", "read"), h.GetAllByEmployee)
		enrollments.POST("/:id/deactivate", middleware.RBACAuthorize(rbacService, "benefits", "update"), h.Deactivate)
	}
}
