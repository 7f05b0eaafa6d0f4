package clock

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	clock := r.Group("/clock")
	clock.Use(middleware.AuthMiddleware())
	{
		clock.POST("/in", middleware.RBACAuthorize(rbacService, "clock", "create"), middleware.RateLimitByUser(1, 3), h.ClockIn)
		clock.POST("/out", middleware.RBACAuthorize(rbacService, "clock", "create"), middleware.RateLimitByUser(1, 3), h.ClockOut)
		clock.PATCH("/sessions/:id/notes", middleware.RBACAuthorize(rbacService, "clock", "update"), h.AmendNotes)
		clock.GET("/sessions/open", middleware.RBACAuthorize(rbacService, "clock", "read"), h.GetOpen)
		clock.GET("/sessions", middleware.RBACAuthorize(rbacService, "clock", "read"), h.ListSessions)
	}
}
