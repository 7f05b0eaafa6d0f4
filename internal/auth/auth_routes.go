package auth

import (
	"github.com/cocomgroup/hub-hrms-sub002/internal/middleware"
	"github.com/cocomgroup/hub-hrms-sub002/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, rbacService rbac.Service) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), h.Me)
		auth.POST("/login", middleware.RateLimitByIP(0.08, 5), h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.POST("/logout", middleware.AuthMiddleware(), h.Logout)
		auth.POST("/register",
			middleware.AuthMiddleware(),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			h.Register)
	}
}
