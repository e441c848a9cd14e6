package routes

import (
	"github.com/jkate0000007/eve-platform/handlers/dashboard"
	"github.com/jkate0000007/eve-platform/middleware"

	"github.com/gin-gonic/gin"
)

func DashboardRoutes(r *gin.Engine) {
	dashboardRoutes := r.Group("/dashboard")
	dashboardRoutes.Use(middleware.CreatorAuth())
	{
		dashboardRoutes.GET("/stats", dashboard.GetStats)
	}
}
