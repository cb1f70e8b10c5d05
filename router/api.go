package router

import (
	"github.com/gin-gonic/gin"

	"github.com/Laisky/mcp-chat/controller"
)

// SetApiRouter registers the API routes.
func SetApiRouter(router *gin.Engine) {
	router.GET("/health", controller.Health)

	api := router.Group("/api")
	{
		api.POST("/chat", controller.Chat)

		mcpRoute := api.Group("/mcp")
		{
			mcpRoute.GET("/tools", controller.GetTools)
			mcpRoute.POST("/execute", controller.ExecuteTool)

			connectionRoute := mcpRoute.Group("/connections")
			{
				connectionRoute.GET("", controller.GetConnections)
				connectionRoute.POST("", controller.CreateConnection)
				connectionRoute.GET("/:id", controller.GetConnection)
				connectionRoute.PUT("/:id", controller.UpdateConnection)
				connectionRoute.DELETE("/:id", controller.DeleteConnection)
				connectionRoute.POST("/:id/sync", controller.SyncConnection)
			}

			storageRoute := mcpRoute.Group("/storage")
			{
				storageRoute.GET("/stats", controller.GetStorageStats)
				storageRoute.POST("/backup", controller.BackupStorage)
				storageRoute.POST("/reload", controller.ReloadStorage)
				storageRoute.POST("/clear", controller.ClearStorage)
			}
		}
	}
}
