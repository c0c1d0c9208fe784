package routes

import (
	"github.com/gin-gonic/gin"

	workorderhandlers "quarters/internal/interfaces/http/handlers/workorder"
	"quarters/internal/interfaces/http/middleware"
)

type WorkOrderRouteConfig struct {
	WorkOrderHandler *workorderhandlers.WorkOrderHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func SetupWorkOrderRoutes(engine *gin.Engine, config *WorkOrderRouteConfig) {
	workOrders := engine.Group("/api/work-orders")
	workOrders.Use(config.AuthMiddleware.RequireAuth())
	{
		// IMPORTANT: Register specific paths BEFORE parameterized paths to avoid route conflicts

		// Collection operations (no ID parameter)
		workOrders.POST("",
			config.WorkOrderHandler.CreateWorkOrder)
		workOrders.GET("",
			config.WorkOrderHandler.ListWorkOrders)

		// Photo removal addresses the photo directly, not its parent order
		workOrders.DELETE("/photos/:photoId",
			config.WorkOrderHandler.DetachPhoto)

		// Lifecycle transitions
		workOrders.POST("/:id/triage",
			config.WorkOrderHandler.TriageWorkOrder)
		workOrders.POST("/:id/quote/approve",
			config.WorkOrderHandler.ApproveQuote)
		workOrders.POST("/:id/quote/reject",
			config.WorkOrderHandler.RejectQuote)
		workOrders.POST("/:id/reject",
			config.WorkOrderHandler.RejectWorkOrder)
		workOrders.POST("/:id/start",
			config.WorkOrderHandler.StartWork)
		workOrders.POST("/:id/complete",
			config.WorkOrderHandler.CompleteWork)
		workOrders.POST("/:id/sign-off",
			config.WorkOrderHandler.SignOffWorkOrder)

		// Sub-resources
		workOrders.POST("/:id/photos",
			config.WorkOrderHandler.AttachPhoto)
		workOrders.POST("/:id/comments",
			config.WorkOrderHandler.AddComment)
		workOrders.GET("/:id/comments",
			config.WorkOrderHandler.ListComments)
		workOrders.GET("/:id/history",
			config.WorkOrderHandler.ListHistory)

		// Generic parameterized routes (must come LAST)
		workOrders.GET("/:id",
			config.WorkOrderHandler.GetWorkOrder)
		workOrders.PATCH("/:id",
			config.WorkOrderHandler.UpdateWorkOrder)
	}
}
