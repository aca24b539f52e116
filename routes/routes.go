package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/lelaut/snaplu.cc/controllers"
)

type Controllers struct {
	Consumers   *controllers.ConsumerController
	Collections *controllers.CollectionController
	Gameplays   *controllers.GameplayController
}

func SetupRoutes(r *gin.Engine, ctl Controllers) {
	api := r.Group("/api")

	// ----------------------
	// Consumer routes
	// ----------------------
	api.POST("/consumers", ctl.Consumers.Register)   // Register consumer
	api.GET("/consumers/:id", ctl.Consumers.Get)     // Consumer with balance

	// ----------------------
	// Collection routes
	// ----------------------
	api.GET("/collections", ctl.Collections.List)            // List confirmed collections
	api.GET("/collections/:id", ctl.Collections.Get)         // Collection with cards
	api.POST("/collections/:id/play", ctl.Gameplays.Play)    // Draw one card

	// ----------------------
	// Gameplay routes
	// ----------------------
	api.GET("/gameplays/:id", ctl.Gameplays.Get) // Receipt, owner only
}
