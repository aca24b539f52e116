package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/lelaut/snaplu.cc/config"
	"github.com/lelaut/snaplu.cc/controllers"
	"github.com/lelaut/snaplu.cc/routes"
	"github.com/lelaut/snaplu.cc/services"
	"github.com/lelaut/snaplu.cc/utils/logger"
)

// setupRouter wires middleware, REST routes and the draw feed endpoint.
func setupRouter(ctl routes.Controllers, drawFeed gin.HandlerFunc) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"}, // web frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, ctl)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// Live draw feed
	r.GET("/ws/collections/:id/draws", drawFeed)

	return r
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.Env)

	db := config.SetupDatabase(cfg.DatabaseURL)

	seed, err := services.NewSeed()
	if err != nil {
		logger.Log.Fatalf("Failed to seed card selector: %v", err)
	}

	storage, err := services.NewS3Storage(context.Background(), cfg.S3Bucket, cfg.S3GetExpiry)
	if err != nil {
		logger.Log.Fatalf("Failed to init card storage: %v", err)
	}

	feed := services.NewDrawFeed()
	games := services.NewGameService(
		db,
		services.NewStripeCatalog(cfg.StripeAPIKey),
		storage,
		services.NewCardSelector(db, seed),
		feed,
	)

	ctl := routes.Controllers{
		Consumers:   controllers.NewConsumerController(db),
		Collections: controllers.NewCollectionController(db),
		Gameplays:   controllers.NewGameplayController(games),
	}

	router := setupRouter(ctl, services.HandleDrawFeed(db, feed))

	logger.Infof("🚀 snaplu.cc backend starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatalf("Failed to start server: %v", err)
	}
}
