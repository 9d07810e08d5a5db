package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/littleboyzz/Billiard-Plus-App/config"
	"github.com/littleboyzz/Billiard-Plus-App/database"
	"github.com/littleboyzz/Billiard-Plus-App/hub"
	"github.com/littleboyzz/Billiard-Plus-App/middlewares"
	"github.com/littleboyzz/Billiard-Plus-App/router"
	"github.com/littleboyzz/Billiard-Plus-App/services"
	"github.com/littleboyzz/Billiard-Plus-App/upstream"
	"github.com/littleboyzz/Billiard-Plus-App/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()

	cfg := config.Load()
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	utils.InitDB(db)

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate: %v", err)
	}

	// Engine: registry + carts, fed by the sync monitor, drained by the
	// checkout finalizer.
	registry := services.NewRegistry()
	carts := services.NewCartManager()

	client := upstream.NewClient(cfg.UpstreamURL, cfg.FetchTimeout)
	monitor := services.NewSyncMonitor(client, registry)
	monitor.Interval = cfg.SyncInterval
	monitor.Timeout = cfg.FetchTimeout
	monitor.SetOnApplied(hub.BroadcastTablesRefreshed)
	monitor.Start()
	defer monitor.Stop()

	finalizer := services.NewFinalizer(registry, carts, db)
	finalizer.SetRefreshHook(monitor.ForceRefresh)
	finalizer.SetNotifyHook(hub.BroadcastCheckoutSuccess)

	r := router.SetupRouter(registry, carts, monitor, finalizer, db)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Listening on port %s (source: %s)", cfg.Port, cfg.UpstreamURL)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
