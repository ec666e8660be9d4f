package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"concession-inventory-api/internal/cache"
	"concession-inventory-api/internal/config"
	"concession-inventory-api/internal/handler"
	"concession-inventory-api/internal/repository"
	"concession-inventory-api/internal/router"
	"concession-inventory-api/internal/service"
	"concession-inventory-api/internal/square"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting concession inventory API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	// Initialize storage backend based on config
	var store repository.Store
	switch cfg.InventoryDB.Type {
	case "sqlite":
		sqliteStore, err := repository.NewSQLiteStore(cfg.InventoryDB.Path)
		if err != nil {
			log.Fatalf("Failed to initialize SQLite: %v", err)
		}
		store = sqliteStore
		log.Println("SQLite store initialized")
	case "mysql":
		mysqlStore, err := repository.NewMySQLStore(cfg.InventoryDB.MySQLDSN())
		if err != nil {
			log.Fatalf("Failed to initialize MySQL: %v", err)
		}
		store = mysqlStore
		log.Println("MySQL store initialized")
	default: // memory
		store = repository.NewMemoryStore()
		log.Println("In-memory store initialized")
	}
	defer store.Close()

	// Initialize metrics cache; fall back to memory if Redis is unreachable
	var metricsCache cache.Cache
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err != nil {
			log.Printf("Warning: Redis connection failed, using memory cache: %v", err)
			metricsCache = cache.NewMemoryCache()
		} else {
			metricsCache = redisCache
		}
	} else {
		metricsCache = cache.NewMemoryCache()
		log.Println("Memory cache initialized")
	}
	defer metricsCache.Close()

	// Initialize services
	metricsService := service.NewMetricsService(store, store, metricsCache, service.MetricsConfig{
		Window:   cfg.Metrics.Window,
		CacheTTL: cfg.Cache.TTL,
	})
	inventoryService := service.NewInventoryService(store, metricsService)
	purchaseService := service.NewPurchaseService(store, store, metricsService)
	syncService := service.NewSyncService(square.NewStubClient(), store)

	// Background sync scheduler (disabled unless SYNC_INTERVAL is set)
	var syncScheduler *service.SyncScheduler
	if cfg.Sync.Interval > 0 {
		syncScheduler = service.NewSyncScheduler(syncService, service.SchedulerConfig{
			SyncInterval: cfg.Sync.Interval,
		})
		syncScheduler.Start()
	}

	// Initialize handlers
	healthHandler := handler.New(cfg.App.Version)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	metricsHandler := handler.NewMetricsHandler(metricsService)
	syncHandler := handler.NewSyncHandler(syncService)

	// Create router
	r := router.New(router.Config{
		Handler:          healthHandler,
		InventoryHandler: inventoryHandler,
		PurchaseHandler:  purchaseHandler,
		MetricsHandler:   metricsHandler,
		SyncHandler:      syncHandler,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	if syncScheduler != nil {
		syncScheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
