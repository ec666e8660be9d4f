package router

import (
	"concession-inventory-api/internal/handler"
	"concession-inventory-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Handler          *handler.Handler
	InventoryHandler *handler.InventoryHandler
	PurchaseHandler  *handler.PurchaseHandler
	MetricsHandler   *handler.MetricsHandler
	SyncHandler      *handler.SyncHandler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		// Health check endpoints
		if cfg.Handler != nil {
			r.Get("/health", cfg.Handler.Health)
			r.Get("/ready", cfg.Handler.Ready)
		}

		// Inventory endpoints. The fixed paths are registered before
		// the {id} route so "low-stock" is never parsed as an id.
		if cfg.InventoryHandler != nil {
			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", cfg.InventoryHandler.ListItems)
				r.Post("/", cfg.InventoryHandler.CreateItem)
				r.Get("/low-stock", cfg.InventoryHandler.ListLowStock)
				r.Get("/category/{category}", cfg.InventoryHandler.ListByCategory)
				r.Get("/{id}", cfg.InventoryHandler.GetItem)
				r.Put("/{id}", cfg.InventoryHandler.UpdateItem)
				r.Delete("/{id}", cfg.InventoryHandler.DeleteItem)
			})
		}

		// Purchase history endpoints
		if cfg.PurchaseHandler != nil {
			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", cfg.PurchaseHandler.ListPurchases)
				r.Post("/", cfg.PurchaseHandler.CreatePurchase)
				r.Get("/date-range", cfg.PurchaseHandler.ListByDateRange)
				r.Get("/item/{itemId}", cfg.PurchaseHandler.ListByItem)
			})
		}

		// Square sync endpoints
		if cfg.SyncHandler != nil {
			r.Route("/sync", func(r chi.Router) {
				r.Post("/", cfg.SyncHandler.TriggerSync)
				r.Get("/latest", cfg.SyncHandler.GetLatest)
			})
		}

		// Dashboard metrics
		if cfg.MetricsHandler != nil {
			r.Get("/metrics", cfg.MetricsHandler.GetCategoryMetrics)
		}
	})

	return r
}
