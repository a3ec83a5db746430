package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"bakery-commerce-platform/internal/config"
	"bakery-commerce-platform/internal/database"
	"bakery-commerce-platform/internal/handlers"
	"bakery-commerce-platform/internal/metrics"
	"bakery-commerce-platform/internal/middleware"
	"bakery-commerce-platform/internal/repositories"
	"bakery-commerce-platform/internal/services"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database connection
	dbConfig := database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}

	db, err := database.NewConnection(dbConfig)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	log.Println("Database connection established successfully")

	// Run pending migrations on startup
	if err := db.RunMigrations(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db.DB)
	productRepo := repositories.NewProductRepository(db.DB)
	cartRepo := repositories.NewCartRepository(db.DB)
	orderRepo := repositories.NewOrderRepository(db.DB)

	// Initialize services
	userService := services.NewUserService(userRepo)
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(cartRepo, productRepo, cfg.Checkout.ReservationTTL)
	paymentService := services.NewMockPaymentService(cfg.Payment.CallbackURL)
	emailService := services.NewLogEmailService()
	checkoutService := services.NewCheckoutService(orderRepo, cartRepo, paymentService, emailService, cfg.Checkout.PaymentDeadline)
	cleanupService := services.NewCleanupService(orderRepo, cartRepo)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	paymentHandler := handlers.NewPaymentHandler(checkoutService)
	cleanupHandler := handlers.NewCleanupHandler(cleanupService, cfg.Cleanup.Secret)
	adminHandler := handlers.NewAdminHandler(catalogService, checkoutService, userService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret, cfg.Auth.Issuer, userService)
	callbackLimiter := middleware.NewRateLimiter(60, time.Minute)

	if cfg.Cleanup.Secret == "" {
		log.Println("Warning: CLEANUP_SECRET is not set; the cleanup endpoint will reject all calls")
	}

	// Set up router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(authMiddleware.LoadUser)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/api/products", catalogHandler.ListProducts)
	r.Get("/api/products/{id}", catalogHandler.GetProduct)

	// Payment provider callback. Rate limited since it is unauthenticated.
	r.With(callbackLimiter.Middleware).Post("/api/payment/callback", paymentHandler.Callback)

	// Expiry sweep, driven by an external scheduler with a shared secret
	r.Get("/api/cleanup", cleanupHandler.Run)

	r.Handle("/metrics", metrics.Handler())

	// Authenticated customer routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Get("/api/cart", cartHandler.GetCart)
		r.Post("/api/cart/items", cartHandler.AddItem)
		r.Put("/api/cart/items/{itemID}", cartHandler.UpdateItem)
		r.Delete("/api/cart/items/{itemID}", cartHandler.RemoveItem)
		r.Delete("/api/cart", cartHandler.ClearCart)

		r.Post("/api/checkout", checkoutHandler.Checkout)
		r.Get("/api/orders", checkoutHandler.ListOrders)
		r.Get("/api/orders/{id}", checkoutHandler.GetOrder)
		r.Post("/api/orders/{id}/cancel", checkoutHandler.CancelOrder)
	})

	// Admin routes
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authMiddleware.RequireAdmin)

		r.Get("/products", adminHandler.ListProducts)
		r.Post("/products", adminHandler.CreateProduct)
		r.Get("/products/{id}", adminHandler.GetProduct)
		r.Put("/products/{id}", adminHandler.UpdateProduct)
		r.Delete("/products/{id}", adminHandler.DeleteProduct)
		r.Post("/products/{id}/variants", adminHandler.CreateVariant)
		r.Put("/variants/{variantID}", adminHandler.UpdateVariant)
		r.Delete("/variants/{variantID}", adminHandler.DeleteVariant)

		r.Get("/orders", adminHandler.ListOrders)
		r.Get("/statistics", adminHandler.GetStatistics)

		r.Get("/users", adminHandler.ListUsers)
		r.Post("/users/{id}/suspend", adminHandler.SuspendUser)
		r.Post("/users/{id}/activate", adminHandler.ActivateUser)
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on http://%s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
