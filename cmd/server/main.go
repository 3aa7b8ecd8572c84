package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/burgerhouse/storefront/internal/analytics"
	"github.com/burgerhouse/storefront/internal/catalog"
	"github.com/burgerhouse/storefront/internal/config"
	"github.com/burgerhouse/storefront/internal/datasync"
	"github.com/burgerhouse/storefront/internal/element"
	"github.com/burgerhouse/storefront/internal/handlers"
	"github.com/burgerhouse/storefront/internal/middleware"
	"github.com/burgerhouse/storefront/internal/seed"
	"github.com/burgerhouse/storefront/internal/service"
	"github.com/burgerhouse/storefront/internal/session"
	"github.com/burgerhouse/storefront/internal/store"
	"github.com/burgerhouse/storefront/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting burger house storefront server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"data_backend", cfg.Data.Backend,
		"element_backend", cfg.Element.Backend,
		"log_level", cfg.LogLevel,
	)

	ctx := context.Background()

	// Track backends that need an orderly shutdown.
	var closers []io.Closer

	// Initialize the theming/configuration service
	defaults, err := element.LoadDefaults(cfg.Element.DefaultsFile)
	if err != nil {
		log.Error("failed to load element defaults", "error", err)
		os.Exit(1)
	}

	var elementSvc element.Service
	switch cfg.Element.Backend {
	case "redis":
		er := element.NewRedis(element.RedisOptions{
			Addr:      cfg.Data.RedisAddr,
			Password:  cfg.Data.RedisPassword,
			DB:        cfg.Data.RedisDB,
			KeyPrefix: cfg.Data.KeyPrefix,
		}, log)
		closers = append(closers, er)
		elementSvc = er
	default:
		elementSvc = element.NewMemory()
	}

	elementOpts := element.Options{
		Defaults: defaults,
		OnConfigChange: func(c element.Config) {
			log.Info("restaurant configuration changed",
				"restaurant_name", c.RestaurantName,
				"delivery_fee", c.DeliveryFee,
				"restaurant_open", c.RestaurantOpen,
			)
		},
	}
	if err := elementSvc.Init(ctx, elementOpts); err != nil {
		log.Error("failed to initialize element service", "error", err)
		os.Exit(1)
	}

	// Initialize the data synchronization service and the snapshot store
	st := store.New(log)

	var dataSvc datasync.Service
	switch cfg.Data.Backend {
	case "redis":
		dr := datasync.NewRedis(datasync.RedisOptions{
			Addr:      cfg.Data.RedisAddr,
			Password:  cfg.Data.RedisPassword,
			DB:        cfg.Data.RedisDB,
			KeyPrefix: cfg.Data.KeyPrefix,
		}, log)
		closers = append(closers, dr)
		dataSvc = dr
	case "mysql":
		db, err := sql.Open("mysql", cfg.Data.MySQLDSN)
		if err != nil {
			log.Error("failed to open mysql connection", "error", err)
			os.Exit(1)
		}
		closers = append(closers, db)
		dm := datasync.NewMySQL(db, time.Duration(cfg.Data.PollInterval)*time.Second, log)
		closers = append(closers, dm)
		dataSvc = dm
	default:
		dataSvc = datasync.NewMemory()
	}

	if err := dataSvc.Init(ctx, st); err != nil {
		log.Error("failed to initialize data service", "error", err)
		os.Exit(1)
	}

	if cfg.SeedData {
		if err := seed.Run(ctx, dataSvc, st, log); err != nil {
			log.Error("failed to seed sample data", "error", err)
			os.Exit(1)
		}
	}

	// Customer sessions hold the cart and login state server-side.
	sessions := session.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sessions.Run(sweepCtx, time.Duration(cfg.Session.SweepSeconds)*time.Second)

	// Initialize services
	menu := catalog.New()
	orderService := service.NewOrderService(dataSvc, st, elementSvc, log)
	accountService := service.NewAccountService(dataSvc, st, log)
	productService := service.NewProductService(dataSvc, st, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(log)
	menuHandler := handlers.NewMenuHandler(menu, elementSvc, log)
	cartHandler := handlers.NewCartHandler(sessions, menu, elementSvc, log)
	accountHandler := handlers.NewAccountHandler(accountService, sessions, log)
	orderHandler := handlers.NewOrderHandler(orderService, sessions, st, log)

	adminOrders := handlers.NewAdminOrdersHandler(orderService, st, elementSvc, log)
	adminProducts := handlers.NewAdminProductsHandler(productService, st, log)
	adminCustomers := handlers.NewAdminCustomersHandler(st, log)
	adminAnalytics := handlers.NewAdminAnalyticsHandler(st, log)
	adminSettings := handlers.NewAdminSettingsHandler(elementSvc, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Storefront endpoints
		r.Get("/menu", menuHandler.ListMenu)
		r.Get("/menu/options", menuHandler.Options)
		r.Get("/menu/{productId}", menuHandler.GetMenuItem)
		r.Get("/info", menuHandler.Info)

		// Cart endpoints
		r.Get("/cart", cartHandler.GetCart)
		r.Post("/cart/items", cartHandler.AddItem)
		r.Post("/cart/items/update", cartHandler.UpdateItem)
		r.Post("/cart/items/remove", cartHandler.RemoveItem)
		r.Delete("/cart", cartHandler.ClearCart)

		// Account endpoints
		r.Post("/login", accountHandler.Login)
		r.Post("/register", accountHandler.Register)
		r.Post("/logout", accountHandler.Logout)
		r.Get("/me", accountHandler.Me)
		r.Post("/recover-password", accountHandler.RecoverPassword)
		r.Get("/addresses", accountHandler.ListAddresses)
		r.Post("/addresses", accountHandler.SaveAddress)

		// Order endpoints
		r.Post("/checkout", orderHandler.Checkout)
		r.Get("/orders", orderHandler.ListOrders)

		// Admin console endpoints
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.Admin))

			r.Get("/orders", adminOrders.Board)
			r.Get("/orders/{orderId}", adminOrders.GetOrder)
			r.Post("/orders/{orderId}/status", adminOrders.UpdateStatus)
			r.Get("/orders/{orderId}/receipt", adminOrders.Receipt)

			r.Get("/products", adminProducts.ListProducts)
			r.Post("/products", adminProducts.CreateProduct)
			r.Put("/products/{productId}", adminProducts.UpdateProduct)
			r.Post("/products/{productId}/toggle", adminProducts.ToggleProduct)

			r.Get("/customers", adminCustomers.ListCustomers)
			r.Get("/customers/export", adminCustomers.ExportCustomers)
			r.Get("/customers/{userId}", adminCustomers.GetCustomer)

			r.Get("/analytics", adminAnalytics.Dashboard)

			r.Get("/settings", adminSettings.GetSettings)
			r.Patch("/settings", adminSettings.UpdateSettings)
			r.Post("/settings/toggle-open", adminSettings.ToggleOpen)
		})
	})

	log.Info("initial snapshot loaded",
		"products", len(st.Products()),
		"orders", len(st.Orders()),
		"pending_orders", analytics.PendingCount(st.Orders()),
	)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopSweep()

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Error("failed to close backend", "error", err)
		}
	}

	log.Info("server stopped gracefully")
}
