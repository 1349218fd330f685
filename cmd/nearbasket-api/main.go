package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nearbasket/nearbasket-api/internal/api/handlers"
	"github.com/nearbasket/nearbasket-api/internal/api/middleware"
	"github.com/nearbasket/nearbasket-api/internal/cache"
	"github.com/nearbasket/nearbasket-api/internal/config"
	"github.com/nearbasket/nearbasket-api/internal/health"
	"github.com/nearbasket/nearbasket-api/internal/metrics"
	"github.com/nearbasket/nearbasket-api/internal/models"
	repository "github.com/nearbasket/nearbasket-api/internal/repositories"
	service "github.com/nearbasket/nearbasket-api/internal/services"
	"github.com/nearbasket/nearbasket-api/internal/telemetry"
	"github.com/nearbasket/nearbasket-api/pkg/emailer"
	"github.com/nearbasket/nearbasket-api/pkg/gateway"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Tracing setup
	if cfg.Otel.Enabled {
		shutdownTracing, err := telemetry.Setup(context.Background(), "nearbasket-api", cfg.Otel.ExporterEndpoint)
		if err != nil {
			slog.Error("❌ Error setting up tracing", "error", err.Error())
			os.Exit(1)
		}

		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := shutdownTracing(flushCtx); err != nil {
				slog.Error("⚠️ Error flushing traces", slog.String("error", err.Error()))
			}
		}()
	}

	// Database setup
	repos, err := repository.New(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := repos.Close(); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient, err := repository.NewRedisClient(cfg)
	if err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	productCache := cache.NewRedisCache(redisClient, &cfg.Cache)
	idempotencyRepo := repository.NewIdempotencyRepo(redisClient, cfg.Checkout.IdempotencyTTL)

	var gatewayClient gateway.Client
	if cfg.Stripe.APIKey != "" {
		gatewayClient = gateway.NewStripeGateway(cfg.Stripe.APIKey)
	}

	var emailService emailer.EmailService
	if cfg.SendGrid.APIKey != "" {
		emailService = emailer.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	}

	cartService := service.NewCartService(repos.Cart, repos.Catalog, productCache, cfg.Cache.ProductTTL, cfg.Checkout.MaxRetries)
	cartHandler := handlers.NewCartHandler(cartService)
	orderService := service.NewOrderService(repos.Order, repos.Cart, repos.Catalog, idempotencyRepo, emailService, cfg.Checkout.MaxRetries)
	orderHandler := handlers.NewOrderHandler(orderService)
	storeOrderHandler := handlers.NewStoreOrderHandler(orderService)
	paymentService := service.NewPaymentService(repos.Payment, repos.Order, gatewayClient)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	identity := middleware.NewIdentityMiddleware([]byte(cfg.Security.JWTKey), cfg.Security.TrustHeaderIdentity)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	storeRoles := middleware.RequireRole(models.RoleStoreOwner, models.RoleAdmin)

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{DB: repos.DB, RedisClient: redisClient})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", identity.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart/items", identity.Authenticate(cartHandler.AddItem()))
	routerMux.HandleFunc("PATCH /api/v1/cart/items", identity.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("POST /api/v1/cart/items/decrease", identity.Authenticate(cartHandler.DecreaseItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{productId}", identity.Authenticate(cartHandler.RemoveItem()))
	routerMux.HandleFunc("DELETE /api/v1/cart", identity.Authenticate(cartHandler.ClearCart()))

	routerMux.HandleFunc("POST /api/v1/orders/checkout", identity.Authenticate(orderHandler.Checkout()))
	routerMux.HandleFunc("GET /api/v1/orders", identity.Authenticate(orderHandler.ListOrders()))
	routerMux.HandleFunc("GET /api/v1/orders/{id}", identity.Authenticate(orderHandler.GetOrder()))

	routerMux.HandleFunc("GET /api/v1/admin/orders", identity.Authenticate(adminOnly(orderHandler.AdminListOrders())))
	routerMux.HandleFunc("GET /api/v1/admin/orders/{id}", identity.Authenticate(adminOnly(orderHandler.AdminGetOrder())))
	routerMux.HandleFunc("PATCH /api/v1/admin/orders/{id}/status", identity.Authenticate(adminOnly(orderHandler.UpdateOrderStatus())))
	routerMux.HandleFunc("DELETE /api/v1/admin/orders/{id}", identity.Authenticate(adminOnly(orderHandler.DeleteOrder())))

	routerMux.HandleFunc("GET /api/v1/stores/{storeId}/orders", identity.Authenticate(storeRoles(storeOrderHandler.ListOrders())))
	routerMux.HandleFunc("GET /api/v1/stores/{storeId}/orders/{orderId}", identity.Authenticate(storeRoles(storeOrderHandler.GetOrder())))
	routerMux.HandleFunc("PATCH /api/v1/stores/{storeId}/orders/{orderId}/status", identity.Authenticate(storeRoles(storeOrderHandler.UpdateOrderStatus())))
	routerMux.HandleFunc("GET /api/v1/stores/{storeId}/dashboard", identity.Authenticate(storeRoles(storeOrderHandler.Dashboard())))

	routerMux.HandleFunc("POST /api/v1/payments", identity.Authenticate(paymentHandler.InitiatePayment()))
	routerMux.HandleFunc("POST /api/v1/payments/{id}/link", identity.Authenticate(paymentHandler.LinkPayment()))
	routerMux.HandleFunc("GET /api/v1/payments/{id}", identity.Authenticate(paymentHandler.GetPayment()))

	routerMux.Handle("GET /health", healthHandler.Handler())
	routerMux.Handle("GET /metrics", metrics.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = otelhttp.NewHandler(handler, "nearbasket-api")
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

	if err := productCache.Close(); err != nil {
		slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
	}

}
