package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kasirapp/kasir/internal/adapter/gateway"
	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/adapter/postgres"
	"github.com/kasirapp/kasir/internal/adapter/rabbitmq"
	"github.com/kasirapp/kasir/internal/adapter/redis"
	"github.com/kasirapp/kasir/internal/app/cart"
	"github.com/kasirapp/kasir/internal/app/catalog"
	"github.com/kasirapp/kasir/internal/app/checkout"
	"github.com/kasirapp/kasir/internal/app/payment"
	"github.com/kasirapp/kasir/internal/config"
	"github.com/kasirapp/kasir/internal/domain"

	amqpAdapter "github.com/kasirapp/kasir/internal/adapter/amqp"
	httpAdapter "github.com/kasirapp/kasir/internal/adapter/http"
)

func main() {
	mode := flag.String("mode", "api", "Service mode: api, notification-subscriber")
	configPath := flag.String("config", "config.yaml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	lgr := logger.New(*mode)

	mqConn, err := rabbitmq.Connect(cfg.RabbitMQ)
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer mqConn.Close()

	lgr.Info("rabbitmq_connected", "Connected to RabbitMQ", "startup", map[string]interface{}{
		"host": cfg.RabbitMQ.Host,
	})

	switch *mode {
	case "api":
		runAPI(ctx, cfg, mqConn, lgr)

	case "notification-subscriber":
		runNotificationSubscriber(ctx, mqConn, lgr)

	default:
		log.Fatalf("Invalid mode: %s", *mode)
	}
}

func runAPI(ctx context.Context, cfg *config.Config, mqConn rabbitmq.Connection, lgr logger.Logger) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	lgr.Info("db_connected", "Connected to PostgreSQL database", "startup", map[string]interface{}{
		"host": cfg.Database.Host,
		"db":   cfg.Database.Database,
	})

	sessions, err := redis.Connect(ctx, cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer sessions.Close()

	lgr.Info("redis_connected", "Connected to Redis session store", "startup", map[string]interface{}{
		"host": cfg.Redis.Host,
	})

	// Repositories
	productRepo := postgres.NewProductRepository(db)
	cartRepo := postgres.NewCartRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	// Collaborators
	publisher := rabbitmq.NewPublisher(mqConn)
	snapClient := gateway.NewSnapClient(cfg.Gateway)

	// Services
	policy := domain.PricingPolicy{TaxBps: cfg.Pricing.TaxBps, Discount: cfg.Pricing.Discount}
	checkoutService := checkout.NewService(cartRepo, orderRepo, snapClient, publisher, lgr, policy, cfg.Checkout.CodeRetryLimit)
	paymentService := payment.NewService(orderRepo, publisher, lgr)
	cartService := cart.NewService(cartRepo, lgr)
	catalogService := catalog.NewService(productRepo)

	// HTTP handlers
	checkoutHandler := httpAdapter.NewCheckoutHandler(checkoutService, lgr)
	orderHandler := httpAdapter.NewOrderHandler(paymentService, lgr)
	cartHandler := httpAdapter.NewCartHandler(cartService, lgr)
	productHandler := httpAdapter.NewProductHandler(catalogService, lgr)

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout", checkoutHandler.Checkout)
	mux.HandleFunc("/orders/", orderHandler.HandleOrders)
	mux.HandleFunc("/cart", cartHandler.HandleCart)
	mux.HandleFunc("/cart/items", cartHandler.HandleCartItems)
	mux.HandleFunc("/cart/items/", cartHandler.HandleCartItems)
	mux.HandleFunc("/products", productHandler.ListProducts)

	handler := httpAdapter.AuthMiddleware(sessions, lgr)(mux)
	handler = httpAdapter.LoggingMiddleware(lgr)(handler)
	handler = httpAdapter.RecoveryMiddleware(lgr)(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	lgr.Info("service_started", fmt.Sprintf("API started on port %d", cfg.HTTP.Port), "startup", map[string]interface{}{
		"port": cfg.HTTP.Port,
	})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		lgr.Info("shutdown_initiated", "Shutting down API", "shutdown", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			lgr.Error("shutdown_error", "Error during shutdown", "shutdown", nil, err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		lgr.Error("server_error", "Server error", "runtime", nil, err)
	}
}

func runNotificationSubscriber(ctx context.Context, mqConn rabbitmq.Connection, lgr logger.Logger) {
	consumer := rabbitmq.NewConsumer(mqConn)
	notificationHandler := amqpAdapter.NewNotificationHandler(lgr)

	lgr.Info("service_started", "Notification Subscriber started", "startup", nil)

	go func() {
		if err := consumer.ConsumeOrderEvents(ctx, notificationHandler.HandleOrderEvent); err != nil {
			lgr.Error("consumer_error", "Error consuming order events", "runtime", nil, err)
		}
	}()

	sigint := make(chan os.Signal, 1)
	signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
	<-sigint

	lgr.Info("shutdown_initiated", "Shutting down Notification Subscriber", "shutdown", nil)
}
