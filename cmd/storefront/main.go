package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorosso-backend/internal/bot"
	"gorosso-backend/internal/catalog"
	cataloghttp "gorosso-backend/internal/catalog/http"
	"gorosso-backend/internal/catalog/messaging"
	"gorosso-backend/internal/catalog/service"
	"gorosso-backend/internal/catalog/store"
	"gorosso-backend/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	metricCreatedTotal  = "products_created_total"
	metricDeletedTotal  = "products_deleted_total"
	metricInvoicesTotal = "invoices_issued_total"
	metricPaymentsTotal = "payments_completed_total"
)

// @title        Gorosso Storefront API
// @version      1.0
// @description  Product catalog API for the Gorosso Telegram storefront.
// @host         localhost:3000
// @BasePath     /
func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.LoadStorefront()
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	catalogStore := store.NewFile(cfg.ProductsPath, logger)

	var publisher service.Publisher = messaging.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			logger.Error("connect rabbitmq", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		rabbitPublisher, err := messaging.NewRabbitPublisher(conn, catalog.EventsQueue)
		if err != nil {
			logger.Error("init publisher", "error", err)
			os.Exit(1)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	}

	createdCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricCreatedTotal,
		Help: "Total number of products created",
	})
	deletedCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricDeletedTotal,
		Help: "Total number of products deleted",
	})
	invoicesCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricInvoicesTotal,
		Help: "Total number of payment invoices issued",
	})
	paymentsCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: metricPaymentsTotal,
		Help: "Total number of completed payments",
	})
	prometheus.MustRegister(createdCounter, deletedCounter, invoicesCounter, paymentsCounter)

	svc := service.New(catalogStore, publisher, logger, createdCounter, deletedCounter)

	// The dispatcher needs the bot for sending and the bot needs a handler
	// at construction time, so the handler closes over the late-bound
	// dispatcher. It is assigned before polling starts.
	var dispatcher *bot.Dispatcher
	telegram, err := tgbot.New(cfg.BotToken, tgbot.WithDefaultHandler(
		func(ctx context.Context, _ *tgbot.Bot, update *models.Update) {
			dispatcher.Handle(ctx, update)
		},
	))
	if err != nil {
		logger.Error("init telegram bot", "error", err)
		os.Exit(1)
	}

	admin := bot.NewAdmin(svc, telegram, cfg.AdminChatID, cfg.Currency, logger)
	checkout := bot.NewCheckout(svc, telegram, bot.CheckoutConfig{
		ProviderToken: cfg.PaymentsProviderToken,
		Currency:      cfg.Currency,
		AdminChatID:   cfg.AdminChatID,
	}, logger, invoicesCounter, paymentsCounter)
	dispatcher = bot.NewDispatcher(telegram, admin, checkout, cfg.WebAppURL, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.Use(cataloghttp.RequestIDMiddleware())
	router.Use(cataloghttp.AccessLogMiddleware(logger))
	cataloghttp.RegisterRoutes(router, cataloghttp.NewHandler(svc), catalogStore)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront api started", "addr", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("telegram bot started")
		telegram.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	logger.Info("storefront stopped")
}
