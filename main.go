package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"hotel-frontdesk/config"
	"hotel-frontdesk/controllers"
	"hotel-frontdesk/routes"
	"hotel-frontdesk/services"
	"hotel-frontdesk/store"
)

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	level, err := logrus.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		log.WithField("level", cfg.Server.LogLevel).Warn("unknown LOG_LEVEL, using info")
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

func openStore(cfg *config.Config, log *logrus.Logger) (store.Store, error) {
	if cfg.Store.Driver == config.DriverMemory {
		if cfg.Store.SeedFixtures {
			log.WithField("rooms", len(store.FixtureRoomNumbers)).Info("in-memory store seeded with fixture rooms")
			return store.NewSeededMemoryStore(), nil
		}
		return store.NewMemoryStore(), nil
	}

	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	return store.NewGormStore(db), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := newLogger(cfg)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// amounts go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	st, err := openStore(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("store init failed")
	}
	log.WithField("driver", cfg.Store.Driver).Info("store ready")

	var publisher services.Publisher = services.NoopPublisher{}
	if cfg.Events.AMQPURL != "" {
		publisher = services.NewAMQPPublisher(cfg.Events.AMQPURL, cfg.Events.Queue)
		log.WithField("queue", cfg.Events.Queue).Info("publishing events to rabbitmq")
	}

	var reviewer services.Reviewer = services.NoopReviewer{}
	if cfg.Review.Endpoint != "" {
		reviewer = services.NewHTTPReviewer(cfg.Review.Endpoint, cfg.Review.APIKey, cfg.Review.Timeout)
		log.WithField("endpoint", cfg.Review.Endpoint).Info("booking form review enabled")
	}

	policy, err := services.ParseSettlementPolicy(cfg.Pricing.SettlementPolicy)
	if err != nil {
		log.WithError(err).Fatal("invalid settlement policy")
	}

	// Initialize services
	bookingService := services.NewBookingService(st, publisher, log)
	bookingService.NightlyRate = cfg.Pricing.NightlyRate
	paymentService := services.NewPaymentService(st, publisher, log)
	paymentService.Policy = policy
	revenueService := services.NewRevenueService(st)
	roomService := services.NewRoomService(st)

	// Initialize controllers
	roomController := controllers.NewRoomController(roomService)
	bookingController := controllers.NewBookingController(bookingService, reviewer, log)
	paymentController := controllers.NewPaymentController(paymentService, revenueService)

	router := routes.SetupRouter(roomController, bookingController, paymentController, log, cfg.CORS.AllowedOrigins)

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      40 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.WithField("addr", addr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped gracefully")
}
