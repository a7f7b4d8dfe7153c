package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopfusion/backend/internal/cache"
	"github.com/shopfusion/backend/internal/config"
	"github.com/shopfusion/backend/internal/es"
	"github.com/shopfusion/backend/internal/events"
	"github.com/shopfusion/backend/internal/handlers"
	"github.com/shopfusion/backend/internal/logging"
	authmw "github.com/shopfusion/backend/internal/middleware/auth"
	"github.com/shopfusion/backend/internal/repo"
	cartsvc "github.com/shopfusion/backend/internal/service/cart"
	"github.com/shopfusion/backend/internal/service/catalog"
	disputesvc "github.com/shopfusion/backend/internal/service/dispute"
	"github.com/shopfusion/backend/internal/service/moderation"
	ordersvc "github.com/shopfusion/backend/internal/service/order"
	reviewsvc "github.com/shopfusion/backend/internal/service/review"
	searchsvc "github.com/shopfusion/backend/internal/service/search"
	settingssvc "github.com/shopfusion/backend/internal/service/settings"
	httpserver "github.com/shopfusion/backend/internal/transport/http"
)

const settingsTTL = 5 * time.Minute

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LogLevel)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	repository := repo.New(db)
	jwtSecret := []byte(configuration.JWTSecret)

	var producer events.Publisher = events.Nop{}
	var kafkaProducer *events.Producer
	if len(configuration.KafkaBrokers) > 0 {
		kafkaProducer = events.NewProducer(configuration.KafkaBrokers)
		producer = kafkaProducer
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var searchService *searchsvc.Service
	if configuration.ESURL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatalf("elasticsearch init failed: %v", err)
		}
		searchService = &searchsvc.Service{ES: esClient, Index: configuration.ESIndex}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	var settingsCache *cache.Cache
	if configuration.RedisAddr != "" {
		settingsCache = cache.New(configuration.RedisAddr, settingsTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, settings served uncached")
	}

	moderationService := &moderation.Service{Repo: repository}
	disputeService := &disputesvc.Service{Repo: repository}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), logging.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:            &authmw.Middleware{Repo: repository, JWTSecret: jwtSecret},
		JWTSecret:       jwtSecret,
		AuthHandler:     &handlers.AuthHandler{Repo: repository, JWTSecret: jwtSecret, Events: producer},
		ProductHandler:  &handlers.ProductHandler{Catalog: &catalog.Service{Repo: repository}, Events: producer},
		CartHandler:     &handlers.CartHandler{Cart: &cartsvc.Service{Repo: repository}, Events: producer},
		OrderHandler:    &handlers.OrderHandler{Orders: &ordersvc.Service{Repo: repository}, Disputes: disputeService, Events: producer},
		AdminHandler:    &handlers.AdminHandler{Repo: repository, Moderation: moderationService, Disputes: disputeService, Search: searchService, Events: producer},
		ReviewHandler:   &handlers.ReviewHandler{Reviews: &reviewsvc.Service{Repo: repository}},
		SearchHandler:   &handlers.SearchHandler{Search: searchService},
		SettingsHandler: &handlers.SettingsHandler{Settings: &settingssvc.Service{Repo: repository, Cache: settingsCache}},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         configuration.HTTPAddr,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()
	logger.Info("server started", "addr", configuration.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if kafkaProducer != nil {
		if err := kafkaProducer.Close(); err != nil {
			logger.Error("kafka close error", "error", err)
		}
	}

	if settingsCache != nil {
		if err := settingsCache.Close(); err != nil {
			logger.Error("redis close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
