package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/handler"
	"github.com/iliyamo/venue-booking/internal/logging"
	"github.com/iliyamo/venue-booking/internal/metrics"
	"github.com/iliyamo/venue-booking/internal/middleware"
	"github.com/iliyamo/venue-booking/internal/pdf"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/router"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/whatsapp"
)

func main() {
	_ = godotenv.Load() // .env is optional outside development

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	rdb := config.NewRedisClient(logger)
	if rdb != nil {
		defer rdb.Close()
	}

	m := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)

	hostels := repository.NewHostelBookingRepo(db)
	auditoriums := repository.NewAuditoriumBookingRepo(db)
	settings := repository.NewSettingsRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	var sender service.Sender
	if cfg.WhatsApp.APIURL != "" {
		client, err := whatsapp.New(whatsapp.Config{
			BaseURL:  cfg.WhatsApp.APIURL,
			APIToken: cfg.WhatsApp.APIToken,
			Timeout:  cfg.WhatsApp.Timeout,
			Logger:   logger,
		})
		if err != nil {
			logger.Error("whatsapp client", "error", err)
			os.Exit(1)
		}
		sender = client
	} else {
		logger.Warn("WHATSAPP_API_URL not set, confirmations will fail")
	}

	lookup := service.NewLookup(hostels, auditoriums, m, logger)
	links := service.DocumentLinks{BaseURL: cfg.PublicBaseURL, Secret: cfg.DocumentSecret}
	dispatcher := service.NewDispatcher(sender, links, m, logger)

	var notifier service.Notifier = service.InlineNotifier{Dispatcher: dispatcher}
	if cfg.ConfirmationDelivery == config.DeliveryQueue {
		notifier = service.QueueNotifier{Publisher: service.NewQueuePublisher(cfg.RabbitMQURL, logger)}
	}
	bookings := service.NewBookingService(service.BookingServiceDeps{
		Hostels:     hostels,
		Auditoriums: auditoriums,
		Settings:    settings,
		Hook:        service.NewDisplayIDHook(hostels, auditoriums, logger),
		Notifier:    notifier,
		Metrics:     m,
		Logger:      logger,
	})

	settingsHandler := handler.NewSettingsHandler(settings)
	authHandler := handler.NewAuthHandler(handler.TokenSettings{
		Secret:     cfg.JWTSecret,
		AccessTTL:  time.Duration(cfg.AccessTTLMin) * time.Minute,
		RefreshTTL: time.Duration(cfg.RefreshTTLDays) * 24 * time.Hour,
	}, users, tokens)

	limit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger)
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb, logger)

	e := router.New(logger)
	router.RegisterRoutes(e, db, prometheus.DefaultGatherer)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, limit)
	router.RegisterBooking(e, router.BookingHandlers{
		Lookup:     handler.NewBookingLookupHandler(lookup),
		Regenerate: handler.NewRegenerateHandler(lookup, dispatcher),
		WhatsApp:   handler.NewWhatsAppHandler(dispatcher),
		Create:     handler.NewBookingCreateHandler(bookings),
		Document:   handler.NewConfirmationPDFHandler(lookup, pdf.NewRenderer(cfg.VenueName), cfg.DocumentSecret),
		Settings:   settingsHandler,
	}, cfg.CORSAllowedOrigins, limit, cache)
	router.RegisterAdmin(e, settingsHandler, cfg.JWTSecret)
	router.RegisterSite(e, cache)

	addr := ":" + cfg.Port
	go func() {
		logger.Info("listening", "addr", addr, "env", cfg.Env, "delivery", cfg.ConfirmationDelivery)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down")
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "error", err)
	}
}
