package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/iliyamo/venue-booking/internal/config"
	"github.com/iliyamo/venue-booking/internal/database"
	"github.com/iliyamo/venue-booking/internal/logging"
	"github.com/iliyamo/venue-booking/internal/metrics"
	"github.com/iliyamo/venue-booking/internal/queue"
	"github.com/iliyamo/venue-booking/internal/repository"
	"github.com/iliyamo/venue-booking/internal/service"
	"github.com/iliyamo/venue-booking/internal/whatsapp"
)

// The worker consumes booking.created and sends the confirmations the API
// server queued when CONFIRMATION_DELIVERY=queue.
func main() {
	_ = godotenv.Load()

	cfg := config.LoadWorker()
	logger := logging.New(cfg.LogLevel).With("component", "worker")

	if cfg.WhatsApp.APIURL == "" {
		logger.Error("WHATSAPP_API_URL is required by the worker")
		os.Exit(1)
	}
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

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	m := metrics.NewBookingMetrics(prometheus.DefaultRegisterer)
	lookup := service.NewLookup(
		repository.NewHostelBookingRepo(db),
		repository.NewAuditoriumBookingRepo(db),
		m, logger)
	links := service.DocumentLinks{BaseURL: cfg.PublicBaseURL, Secret: cfg.DocumentSecret}
	dispatcher := service.NewDispatcher(client, links, m, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := queue.NewConsumer(cfg.RabbitMQURL, service.NewConfirmationHandler(lookup, dispatcher, logger), logger)
	logger.Info("consuming", "queue", queue.BookingCreatedQueue)
	if err := consumer.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
