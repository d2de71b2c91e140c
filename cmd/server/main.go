// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/config"
	"github.com/tshekom8206/staybotplatform-sub005/internal/db"
	"github.com/tshekom8206/staybotplatform-sub005/internal/handler"
	"github.com/tshekom8206/staybotplatform-sub005/internal/metrics"
	"github.com/tshekom8206/staybotplatform-sub005/internal/queue"
	"github.com/tshekom8206/staybotplatform-sub005/internal/repository"
	"github.com/tshekom8206/staybotplatform-sub005/internal/service"
	"github.com/tshekom8206/staybotplatform-sub005/internal/sms"
	"github.com/tshekom8206/staybotplatform-sub005/internal/whatsapp"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := godotenv.Load(); err != nil {
		logger.Info("no .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutdown signal received", zap.String("signal", sig.String()))
		cancel()
	}()

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	metrics.Init()

	// With no broker configured, broadcast sends run in-process instead of
	// through the separate worker binary.
	var sendQueue queue.Queue
	if cfg.AmqpURL == "" {
		sendQueue = queue.NewInMemoryQueue(logger)
	} else {
		amqpQueue, err := queue.DialAmqp(cfg.AmqpURL, logger)
		if err != nil {
			logger.Fatal("amqp connection failed", zap.Error(err))
		}
		defer amqpQueue.Close()
		sendQueue = amqpQueue
	}

	// Repositories
	messageRepo := &repository.ScheduledMessageRepository{DB: pool}
	settingsRepo := &repository.SettingsRepository{DB: pool}
	bookingRepo := &repository.BookingRepository{DB: pool}
	tenantRepo := &repository.TenantRepository{DB: pool}
	broadcastRepo := &repository.BroadcastRepository{DB: pool}

	// Delivery channel: WhatsApp first, SMS fallback
	delivery := &service.FallbackChannel{
		WhatsApp: whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken, cfg.WhatsAppRateLimit, logger),
		SMS:      sms.NewClient(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSFrom, logger),
		Timeout:  cfg.SendTimeout,
		Log:      logger,
	}

	journeyService := &service.JourneyService{
		Messages:     messageRepo,
		Settings:     settingsRepo,
		Bookings:     bookingRepo,
		Tenants:      tenantRepo,
		Delivery:     delivery,
		PortalDomain: cfg.PortalBaseDomain,
		BatchSize:    cfg.ProcessBatch,
		Log:          logger,
	}

	broadcastService := &service.BroadcastService{
		Broadcasts: broadcastRepo,
		Bookings:   bookingRepo,
		Delivery:   delivery,
		Queue:      sendQueue,
		Topic:      cfg.BroadcastQueue,
		Log:        logger,
	}

	if cfg.AmqpURL == "" {
		err := sendQueue.Subscribe(cfg.BroadcastQueue, func(recipientID int) error {
			return broadcastService.ProcessRecipient(context.Background(), recipientID)
		})
		if err != nil {
			logger.Fatal("failed to subscribe in-process broadcast consumer", zap.Error(err))
		}
	}

	journeyHandler := handler.NewJourneyHandler(journeyService)
	broadcastHandler := handler.NewBroadcastHandler(broadcastService)

	r := chi.NewRouter()

	// Guest journey routes
	r.Get("/journey/settings", journeyHandler.GetSettingsHandler)
	r.Put("/journey/settings", journeyHandler.UpdateSettingsHandler)
	r.Get("/journey/placeholders", journeyHandler.PlaceholdersHandler)
	r.Post("/journey/preview", journeyHandler.PreviewHandler)
	r.Get("/journey/scheduled-messages", journeyHandler.ListScheduledMessagesHandler)
	r.Post("/journey/bookings/{bookingID}/schedule", journeyHandler.ScheduleForBookingHandler)
	r.Post("/journey/bookings/{bookingID}/checkin", journeyHandler.CheckinHandler)
	r.Post("/journey/bookings/{bookingID}/cancel", journeyHandler.CancelForBookingHandler)
	r.Post("/journey/process", journeyHandler.ProcessHandler)

	// Broadcast routes
	r.Post("/broadcasts", broadcastHandler.CreateBroadcastHandler)
	r.Get("/broadcasts/{id}", broadcastHandler.GetBroadcastHandler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Periodic due-message scan; overlapping passes are safe because rows
	// are claimed with a conditional update before any send.
	go func() {
		ticker := time.NewTicker(cfg.ProcessInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				result, err := journeyService.ProcessDueMessages(ctx)
				if err != nil {
					logger.Error("due-message pass failed", zap.Error(err))
					continue
				}
				logger.Info("due-message pass complete",
					zap.Int("processed", result.Processed),
					zap.Int("sent", result.Sent),
					zap.Int("failed", result.Failed),
					zap.Int("cancelled", result.Cancelled),
				)
			}
		}
	}()

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: metricsMux}
	go func() {
		logger.Info("metrics server started", zap.String("port", cfg.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("metrics server error", zap.Error(err))
		}
	}()

	apiServer := &http.Server{Addr: ":" + cfg.APIPort, Handler: r}
	go func() {
		logger.Info("api server started", zap.String("port", cfg.APIPort))
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("api server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api shutdown failed", zap.Error(err))
	}
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics shutdown failed", zap.Error(err))
	}

	logger.Info("application shutdown complete")
}
