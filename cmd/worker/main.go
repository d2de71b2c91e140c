// cmd/worker/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/config"
	"github.com/tshekom8206/staybotplatform-sub005/internal/db"
	"github.com/tshekom8206/staybotplatform-sub005/internal/metrics"
	"github.com/tshekom8206/staybotplatform-sub005/internal/queue"
	"github.com/tshekom8206/staybotplatform-sub005/internal/repository"
	"github.com/tshekom8206/staybotplatform-sub005/internal/service"
	"github.com/tshekom8206/staybotplatform-sub005/internal/sms"
	"github.com/tshekom8206/staybotplatform-sub005/internal/whatsapp"
)

// The worker drains the broadcast queue. Journey messages are not handled
// here; they go through the scheduler's claim-then-send pass in the server.
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

	pool, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer pool.Close()

	metrics.Init()

	amqpQueue, err := queue.DialAmqp(cfg.AmqpURL, logger)
	if err != nil {
		logger.Fatal("amqp connection failed", zap.Error(err))
	}
	defer amqpQueue.Close()

	delivery := &service.FallbackChannel{
		WhatsApp: whatsapp.NewClient(cfg.WhatsAppAPIURL, cfg.WhatsAppPhoneNumberID, cfg.WhatsAppAccessToken, cfg.WhatsAppRateLimit, logger),
		SMS:      sms.NewClient(cfg.SMSAPIURL, cfg.SMSAPIKey, cfg.SMSFrom, logger),
		Timeout:  cfg.SendTimeout,
		Log:      logger,
	}

	broadcastService := &service.BroadcastService{
		Broadcasts: &repository.BroadcastRepository{DB: pool},
		Bookings:   &repository.BookingRepository{DB: pool},
		Delivery:   delivery,
		Queue:      amqpQueue,
		Topic:      cfg.BroadcastQueue,
		Log:        logger,
	}

	err = amqpQueue.Subscribe(cfg.BroadcastQueue, func(recipientID int) error {
		return broadcastService.ProcessRecipient(context.Background(), recipientID)
	})
	if err != nil {
		logger.Fatal("failed to subscribe to broadcast queue", zap.Error(err))
	}

	logger.Info("broadcast worker started", zap.String("queue", cfg.BroadcastQueue))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
}
