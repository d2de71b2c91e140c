// cmd/seeder/main.go
package main

import (
	"database/sql"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tshekom8206/staybotplatform-sub005/internal/config"
	"github.com/tshekom8206/staybotplatform-sub005/internal/db"
	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
)

// Seeds a couple of demo tenants and bookings for local development.
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

	seedTenants(pool, logger)
	seedBookings(pool, logger)

	logger.Info("seeding complete")
}

func seedTenants(pool *sql.DB, logger *zap.Logger) {
	tenants := []struct {
		name string
		slug string
	}{
		{"Seaview Boutique Hotel", "seaview"},
		{"Karoo Lodge", "karoo-lodge"},
	}

	for _, t := range tenants {
		_, err := pool.Exec(`
			INSERT INTO tenants (name, slug)
			VALUES ($1, $2)
			ON CONFLICT (slug) DO NOTHING`,
			t.name, t.slug,
		)
		if err != nil {
			logger.Fatal("failed to seed tenant", zap.String("slug", t.slug), zap.Error(err))
		}
	}
	logger.Info("tenants seeded", zap.Int("count", len(tenants)))
}

func seedBookings(pool *sql.DB, logger *zap.Logger) {
	now := time.Now()
	bookings := []struct {
		tenantSlug string
		guestName  string
		phone      string
		room       string
		checkIn    time.Time
		checkOut   time.Time
		status     string
	}{
		{"seaview", "Ana Oliveira", "+27821234567", "305", now.AddDate(0, 0, 2), now.AddDate(0, 0, 5), model.BookingConfirmed},
		{"seaview", "Brian Mokoena", "+27839876543", "112", now.AddDate(0, 0, -1), now.AddDate(0, 0, 2), model.BookingCheckedIn},
		{"karoo-lodge", "Chen Wei", "+27721112222", "7", now.AddDate(0, 0, 1), now.AddDate(0, 0, 2), model.BookingConfirmed},
	}

	for _, b := range bookings {
		_, err := pool.Exec(`
			INSERT INTO bookings (tenant_id, guest_name, phone, room_number, checkin_date, checkout_date, status)
			SELECT t.id, $2, $3, $4, $5, $6, $7
			FROM tenants t
			WHERE t.slug = $1
			ON CONFLICT DO NOTHING`,
			b.tenantSlug, b.guestName, b.phone, b.room, b.checkIn, b.checkOut, b.status,
		)
		if err != nil {
			logger.Fatal("failed to seed booking", zap.String("guest", b.guestName), zap.Error(err))
		}
	}
	logger.Info("bookings seeded", zap.Int("count", len(bookings)))
}
