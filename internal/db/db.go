// internal/db/db.go
package db

import (
	"database/sql"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
)

// Connect opens a Postgres pool and pings it with exponential backoff so the
// service survives the database coming up after it.
func Connect(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	b.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(pool.Ping, b); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
