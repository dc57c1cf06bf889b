package database

import (
	"context"
	"database/sql"
	"log"
	"time"
)

// SeedFlights inserts a pair of demo flights when the flights table is
// empty so a fresh install has something to book.  An already
// populated table is left untouched.
func SeedFlights(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flights`).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	seeds := []struct {
		number, departure, arrival string
		price                      int64
		seats                      int
	}{
		{"AI101", "Chennai", "Delhi", 5000, 50},
		{"AI202", "Mumbai", "Bangalore", 4000, 30},
	}
	for _, s := range seeds {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO flights (flight_number, departure, arrival, departure_time, price, seats_available)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			s.number, s.departure, s.arrival, now, s.price, s.seats); err != nil {
			return err
		}
	}
	log.Printf("seeded %d demo flights", len(seeds))
	return nil
}
