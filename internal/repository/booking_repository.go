package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/Preethi-Heba/flight-booking-app/internal/model"
)

// ErrAlreadyBooked is returned when the user already holds a booking
// for the flight.  It is checked before seat availability, so a repeat
// booking of a sold-out flight still reports the duplicate.
var ErrAlreadyBooked = errors.New("flight already booked")

// ErrSoldOut is returned when the flight has no seats left.
var ErrSoldOut = errors.New("no seats available")

// BookingRepo manages the bookings ledger.  Rows are append-only:
// bookings are never updated or deleted.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// Create reserves one seat on a flight for a user.  The duplicate
// check, the seat check, the counter decrement and the ledger insert
// run in a single transaction: either the counter and the ledger both
// move, or neither does.  The flight row is locked first so two
// concurrent requests for the last seat serialize and exactly one of
// them commits; the other observes ErrSoldOut.
func (r *BookingRepo) Create(ctx context.Context, userID, flightID uint64) (*model.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var seats int
	err = tx.QueryRowContext(ctx,
		`SELECT seats_available FROM flights WHERE id = ? FOR UPDATE`,
		flightID).Scan(&seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings WHERE user_id = ? AND flight_id = ?`,
		userID, flightID).Scan(&existing)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrAlreadyBooked
	}

	if seats <= 0 {
		return nil, ErrSoldOut
	}

	// Conditional decrement; the WHERE guard keeps the counter from
	// ever going negative even outside this lock.
	res, err := tx.ExecContext(ctx,
		`UPDATE flights SET seats_available = seats_available - 1 WHERE id = ? AND seats_available > 0`,
		flightID)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, ErrSoldOut
	}

	ins, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (user_id, flight_id) VALUES (?, ?)`,
		userID, flightID)
	if err != nil {
		// The unique index covers the race between two sessions of the
		// same user slipping past the COUNT check.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrAlreadyBooked
		}
		return nil, err
	}
	id, err := ins.LastInsertId()
	if err != nil {
		return nil, err
	}

	b := &model.Booking{ID: uint64(id), UserID: userID, FlightID: flightID}
	if err := tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return b, nil
}

// ListByUser returns the user's bookings joined with their flight,
// newest first.  The join is explicit so callers get plain data and no
// follow-up queries.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error) {
	const q = `SELECT b.id, b.flight_id, f.flight_number, f.departure, f.arrival, f.departure_time, f.price, b.created_at
	           FROM bookings b
	           JOIN flights f ON f.id = b.flight_id
	           WHERE b.user_id = ?
	           ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]model.BookingDetail, 0)
	for rows.Next() {
		var d model.BookingDetail
		if err := rows.Scan(
			&d.ID, &d.FlightID, &d.FlightNumber, &d.Departure, &d.Arrival,
			&d.DepartureTime, &d.Price, &d.BookedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}
