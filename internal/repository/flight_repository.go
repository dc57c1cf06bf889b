// Package repository contains the data access layer.  Each repository owns
// one table and exposes sentinel errors that handlers translate into
// HTTP responses.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Preethi-Heba/flight-booking-app/internal/model"
)

// ErrFlightNotFound indicates that a flight was not located in the DB.
var ErrFlightNotFound = errors.New("flight not found")

// FlightRepo manages persistence for flights.
type FlightRepo struct {
	db *sql.DB
}

// NewFlightRepo returns a FlightRepo bound to the given database.
func NewFlightRepo(db *sql.DB) *FlightRepo { return &FlightRepo{db: db} }

// DB exposes the underlying sql.DB.  It allows callers to begin
// transactions spanning multiple repositories.
func (r *FlightRepo) DB() *sql.DB { return r.db }

// Create inserts a new flight and populates the generated ID and
// DB-default fields on the given record.  Nothing about the flight is
// validated here: numbers may repeat and schedules may overlap, per
// the catalog's contract.
func (r *FlightRepo) Create(ctx context.Context, f *model.Flight) error {
	if f.SeatsAvailable <= 0 {
		f.SeatsAvailable = model.DefaultSeatCapacity
	}
	const q = `INSERT INTO flights (flight_number, departure, arrival, departure_time, price, seats_available)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		f.FlightNumber, f.Departure, f.Arrival, f.DepartureTime.UTC(), f.Price, f.SeatsAvailable)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	const sel = `SELECT id, flight_number, departure, arrival, departure_time, price, seats_available, created_at
	             FROM flights WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, f.ID).Scan(
		&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival,
		&f.DepartureTime, &f.Price, &f.SeatsAvailable, &f.CreatedAt,
	)
}

// List returns all flights in insertion order.
func (r *FlightRepo) List(ctx context.Context) ([]model.Flight, error) {
	const q = `SELECT id, flight_number, departure, arrival, departure_time, price, seats_available, created_at
	           FROM flights ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]model.Flight, 0)
	for rows.Next() {
		var f model.Flight
		if err := rows.Scan(
			&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival,
			&f.DepartureTime, &f.Price, &f.SeatsAvailable, &f.CreatedAt,
		); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

// GetByID retrieves a flight by its ID.  It returns ErrFlightNotFound
// when no row matches.
func (r *FlightRepo) GetByID(ctx context.Context, id uint64) (*model.Flight, error) {
	const q = `SELECT id, flight_number, departure, arrival, departure_time, price, seats_available, created_at
	           FROM flights WHERE id = ?`
	var f model.Flight
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.FlightNumber, &f.Departure, &f.Arrival,
		&f.DepartureTime, &f.Price, &f.SeatsAvailable, &f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &f, nil
}
