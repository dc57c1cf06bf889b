package model

import "time"

// Booking records that a user reserved one seat on a flight.  A row
// is created only by the booking operation; it is never updated or
// deleted (there is no cancellation flow).  At most one booking may
// exist per (user, flight) pair and every row accounts for exactly
// one decrement of the flight's seat counter, so for every flight
// seats_available equals its initial capacity minus the number of
// bookings that reference it.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who booked the seat.
//  FlightID  – flight being booked.
//  CreatedAt – when the booking was made.
type Booking struct {
	ID        uint64    `json:"id"`         // bookings.id
	UserID    uint64    `json:"user_id"`    // bookings.user_id
	FlightID  uint64    `json:"flight_id"`  // bookings.flight_id
	CreatedAt time.Time `json:"created_at"` // bookings.created_at
}

// BookingDetail is a booking joined with its flight for display.
// Listings return this flat shape instead of letting callers chase
// the flight reference themselves.
type BookingDetail struct {
	ID            uint64    `json:"id"`
	FlightID      uint64    `json:"flight_id"`
	FlightNumber  string    `json:"flight_number"`
	Departure     string    `json:"departure"`
	Arrival       string    `json:"arrival"`
	DepartureTime time.Time `json:"departure_time"`
	Price         int64     `json:"price"`
	BookedAt      time.Time `json:"booked_at"`
}
