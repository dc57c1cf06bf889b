package model

import "time"

// DefaultSeatCapacity is the number of seats a flight is created with
// when the caller does not supply a capacity of its own.
const DefaultSeatCapacity = 50

// Flight represents a scheduled flight as stored in the `flights`
// table.  The flight number is free text and carries no uniqueness
// guarantee; two rows may share a number.  SeatsAvailable is the only
// field that changes after creation: it is decremented exactly once
// for every confirmed booking and never drops below zero.
//
// Fields:
//  ID             – primary key identifier.
//  FlightNumber   – carrier flight code, e.g. "AI101".
//  Departure      – departure location.
//  Arrival        – arrival location.
//  DepartureTime  – scheduled departure timestamp (UTC).
//  Price          – ticket price in whole currency units.
//  SeatsAvailable – remaining bookable seats.
//  CreatedAt      – row creation timestamp.
type Flight struct {
	ID             uint64    `json:"id"`              // flights.id
	FlightNumber   string    `json:"flight_number"`   // flights.flight_number
	Departure      string    `json:"departure"`       // flights.departure
	Arrival        string    `json:"arrival"`         // flights.arrival
	DepartureTime  time.Time `json:"departure_time"`  // flights.departure_time
	Price          int64     `json:"price"`           // flights.price
	SeatsAvailable int       `json:"seats_available"` // flights.seats_available
	CreatedAt      time.Time `json:"-"`               // flights.created_at
}
