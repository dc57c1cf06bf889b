// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published after a booking commits.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     uint64 `json:"booking_id"`
	UserID        uint64 `json:"user_id"`
	FlightID      uint64 `json:"flight_id"`
	FlightNumber  string `json:"flight_number"`
	Departure     string `json:"departure"`
	Arrival       string `json:"arrival"`
	DepartureTime string `json:"departure_time"`
	Price         int64  `json:"price"`
	SeatsLeft     int    `json:"seats_left"`
	BookedAt      string `json:"booked_at"`
}
