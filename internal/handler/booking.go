package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Preethi-Heba/flight-booking-app/internal/model"
	"github.com/Preethi-Heba/flight-booking-app/internal/queue"
	"github.com/Preethi-Heba/flight-booking-app/internal/repository"
	queue_publisher "github.com/Preethi-Heba/flight-booking-app/internal/service/queue_publisher"
)

// BookingStore is the ledger surface the booking endpoints need.  The
// store's Create carries the whole transaction: duplicate check, seat
// check, counter decrement and insert succeed or fail together.
type BookingStore interface {
	Create(ctx context.Context, userID, flightID uint64) (*model.Booking, error)
	ListByUser(ctx context.Context, userID uint64) ([]model.BookingDetail, error)
}

var _ BookingStore = (*repository.BookingRepo)(nil)

// publishEvent is swapped out in tests; by default it publishes to
// RabbitMQ.
var publishEvent = queue_publisher.PublishBookingConfirmed

// BookingHandler serves seat booking and the caller's booking list.
type BookingHandler struct {
	Bookings BookingStore
	Flights  FlightStore
}

func NewBookingHandler(b BookingStore, f FlightStore) *BookingHandler {
	if b == nil || f == nil {
		panic("nil store passed to NewBookingHandler")
	}
	return &BookingHandler{Bookings: b, Flights: f}
}

// Book handles POST /v1/flights/:id/book.  Error mapping: unknown
// flight 404, repeat booking 409, sold out 409.  A duplicate booking
// is reported even when the flight is sold out, since that check runs
// first.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	flightID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || flightID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}

	ctx := c.Request().Context()
	b, err := h.Bookings.Create(ctx, userID, flightID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrFlightNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		case errors.Is(err, repository.ErrAlreadyBooked):
			return c.JSON(http.StatusConflict, echo.Map{"error": "you already booked this flight"})
		case errors.Is(err, repository.ErrSoldOut):
			return c.JSON(http.StatusConflict, echo.Map{"error": "no seats available"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
	}

	// Best effort: confirmation events never fail the booking.
	if f, ferr := h.Flights.GetByID(ctx, flightID); ferr == nil {
		ev := queue.BookingConfirmedEvent{
			BookingID:     b.ID,
			UserID:        userID,
			FlightID:      f.ID,
			FlightNumber:  f.FlightNumber,
			Departure:     f.Departure,
			Arrival:       f.Arrival,
			DepartureTime: f.DepartureTime.UTC().Format(time.RFC3339),
			Price:         f.Price,
			SeatsLeft:     f.SeatsAvailable,
			BookedAt:      b.CreatedAt.UTC().Format(time.RFC3339),
		}
		if perr := publishEvent(ctx, ev); perr != nil {
			log.Printf("booking %d: publish confirmation failed: %v", b.ID, perr)
		}
	}

	return c.JSON(http.StatusCreated, b)
}

// MyBookings handles GET /v1/bookings: the caller's bookings joined
// with their flight, newest first.
func (h *BookingHandler) MyBookings(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Bookings.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, details)
}
