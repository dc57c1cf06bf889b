package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Preethi-Heba/flight-booking-app/internal/model"
	"github.com/Preethi-Heba/flight-booking-app/internal/repository"
)

// FlightStore is the catalog surface the flight endpoints need.
type FlightStore interface {
	Create(ctx context.Context, f *model.Flight) error
	List(ctx context.Context) ([]model.Flight, error)
	GetByID(ctx context.Context, id uint64) (*model.Flight, error)
}

var _ FlightStore = (*repository.FlightRepo)(nil)

// FlightHandler serves the flight catalog: adding flights and browsing
// them.  All routes sit behind JWT auth.
type FlightHandler struct {
	Flights FlightStore
}

func NewFlightHandler(f FlightStore) *FlightHandler {
	if f == nil {
		panic("nil store passed to NewFlightHandler")
	}
	return &FlightHandler{Flights: f}
}

type addFlightReq struct {
	FlightNumber   string `json:"flight_number"`
	Departure      string `json:"departure"`
	Arrival        string `json:"arrival"`
	DepartureTime  string `json:"departure_time"`
	Price          int64  `json:"price"`
	SeatsAvailable int    `json:"seats_available"`
}

// Add handles POST /v1/flights.  Seats default to the standard
// capacity when omitted.  The departure time accepts RFC3339 or the
// HTML datetime-local format "2006-01-02T15:04".
func (h *FlightHandler) Add(c echo.Context) error {
	var req addFlightReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.FlightNumber = strings.TrimSpace(req.FlightNumber)
	req.Departure = strings.TrimSpace(req.Departure)
	req.Arrival = strings.TrimSpace(req.Arrival)
	if req.FlightNumber == "" || req.Departure == "" || req.Arrival == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "flight_number/departure/arrival required"})
	}
	if req.Price < 0 || req.SeatsAvailable < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price and seats must not be negative"})
	}
	dep, err := parseDepartureTime(req.DepartureTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid departure_time"})
	}

	f := &model.Flight{
		FlightNumber:   req.FlightNumber,
		Departure:      req.Departure,
		Arrival:        req.Arrival,
		DepartureTime:  dep,
		Price:          req.Price,
		SeatsAvailable: req.SeatsAvailable,
	}
	if err := h.Flights.Create(c.Request().Context(), f); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create flight failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// List handles GET /v1/flights.
func (h *FlightHandler) List(c echo.Context) error {
	flights, err := h.Flights.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list flights failed"})
	}
	return c.JSON(http.StatusOK, flights)
}

// Get handles GET /v1/flights/:id.
func (h *FlightHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid flight id"})
	}
	f, err := h.Flights.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrFlightNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "flight not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, f)
}

func parseDepartureTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02T15:04", s)
	return t.UTC(), err
}
